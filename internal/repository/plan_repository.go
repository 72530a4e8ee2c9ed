package repository

import (
	"fmt"

	"coverage-planner-go/internal/model"

	"gorm.io/gorm"
)

// PlanRepository интерфейс для работы с планами покрытия
type PlanRepository interface {
	Create(plan *model.Plan) error
	GetByID(id string) (*model.Plan, error)
	GetByArea(northEast, southWest Point) ([]*model.Plan, error)
	List(page, pageSize int) ([]*model.Plan, int64, error)
	Delete(id string) error
	Update(plan *model.Plan) error
}

// Point представляет точку в мировых координатах
type Point struct {
	X float64
	Y float64
}

// planRepository реализация PlanRepository
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository создает новый instance PlanRepository
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{
		db: db,
	}
}

// Create создает новый план в базе данных
func (r *planRepository) Create(plan *model.Plan) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// Сначала создаем план; позы вставляем отдельно, чтобы gorm не
	// продублировал их через автосохранение ассоциаций
	if err := tx.Omit("Waypoints").Create(plan).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create plan: %w", err)
	}

	// Затем создаем позы плана
	for i := range plan.Waypoints {
		plan.Waypoints[i].ID = 0 // Обнуляем ID для auto-increment
		plan.Waypoints[i].PlanID = plan.ID

		if err := tx.Create(&plan.Waypoints[i]).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create waypoint %d: %w", i, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID получает план по ID
func (r *planRepository) GetByID(id string) (*model.Plan, error) {
	var plan model.Plan
	err := r.db.Preload("Waypoints", func(db *gorm.DB) *gorm.DB {
		return db.Order("waypoints.seq ASC")
	}).Where("id = ?", id).First(&plan).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("plan with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return &plan, nil
}

// GetByArea получает планы, позы которых попадают в заданную область
func (r *planRepository) GetByArea(northEast, southWest Point) ([]*model.Plan, error) {
	var plans []*model.Plan

	// Находим планы, у которых есть позы в заданной области
	err := r.db.Preload("Waypoints", func(db *gorm.DB) *gorm.DB {
		return db.Order("waypoints.seq ASC")
	}).
		Joins("JOIN waypoints ON waypoints.plan_id = plans.id").
		Where("waypoints.x BETWEEN ? AND ? AND waypoints.y BETWEEN ? AND ?",
			southWest.X, northEast.X, southWest.Y, northEast.Y).
		Distinct("plans.id").
		Find(&plans).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get plans by area: %w", err)
	}

	return plans, nil
}

// List получает список планов с пагинацией
func (r *planRepository) List(page, pageSize int) ([]*model.Plan, int64, error) {
	var plans []*model.Plan
	var total int64

	// Подсчитываем общее количество
	if err := r.db.Model(&model.Plan{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count plans: %w", err)
	}

	// Получаем планы с пагинацией
	offset := (page - 1) * pageSize
	err := r.db.Preload("Waypoints", func(db *gorm.DB) *gorm.DB {
		return db.Order("waypoints.seq ASC")
	}).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&plans).Error

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list plans: %w", err)
	}

	return plans, total, nil
}

// Delete удаляет план по ID
func (r *planRepository) Delete(id string) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// Сначала удаляем позы плана
	if err := tx.Where("plan_id = ?", id).Delete(&model.Waypoint{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete waypoints: %w", err)
	}

	// Затем удаляем сам план
	result := tx.Where("id = ?", id).Delete(&model.Plan{})
	if result.Error != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete plan: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		tx.Rollback()
		return fmt.Errorf("plan with id %s not found", id)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Update обновляет план
func (r *planRepository) Update(plan *model.Plan) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// Обновляем план
	if err := tx.Omit("Waypoints").Save(plan).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update plan: %w", err)
	}

	// Удаляем старые позы
	if err := tx.Where("plan_id = ?", plan.ID).Delete(&model.Waypoint{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete old waypoints: %w", err)
	}

	// Создаем новые позы
	for i := range plan.Waypoints {
		plan.Waypoints[i].ID = 0 // Обнуляем ID для auto-increment
		plan.Waypoints[i].PlanID = plan.ID
		if err := tx.Create(&plan.Waypoints[i]).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create waypoint %d: %w", i, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
