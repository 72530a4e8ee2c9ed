package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"coverage-planner-go/internal/model"
	"coverage-planner-go/internal/repository"
	"coverage-planner-go/pkg/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PlanService сервис для работы с сохраненными планами покрытия
type PlanService struct {
	planRepo  repository.PlanRepository
	logger    *logrus.Logger
	staticDir string
}

// NewPlanService создает новый сервис для работы с планами
func NewPlanService(planRepo repository.PlanRepository, logger *logrus.Logger, staticDir string) *PlanService {
	return &PlanService{
		planRepo:  planRepo,
		logger:    logger,
		staticDir: staticDir,
	}
}

// SavePlan сохраняет план покрытия в базе данных
func (s *PlanService) SavePlan(planID, name, mapFilename string, mapData io.Reader, result *PlanResult) error {
	s.logger.Infof("Сохраняем план %s в базе данных", planID)

	// Сохраняем файл карты рядом со статикой
	mapPath := ""
	if mapData != nil && mapFilename != "" {
		var err error
		mapPath, err = s.saveMapFile(planID, mapFilename, mapData)
		if err != nil {
			s.logger.Errorf("Ошибка сохранения файла карты: %v", err)
			return fmt.Errorf("failed to save map file: %w", err)
		}
	}

	if name == "" {
		name = fmt.Sprintf("Plan %s", planID[:8])
	}

	// Преобразуем результат планирования в модель базы данных
	plan := &model.Plan{
		ID:             planID,
		Name:           name,
		FrameID:        frameIDOf(result),
		StartX:         result.Start.Pose.Position.X,
		StartY:         result.Start.Pose.Position.Y,
		StartYaw:       result.Start.Pose.Orientation.Yaw(),
		TileSizeM:      result.TileSizeM,
		GridOriginX:    result.GridOrigin.X,
		GridOriginY:    result.GridOrigin.Y,
		GridRows:       result.Stats.GridRows,
		GridCols:       result.Stats.GridCols,
		OccupiedTiles:  result.Stats.OccupiedTiles,
		PathPoints:     result.Stats.PathPoints,
		TotalWaypoints: result.Stats.TotalWaypoints,
		MapFilename:    mapFilename,
		MapPath:        mapPath,
	}

	// Преобразуем позы плана
	for i, pose := range result.Plan {
		plan.Waypoints = append(plan.Waypoints, model.Waypoint{
			PlanID: planID,
			Seq:    int32(i),
			X:      pose.Pose.Position.X,
			Y:      pose.Pose.Position.Y,
			Yaw:    pose.Pose.Orientation.Yaw(),
		})
	}

	// Сохраняем в базе данных
	s.logger.Infof("Сохраняем план в БД. Количество поз: %d", len(plan.Waypoints))
	if err := s.planRepo.Create(plan); err != nil {
		s.logger.Errorf("Ошибка сохранения плана в БД: %v", err)
		// Удаляем файл карты если что-то пошло не так
		if mapPath != "" {
			s.logger.Infof("Удаляем файл карты %s из-за ошибки сохранения в БД", mapPath)
			os.Remove(mapPath)
		}
		return fmt.Errorf("failed to save plan to database: %w", err)
	}

	s.logger.Infof("План %s успешно сохранен в БД с %d позами", planID, len(plan.Waypoints))
	return nil
}

// GetPlanByID получает план по ID
func (s *PlanService) GetPlanByID(planID string) (*PlanResponse, error) {
	s.logger.Infof("Получаем план %s из базы данных", planID)

	plan, err := s.planRepo.GetByID(planID)
	if err != nil {
		s.logger.Errorf("Ошибка получения плана: %v", err)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return s.modelToResponse(plan), nil
}

// GetPlansByArea получает планы, проходящие через заданную область
func (s *PlanService) GetPlansByArea(neX, neY, swX, swY float64) ([]PlanResponse, error) {
	s.logger.Infof("Получаем планы в области: NE(%.3f, %.3f) SW(%.3f, %.3f)", neX, neY, swX, swY)

	ne := repository.Point{X: neX, Y: neY}
	sw := repository.Point{X: swX, Y: swY}

	plans, err := s.planRepo.GetByArea(ne, sw)
	if err != nil {
		s.logger.Errorf("Ошибка получения планов по области: %v", err)
		return nil, fmt.Errorf("failed to get plans by area: %w", err)
	}

	responses := make([]PlanResponse, len(plans))
	for i, plan := range plans {
		responses[i] = *s.modelToResponse(plan)
	}

	s.logger.Infof("Найдено %d планов в области", len(responses))
	return responses, nil
}

// ListPlans получает список всех планов с пагинацией
func (s *PlanService) ListPlans(page, pageSize int) ([]PlanResponse, int64, error) {
	s.logger.Infof("Получаем список планов: страница %d, размер %d", page, pageSize)

	plans, total, err := s.planRepo.List(page, pageSize)
	if err != nil {
		s.logger.Errorf("Ошибка получения списка планов: %v", err)
		return nil, 0, fmt.Errorf("failed to list plans: %w", err)
	}

	responses := make([]PlanResponse, len(plans))
	for i, plan := range plans {
		responses[i] = *s.modelToResponse(plan)
	}

	s.logger.Infof("Получено %d планов из %d общих", len(responses), total)
	return responses, total, nil
}

// DeletePlan удаляет план по ID
func (s *PlanService) DeletePlan(planID string) error {
	s.logger.Infof("Удаляем план %s", planID)

	// Сначала получаем план для удаления файла карты
	plan, err := s.planRepo.GetByID(planID)
	if err != nil {
		s.logger.Errorf("Ошибка получения плана для удаления: %v", err)
		return fmt.Errorf("failed to get plan for deletion: %w", err)
	}

	// Удаляем из базы данных
	if err := s.planRepo.Delete(planID); err != nil {
		s.logger.Errorf("Ошибка удаления плана из БД: %v", err)
		return fmt.Errorf("failed to delete plan from database: %w", err)
	}

	// Удаляем файл карты если он существует
	if plan.MapPath != "" {
		if err := os.Remove(plan.MapPath); err != nil {
			s.logger.Warnf("Не удалось удалить файл карты %s: %v", plan.MapPath, err)
		} else {
			s.logger.Infof("Файл карты %s успешно удален", plan.MapPath)
		}
	}

	s.logger.Infof("План %s успешно удален", planID)
	return nil
}

// saveMapFile сохраняет файл карты в статической папке
func (s *PlanService) saveMapFile(planID, originalFilename string, mapData io.Reader) (string, error) {
	s.logger.Infof("Начинаем сохранение файла карты. PlanID: %s, оригинальное имя: %s", planID, originalFilename)

	// Создаем папку для карт
	mapsDir := filepath.Join(s.staticDir, "maps")
	if err := os.MkdirAll(mapsDir, 0755); err != nil {
		s.logger.Errorf("Ошибка создания директории %s: %v", mapsDir, err)
		return "", fmt.Errorf("failed to create maps directory: %w", err)
	}

	// Определяем расширение файла
	ext := filepath.Ext(originalFilename)
	if ext == "" {
		ext = ".yaml" // По умолчанию
		s.logger.Warnf("Расширение файла не найдено, используем .yaml")
	}

	// Создаем путь к файлу
	filename := fmt.Sprintf("%s%s", planID, ext)
	filePath := filepath.Join(mapsDir, filename)

	// Создаем файл
	file, err := os.Create(filePath)
	if err != nil {
		s.logger.Errorf("Ошибка создания файла %s: %v", filePath, err)
		return "", fmt.Errorf("failed to create map file: %w", err)
	}
	defer file.Close()

	// Копируем данные
	bytesWritten, err := io.Copy(file, mapData)
	if err != nil {
		s.logger.Errorf("Ошибка записи данных в файл %s: %v", filePath, err)
		os.Remove(filePath) // Удаляем файл в случае ошибки
		return "", fmt.Errorf("failed to write map data: %w", err)
	}

	s.logger.Infof("Файл карты сохранен: %s (записано %d байт)", filePath, bytesWritten)
	return filePath, nil
}

// modelToResponse преобразует модель базы данных в ответ API
func (s *PlanService) modelToResponse(plan *model.Plan) *PlanResponse {
	response := &PlanResponse{
		ID:       plan.ID,
		Name:     plan.Name,
		FrameID:  plan.FrameID,
		Start:    models.Point{X: plan.StartX, Y: plan.StartY},
		StartYaw: plan.StartYaw,
		GridOrigin: models.Point{
			X: plan.GridOriginX,
			Y: plan.GridOriginY,
		},
		Stats: PlanStats{
			GridRows:       plan.GridRows,
			GridCols:       plan.GridCols,
			OccupiedTiles:  plan.OccupiedTiles,
			PathPoints:     plan.PathPoints,
			TotalWaypoints: plan.TotalWaypoints,
			TileSizeM:      plan.TileSizeM,
		},
		CreatedAt:   plan.CreatedAt,
		MapFilename: plan.MapFilename,
		MapPath:     plan.MapPath,
	}

	// Преобразуем позы плана
	for _, wp := range plan.Waypoints {
		response.Waypoints = append(response.Waypoints, WaypointInfo{
			Seq: int(wp.Seq),
			X:   wp.X,
			Y:   wp.Y,
			Yaw: wp.Yaw,
		})
	}

	return response
}

// frameIDOf возвращает систему координат плана
func frameIDOf(result *PlanResult) string {
	if len(result.Plan) > 0 {
		return result.Plan[0].FrameID
	}
	return result.Start.FrameID
}

// GeneratePlanID генерирует уникальный ID для плана
func (s *PlanService) GeneratePlanID() string {
	return uuid.New().String()
}
