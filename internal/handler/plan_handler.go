package handler

import (
	"net/http"
	"strconv"

	"coverage-planner-go/internal/service"
	"coverage-planner-go/internal/waypoint"
	"coverage-planner-go/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PlanHandler обрабатывает HTTP запросы для работы с планами покрытия
type PlanHandler struct {
	plannerService  *service.PlannerService
	planService     *service.PlanService
	logger          *logrus.Logger
	defaultTileSize float64
}

// NewPlanHandler создает новый экземпляр PlanHandler
func NewPlanHandler(plannerService *service.PlannerService, planService *service.PlanService, logger *logrus.Logger, defaultTileSize float64) *PlanHandler {
	return &PlanHandler{
		plannerService:  plannerService,
		planService:     planService,
		logger:          logger,
		defaultTileSize: defaultTileSize,
	}
}

// RegisterRoutes регистрирует маршруты API
func (h *PlanHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/plan", h.PlanCoverage)
		api.GET("/plans", h.ListPlans)
		api.GET("/plans/:id", h.GetPlan)
		api.DELETE("/plans/:id", h.DeletePlan)
		api.GET("/plans/area", h.GetPlansByArea)
		api.GET("/plans/:id/geojson", h.GetPlanGeoJSON)
		api.GET("/plans/:id/map", h.GetPlanMap)
		api.GET("/health", h.CheckHealth)
	}
}

// getFormValue получает значение из формы, пробуя разные варианты ключей
func getFormValue(c *gin.Context, keys []string) string {
	for _, key := range keys {
		if value := c.PostForm(key); value != "" {
			return value
		}
	}
	return ""
}

// ListPlans возвращает список планов с пагинацией
func (h *PlanHandler) ListPlans(c *gin.Context) {
	h.logger.Info("Получен запрос на получение списка планов")

	// Получаем параметры пагинации
	pageStr := c.DefaultQuery("page", "1")
	sizeStr := c.DefaultQuery("size", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 || size > 100 {
		size = 10
	}

	// Получаем планы
	plans, total, err := h.planService.ListPlans(page, size)
	if err != nil {
		h.logger.Errorf("Ошибка получения списка планов: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка получения списка планов"})
		return
	}

	response := service.ListPlansResponse{
		Plans: plans,
		Total: total,
		Page:  page,
		Size:  size,
	}

	h.logger.Infof("Возвращено %d планов из %d", len(plans), total)
	c.JSON(http.StatusOK, response)
}

// GetPlan возвращает план по ID
func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID := c.Param("id")
	h.logger.Infof("Получен запрос на получение плана с ID: %s", planID)

	plan, err := h.planService.GetPlanByID(planID)
	if err != nil {
		h.logger.Errorf("Ошибка получения плана: %v", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "План не найден"})
		return
	}

	h.logger.Info("План найден и возвращен")
	c.JSON(http.StatusOK, plan)
}

// DeletePlan удаляет план по ID
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	planID := c.Param("id")
	h.logger.Infof("Получен запрос на удаление плана с ID: %s", planID)

	err := h.planService.DeletePlan(planID)
	if err != nil {
		h.logger.Errorf("Ошибка удаления плана: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка удаления плана"})
		return
	}

	h.logger.Info("План успешно удален")
	c.JSON(http.StatusOK, gin.H{"message": "План успешно удален"})
}

// GetPlansByArea возвращает планы в указанной области
func (h *PlanHandler) GetPlansByArea(c *gin.Context) {
	h.logger.Info("Получен запрос на получение планов по области")

	// Получаем параметры области
	neX := c.Query("ne_x")
	neY := c.Query("ne_y")
	swX := c.Query("sw_x")
	swY := c.Query("sw_y")

	if neX == "" || neY == "" || swX == "" || swY == "" {
		h.logger.Error("Отсутствуют параметры области")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Отсутствуют обязательные параметры: ne_x, ne_y, sw_x, sw_y",
		})
		return
	}

	// Парсим координаты
	neXFloat, err := strconv.ParseFloat(neX, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат ne_x"})
		return
	}

	neYFloat, err := strconv.ParseFloat(neY, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат ne_y"})
		return
	}

	swXFloat, err := strconv.ParseFloat(swX, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат sw_x"})
		return
	}

	swYFloat, err := strconv.ParseFloat(swY, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат sw_y"})
		return
	}

	// Получаем планы в области
	plans, err := h.planService.GetPlansByArea(neXFloat, neYFloat, swXFloat, swYFloat)
	if err != nil {
		h.logger.Errorf("Ошибка получения планов по области: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка получения планов"})
		return
	}

	response := service.GetPlansByAreaResponse{
		Plans: plans,
		Total: len(plans),
	}

	h.logger.Infof("Найдено %d планов в указанной области", len(plans))
	c.JSON(http.StatusOK, response)
}

// GetPlanGeoJSON возвращает план в формате GeoJSON для отображения
func (h *PlanHandler) GetPlanGeoJSON(c *gin.Context) {
	planID := c.Param("id")
	h.logger.Infof("Получен запрос GeoJSON для плана %s", planID)

	plan, err := h.planService.GetPlanByID(planID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "План не найден"})
		return
	}

	// Восстанавливаем позы из сохраненного плана
	poses := make([]models.PoseStamped, len(plan.Waypoints))
	for i, wp := range plan.Waypoints {
		poses[i] = models.PoseStamped{
			FrameID: plan.FrameID,
			Stamp:   plan.CreatedAt,
			Pose: models.Pose{
				Position:    models.Point{X: wp.X, Y: wp.Y},
				Orientation: models.QuaternionFromYaw(wp.Yaw),
			},
		}
	}

	body, err := waypoint.PlanToGeoJSON(poses)
	if err != nil {
		h.logger.Errorf("Ошибка сериализации GeoJSON: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сериализации плана"})
		return
	}

	c.Data(http.StatusOK, "application/geo+json", body)
}

// GetPlanMap возвращает сохраненный файл карты для конкретного плана
func (h *PlanHandler) GetPlanMap(c *gin.Context) {
	planID := c.Param("id")
	if planID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plan ID is required"})
		return
	}

	plan, err := h.planService.GetPlanByID(planID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}

	if plan.MapPath == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "map not found for this plan"})
		return
	}

	// Отправляем файл карты
	c.File(plan.MapPath)
}
