package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"coverage-planner-go/internal/grid"
	"coverage-planner-go/internal/waypoint"
	"coverage-planner-go/pkg/models"

	"github.com/gin-gonic/gin"
)

// PlanCoverage обрабатывает запрос на построение плана покрытия
// @Summary Построение плана покрытия
// @Description Принимает карту занятости и стартовую позу, возвращает план обхода
// @Accept multipart/form-data
// @Param map formData file true "Файл карты занятости (YAML)"
// @Param start_x formData number true "Стартовая координата X в метрах"
// @Param start_y formData number true "Стартовая координата Y в метрах"
// @Param start_yaw formData number false "Стартовый курс в радианах"
// @Param tile_size formData number false "Размер инструмента в метрах"
// @Param plan_id formData string false "ID плана"
// @Param name formData string false "Название плана"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/plan [post]
func (h *PlanHandler) PlanCoverage(c *gin.Context) {
	h.logger.Info("Получен запрос на построение плана покрытия")

	// Получаем файл карты из формы
	file, header, err := c.Request.FormFile("map")
	if err != nil {
		h.logger.Errorf("Ошибка получения файла карты: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Файл карты не найден в запросе"})
		return
	}
	defer file.Close()

	mapData, err := io.ReadAll(file)
	if err != nil {
		h.logger.Errorf("Ошибка чтения файла карты: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения файла карты"})
		return
	}

	// Парсим стартовую позу
	startXStr := getFormValue(c, []string{"start_x", "startX"})
	startYStr := getFormValue(c, []string{"start_y", "startY"})
	if startXStr == "" || startYStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Отсутствуют обязательные параметры: start_x, start_y",
		})
		return
	}

	startX, err := strconv.ParseFloat(startXStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат start_x"})
		return
	}

	startY, err := strconv.ParseFloat(startYStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат start_y"})
		return
	}

	startYaw := 0.0
	if yawStr := getFormValue(c, []string{"start_yaw", "startYaw"}); yawStr != "" {
		startYaw, err = strconv.ParseFloat(yawStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат start_yaw"})
			return
		}
	}

	tileSize := h.defaultTileSize
	if tileStr := getFormValue(c, []string{"tile_size", "tileSize"}); tileStr != "" {
		tileSize, err = strconv.ParseFloat(tileStr, 64)
		if err != nil || tileSize <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат tile_size"})
			return
		}
	}

	realStart := models.PoseStamped{
		FrameID: "map",
		Stamp:   time.Now(),
		Pose: models.Pose{
			Position:    models.Point{X: startX, Y: startY},
			Orientation: models.QuaternionFromYaw(startYaw),
		},
	}

	h.logger.Infof("Построение плана: карта %s, старт (%.3f, %.3f), инструмент %.3f м",
		header.Filename, startX, startY, tileSize)

	// Строим план покрытия
	result, err := h.plannerService.PlanCoverage(mapData, realStart, tileSize)
	if err != nil {
		h.logger.Errorf("Ошибка построения плана: %v", err)
		switch {
		case errors.Is(err, grid.ErrEmptyMap):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Карта занятости пуста"})
		case errors.Is(err, waypoint.ErrTurnHintsExhausted):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Сервис планирования вернул несогласованный ответ",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка построения плана"})
		}
		return
	}

	if len(result.Plan) == 0 {
		h.logger.Warn("План покрытия пуст, сохранение не выполняется")
		c.JSON(http.StatusOK, gin.H{
			"status":  "empty",
			"message": "Сервис планирования не нашел путь покрытия",
		})
		return
	}

	// Сохраняем план в базу данных
	planID := getFormValue(c, []string{"plan_id", "planId"})
	if planID == "" {
		planID = h.planService.GeneratePlanID()
	}
	name := getFormValue(c, []string{"name"})

	if err := h.planService.SavePlan(planID, name, header.Filename, bytes.NewReader(mapData), result); err != nil {
		h.logger.Errorf("Ошибка сохранения плана: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сохранения плана"})
		return
	}

	h.logger.Infof("План %s построен: %d путевых точек", planID, result.Stats.TotalWaypoints)
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"plan_id": planID,
		"stats":   result.Stats,
		"plan":    result.Plan,
	})
}

// CheckHealth проверяет состояние сервиса планирования
// @Summary Проверка состояния
// @Success 200 {object} models.HealthResponse
// @Router /api/v1/health [get]
func (h *PlanHandler) CheckHealth(c *gin.Context) {
	health, err := h.plannerService.CheckHealth()
	if err != nil {
		h.logger.Errorf("Ошибка проверки состояния: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Сервис недоступен"})
		return
	}

	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, health)
}
