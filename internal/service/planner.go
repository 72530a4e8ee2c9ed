package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"coverage-planner-go/internal/client"
	"coverage-planner-go/internal/grid"
	"coverage-planner-go/internal/waypoint"
	"coverage-planner-go/pkg/models"
)

// PlannerService сервис планирования полного покрытия
type PlannerService struct {
	coverageClient *client.CoverageAPIClient
	discretizer    *grid.Discretizer
	synthesizer    *waypoint.Synthesizer
	logger         *logrus.Logger
}

// NewPlannerService создает новый сервис планировщика
func NewPlannerService(coverageClient *client.CoverageAPIClient, logger *logrus.Logger) *PlannerService {
	return &PlannerService{
		coverageClient: coverageClient,
		discretizer:    grid.NewDiscretizer(logger),
		synthesizer:    waypoint.NewSynthesizer(logger),
		logger:         logger,
	}
}

// PlanCoverage строит план полного покрытия по загруженной карте занятости.
//
// Последовательность: дискретизация карты в грубую сетку, запрос порядка
// обхода у внешнего сервиса, синтез разреженного плана ориентированных поз.
// Пустой путь обхода — штатный вырожденный случай: возвращается результат
// с пустым планом, решение о повторе принимает вызывающая сторона.
func (s *PlannerService) PlanCoverage(mapData []byte, realStart models.PoseStamped, tileSizeM float64) (*PlanResult, error) {
	s.logger.Infof("Начинаем планирование покрытия, сторона тайла %.3f м", tileSizeM)

	startTime := time.Now()

	// 1. Разбираем карту занятости
	occMap, err := grid.ParseOccupancyMap(mapData)
	if err != nil {
		s.logger.Errorf("Ошибка разбора карты занятости: %v", err)
		return nil, fmt.Errorf("failed to parse occupancy map: %w", err)
	}

	// 2. Дискретизируем карту в грубую сетку
	discretized, err := s.discretizer.Discretize(occMap, tileSizeM, realStart)
	if err != nil {
		s.logger.Errorf("Ошибка дискретизации карты: %v", err)
		return nil, fmt.Errorf("failed to discretize map: %w", err)
	}
	s.logger.Infof("Сетка %dx%d, фактический тайл %.3f м, старт (%d, %d), курс %.3f",
		discretized.Grid.Rows(), discretized.Grid.Cols(), discretized.TileSize,
		discretized.ScaledStart.X, discretized.ScaledStart.Y, discretized.StartYaw)

	// 3. Запрашиваем порядок обхода у внешнего сервиса
	coverageResp, err := s.coverageClient.PlanCoverage(models.CoverageRequest{
		Grid:  discretized.Grid,
		Start: discretized.ScaledStart,
	})
	if err != nil {
		s.logger.Errorf("Ошибка при обращении к сервису обхода: %v", err)
		return nil, fmt.Errorf("failed to get coverage ordering: %w", err)
	}
	if coverageResp.Status != "success" {
		s.logger.Errorf("Сервис обхода вернул ошибку: %s", coverageResp.Message)
		return nil, fmt.Errorf("coverage service error: %s", coverageResp.Message)
	}

	// 4. Синтезируем разреженный план ориентированных поз
	plan, err := s.synthesizer.Synthesize(realStart, coverageResp.Path,
		coverageResp.TurnDirections, discretized.TileSize, discretized.GridOrigin)
	if err != nil {
		s.logger.Errorf("Ошибка синтеза плана: %v", err)
		return nil, fmt.Errorf("failed to synthesize plan: %w", err)
	}
	if len(plan) == 0 {
		s.logger.Warn("Сервис обхода вернул пустой путь, план пуст")
	}

	occupied := 0
	for _, row := range discretized.Grid {
		for _, tile := range row {
			if tile {
				occupied++
			}
		}
	}

	processingTime := time.Since(startTime)
	s.logger.Infof("Планирование завершено за %v: %d поз из %d тайлов пути", processingTime, len(plan), len(coverageResp.Path))

	return &PlanResult{
		Start:     realStart,
		TileSizeM: discretized.TileSize,
		GridOrigin: models.Point{
			X: discretized.GridOrigin.X(),
			Y: discretized.GridOrigin.Y(),
		},
		Stats: PlanStats{
			GridRows:       discretized.Grid.Rows(),
			GridCols:       discretized.Grid.Cols(),
			OccupiedTiles:  occupied,
			PathPoints:     len(coverageResp.Path),
			TotalWaypoints: len(plan),
			TileSizeM:      discretized.TileSize,
		},
		Plan: plan,
	}, nil
}

// CheckHealth проверяет состояние сервиса и его зависимостей
func (s *PlannerService) CheckHealth() (*models.HealthResponse, error) {
	s.logger.Debug("Проверяем состояние сервиса планировщика")

	// Проверяем состояние сервиса порядка обхода
	coverageHealth, err := s.coverageClient.CheckHealth()
	if err != nil {
		s.logger.Errorf("Сервис обхода недоступен: %v", err)
		return &models.HealthResponse{
			Status:       "unhealthy",
			PlannerReady: false,
			Version:      "1.0.0",
		}, nil
	}

	// Если сервис обхода здоров, возвращаем его статус
	return coverageHealth, nil
}
