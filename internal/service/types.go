package service

import (
	"time"

	"coverage-planner-go/pkg/models"
)

// WaypointInfo информация об одной позе плана
type WaypointInfo struct {
	Seq int     `json:"seq"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Yaw float64 `json:"yaw"`
}

// PlanStats общая статистика плана покрытия
type PlanStats struct {
	GridRows       int     `json:"grid_rows"`
	GridCols       int     `json:"grid_cols"`
	OccupiedTiles  int     `json:"occupied_tiles"`
	PathPoints     int     `json:"path_points"`
	TotalWaypoints int     `json:"total_waypoints"`
	TileSizeM      float64 `json:"tile_size_m"`
}

// PlanResult результат планирования покрытия до сохранения в базе
type PlanResult struct {
	Start      models.PoseStamped   `json:"start"`
	TileSizeM  float64              `json:"tile_size_m"`
	GridOrigin models.Point         `json:"grid_origin"`
	Stats      PlanStats            `json:"stats"`
	Plan       []models.PoseStamped `json:"plan"`
}

// PlanResponse ответ с информацией о сохраненном плане
type PlanResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	FrameID     string         `json:"frame_id"`
	Start       models.Point   `json:"start"`
	StartYaw    float64        `json:"start_yaw"`
	GridOrigin  models.Point   `json:"grid_origin"`
	Stats       PlanStats      `json:"stats"`
	Waypoints   []WaypointInfo `json:"waypoints"`
	CreatedAt   time.Time      `json:"created_at"`
	MapFilename string         `json:"map_filename,omitempty"`
	MapPath     string         `json:"map_path,omitempty"`
}

// ListPlansResponse ответ со списком планов
type ListPlansResponse struct {
	Plans []PlanResponse `json:"plans"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

// GetPlansByAreaResponse ответ со списком планов в области
type GetPlansByAreaResponse struct {
	Plans []PlanResponse `json:"plans"`
	Total int            `json:"total"`
}
