package model

import (
	"time"

	"gorm.io/gorm"
)

// Plan представляет план покрытия в базе данных
type Plan struct {
	ID       string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	FrameID  string  `gorm:"type:varchar(64);not null;default:map" json:"frame_id"`
	StartX   float64 `gorm:"not null" json:"start_x"`
	StartY   float64 `gorm:"not null" json:"start_y"`
	StartYaw float64 `gorm:"not null" json:"start_yaw"`

	// Геометрия сетки, от которой построен план
	TileSizeM   float64 `gorm:"not null" json:"tile_size_m"`
	GridOriginX float64 `gorm:"not null" json:"grid_origin_x"`
	GridOriginY float64 `gorm:"not null" json:"grid_origin_y"`
	GridRows    int     `gorm:"not null;default:0" json:"grid_rows"`
	GridCols    int     `gorm:"not null;default:0" json:"grid_cols"`

	// Общая статистика плана
	OccupiedTiles  int `gorm:"not null;default:0" json:"occupied_tiles"`
	PathPoints     int `gorm:"not null;default:0" json:"path_points"`
	TotalWaypoints int `gorm:"not null;default:0" json:"total_waypoints"`

	MapFilename string `gorm:"type:varchar(255)" json:"map_filename"`
	MapPath     string `gorm:"type:varchar(500)" json:"map_path"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Связь с позами плана
	Waypoints []Waypoint `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE" json:"waypoints"`
}

// Waypoint представляет одну позу плана в базе данных
type Waypoint struct {
	ID     uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	PlanID string  `gorm:"type:varchar(36);not null;index" json:"plan_id"`
	Seq    int32   `gorm:"not null" json:"seq"`
	X      float64 `gorm:"not null" json:"x"`
	Y      float64 `gorm:"not null" json:"y"`
	Yaw    float64 `gorm:"not null" json:"yaw"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Обратная связь с планом
	Plan Plan `gorm:"foreignKey:PlanID;references:ID" json:"-"`
}

// TableName указывает имя таблицы для Plan
func (Plan) TableName() string {
	return "plans"
}

// TableName указывает имя таблицы для Waypoint
func (Waypoint) TableName() string {
	return "waypoints"
}
