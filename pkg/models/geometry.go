package models

import (
	"math"
	"time"
)

// Point представляет точку в мировой системе координат (метры)
type Point struct {
	X float64 `json:"x"` // Координата X
	Y float64 `json:"y"` // Координата Y
}

// GridPoint представляет целочисленную координату тайла в грубой сетке
type GridPoint struct {
	X int `json:"x"` // Индекс тайла по оси X (столбец)
	Y int `json:"y"` // Индекс тайла по оси Y (строка)
}

// Quaternion представляет ориентацию в виде единичного кватерниона
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// QuaternionFromYaw создает единичный кватернион поворота вокруг
// вертикальной оси на угол yaw (радианы)
func QuaternionFromYaw(yaw float64) Quaternion {
	return Quaternion{
		X: 0,
		Y: 0,
		Z: math.Sin(yaw / 2),
		W: math.Cos(yaw / 2),
	}
}

// Angle возвращает величину угла поворота кватерниона (радианы).
// Возвращается модуль угла, знак поворота теряется.
func (q Quaternion) Angle() float64 {
	w := q.W
	if w > 1 {
		w = 1
	} else if w < -1 {
		w = -1
	}
	return 2 * math.Acos(w)
}

// Yaw возвращает угол поворота вокруг вертикальной оси со знаком (радианы)
func (q Quaternion) Yaw() float64 {
	return 2 * math.Atan2(q.Z, q.W)
}

// Pose представляет позицию и ориентацию робота
type Pose struct {
	Position    Point      `json:"position"`    // Позиция в метрах
	Orientation Quaternion `json:"orientation"` // Ориентация
}

// PoseStamped представляет позу с привязкой к системе координат и времени
type PoseStamped struct {
	FrameID string    `json:"frame_id"` // Система координат (обычно "map")
	Stamp   time.Time `json:"stamp"`    // Момент времени
	Pose    Pose      `json:"pose"`     // Поза
}
