package waypoint

import "math"

// Direction направление движения между соседними тайлами сетки
type Direction int

const (
	// DirectionNone движение отсутствует (повторный тайл)
	DirectionNone Direction = iota
	// DirectionRight движение вдоль +X
	DirectionRight
	// DirectionUp движение вдоль +Y
	DirectionUp
	// DirectionLeft движение вдоль -X
	DirectionLeft
	// DirectionDown движение вдоль -Y
	DirectionDown
)

// DirectionFromDelta декодирует направление по разности соседних тайлов.
// Ожидаются дельты из {-1, 0, 1} не более чем по одной оси; всё прочее
// трактуется как отсутствие движения.
func DirectionFromDelta(dx, dy int) Direction {
	switch {
	case dx == 1 && dy == 0:
		return DirectionRight
	case dx == 0 && dy == 1:
		return DirectionUp
	case dx == -1 && dy == 0:
		return DirectionLeft
	case dx == 0 && dy == -1:
		return DirectionDown
	default:
		return DirectionNone
	}
}

// Heading возвращает курс движения в радианах для данного направления
func (d Direction) Heading() float64 {
	switch d {
	case DirectionRight:
		return 0
	case DirectionUp:
		return math.Pi / 2
	case DirectionLeft:
		return math.Pi
	case DirectionDown:
		return math.Pi * 1.5
	default:
		return 0
	}
}

// String возвращает читаемое имя направления
func (d Direction) String() string {
	switch d {
	case DirectionRight:
		return "right"
	case DirectionUp:
		return "up"
	case DirectionLeft:
		return "left"
	case DirectionDown:
		return "down"
	default:
		return "none"
	}
}
