package models

// TurnDirection направление разворота робота на 180 градусов
type TurnDirection string

const (
	// TurnClockwise разворот по часовой стрелке
	TurnClockwise TurnDirection = "clockwise"
	// TurnCounterClockwise разворот против часовой стрелки
	TurnCounterClockwise TurnDirection = "counterclockwise"
)

// CoverageRequest представляет запрос к сервису построения порядка обхода
type CoverageRequest struct {
	Grid  [][]bool  `json:"grid"`  // Грубая сетка: true — тайл занят препятствием
	Start GridPoint `json:"start"` // Стартовый тайл робота в координатах сетки
}

// CoverageResponse определяет структуру ответа сервиса порядка обхода.
// Список turn_directions должен содержать ровно одну запись на каждый
// разворот на 180 градусов в path, причем ПОСЛЕДНЯЯ запись относится к
// ПЕРВОМУ развороту по ходу пути (потребляется с конца, LIFO).
type CoverageResponse struct {
	Status         string          `json:"status"`          // Статус выполнения (success/error)
	Message        string          `json:"message"`         // Сообщение
	Path           []GridPoint     `json:"path"`            // Упорядоченный список посещаемых тайлов
	TurnDirections []TurnDirection `json:"turn_directions"` // Подсказки направления разворотов
}

// HealthResponse представляет ответ проверки здоровья сервиса обхода
type HealthResponse struct {
	Status       string `json:"status"`        // Статус сервиса (healthy/unhealthy)
	PlannerReady bool   `json:"planner_ready"` // Готов ли алгоритм обхода
	Version      string `json:"version"`       // Версия сервиса
}
