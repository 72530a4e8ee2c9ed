package grid

import (
	"fmt"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

// OccupancyMap представляет карту занятости в формате map_server:
// метаданные плюс массив стоимостей ячеек (0-255), построчно по оси Y.
// Карта только читается, ядро планировщика ее не изменяет.
type OccupancyMap struct {
	Resolution float64   `yaml:"resolution"` // Размер ячейки в метрах
	Origin     []float64 `yaml:"origin"`     // Мировые координаты угла карты [x, y, yaw]
	Width      int       `yaml:"width"`      // Количество ячеек по оси X
	Height     int       `yaml:"height"`     // Количество ячеек по оси Y
	Negate     int       `yaml:"negate"`     // Инвертировать стоимости (как в map_server)
	Data       []byte    `yaml:"data"`       // Стоимости ячеек, индекс = iy*width + ix
}

// ParseOccupancyMap разбирает YAML документ карты занятости и валидирует его
func ParseOccupancyMap(raw []byte) (*OccupancyMap, error) {
	var m OccupancyMap
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("ошибка разбора YAML карты: %w", err)
	}

	if m.Resolution <= 0 {
		return nil, fmt.Errorf("разрешение карты должно быть положительным, получено %f", m.Resolution)
	}
	if len(m.Origin) < 2 {
		return nil, fmt.Errorf("origin карты должен содержать минимум 2 координаты, получено %d", len(m.Origin))
	}
	if m.Width < 0 || m.Height < 0 {
		return nil, fmt.Errorf("размеры карты не могут быть отрицательными: %dx%d", m.Width, m.Height)
	}
	if len(m.Data) != m.Width*m.Height {
		return nil, fmt.Errorf("размер данных карты %d не совпадает с размерами %dx%d", len(m.Data), m.Width, m.Height)
	}

	// Применяем флаг negate один раз при загрузке
	if m.Negate != 0 {
		for i := range m.Data {
			m.Data[i] = 255 - m.Data[i]
		}
		m.Negate = 0
	}

	return &m, nil
}

// Cost возвращает стоимость ячейки (ix, iy)
func (m *OccupancyMap) Cost(ix, iy int) byte {
	return m.Data[iy*m.Width+ix]
}

// MapToWorld возвращает мировые координаты центра ячейки (ix, iy)
func (m *OccupancyMap) MapToWorld(ix, iy int) orb.Point {
	return orb.Point{
		m.Origin[0] + (float64(ix)+0.5)*m.Resolution,
		m.Origin[1] + (float64(iy)+0.5)*m.Resolution,
	}
}
