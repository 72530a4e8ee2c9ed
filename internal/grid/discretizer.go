package grid

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"

	"coverage-planner-go/pkg/models"
)

// CoverageCost пороговая стоимость: ячейка со стоимостью строго выше
// считается препятствием, и весь накрывающий ее тайл помечается занятым
const CoverageCost = 128

// ErrEmptyMap возвращается при попытке дискретизации пустой карты
var ErrEmptyMap = errors.New("карта занятости не содержит ячеек")

// CoarseGrid грубая булева сетка тайлов: true — тайл занят.
// Строки идут по оси Y карты, столбцы по оси X.
type CoarseGrid [][]bool

// Rows возвращает количество строк сетки
func (g CoarseGrid) Rows() int {
	return len(g)
}

// Cols возвращает количество столбцов сетки
func (g CoarseGrid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// DiscretizeResult результат дискретизации карты занятости
type DiscretizeResult struct {
	Grid        CoarseGrid       // Грубая сетка тайлов
	NodeSize    int              // Сторона тайла в ячейках карты
	TileSize    float64          // Фактическая сторона тайла в метрах
	GridOrigin  orb.Point        // Мировые координаты ячейки (0,0) карты
	ScaledStart models.GridPoint // Стартовая позиция в координатах сетки
	StartYaw    float64          // Начальный курс робота (модуль угла)
}

// Discretizer преобразует карту занятости в грубую сетку для алгоритма обхода
type Discretizer struct {
	logger *logrus.Logger
}

// NewDiscretizer создает новый дискретизатор
func NewDiscretizer(logger *logrus.Logger) *Discretizer {
	return &Discretizer{
		logger: logger,
	}
}

// Discretize строит грубую сетку по карте занятости.
// tileSizeM — желаемая сторона тайла в метрах; фактическая сторона
// округляется вверх до целого числа ячеек карты и может быть больше
// запрошенной. Все последующие вычисления должны использовать
// TileSize из результата, а не запрошенное значение.
func (d *Discretizer) Discretize(m *OccupancyMap, tileSizeM float64, realStart models.PoseStamped) (*DiscretizeResult, error) {
	// Сторона тайла в ячейках: округляем вверх, минимум одна ячейка
	nodeSize := int(math.Ceil(tileSizeM / m.Resolution))
	if nodeSize < 1 {
		nodeSize = 1
	}
	nRows := m.Height
	nCols := m.Width
	d.logger.Infof("Дискретизация карты: строк %d, столбцов %d, сторона тайла %d ячеек", nRows, nCols, nodeSize)

	if nRows == 0 || nCols == 0 {
		return nil, ErrEmptyMap
	}

	// Запоминаем начало сетки и фактический размер тайла
	gridOrigin := m.MapToWorld(0, 0)
	tileSize := float64(nodeSize) * m.Resolution

	// Масштабируем стартовую позицию в координаты сетки. Ограничение
	// диапазона защищает от позы, оказавшейся чуть за границей карты
	// из-за ошибок округления.
	scaledStart := models.GridPoint{
		X: int(clamp(
			(realStart.Pose.Position.X-gridOrigin.X())/tileSize,
			0, math.Floor(float64(nCols)/tileSize))),
		Y: int(clamp(
			(realStart.Pose.Position.Y-gridOrigin.Y())/tileSize,
			0, math.Floor(float64(nRows)/tileSize))),
	}

	// Начальный курс: модуль угла поворота, знак теряется
	startYaw := realStart.Pose.Orientation.Angle()

	// Строим грубую сетку: тайл занят, если хотя бы одна ячейка внутри
	// него дороже порога. Поиск прерывается на первой найденной.
	coarse := make(CoarseGrid, 0, (nRows+nodeSize-1)/nodeSize)
	for iy := 0; iy < nRows; iy += nodeSize {
		row := make([]bool, 0, (nCols+nodeSize-1)/nodeSize)
		for ix := 0; ix < nCols; ix += nodeSize {
			occupied := false
			for nodeRow := 0; nodeRow < nodeSize && iy+nodeRow < nRows && !occupied; nodeRow++ {
				for nodeCol := 0; nodeCol < nodeSize && ix+nodeCol < nCols; nodeCol++ {
					if m.Cost(ix+nodeCol, iy+nodeRow) > CoverageCost {
						occupied = true
						break
					}
				}
			}
			row = append(row, occupied)
		}
		coarse = append(coarse, row)
	}

	return &DiscretizeResult{
		Grid:        coarse,
		NodeSize:    nodeSize,
		TileSize:    tileSize,
		GridOrigin:  gridOrigin,
		ScaledStart: scaledStart,
		StartYaw:    startYaw,
	}, nil
}

// clamp ограничивает значение диапазоном [lo, hi]
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
