package grid

import (
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coverage-planner-go/pkg/models"
)

func testDiscretizer() *Discretizer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewDiscretizer(logger)
}

func flatMap(width, height int, resolution float64, origin []float64) *OccupancyMap {
	return &OccupancyMap{
		Resolution: resolution,
		Origin:     origin,
		Width:      width,
		Height:     height,
		Data:       make([]byte, width*height),
	}
}

func poseAt(x, y, yaw float64) models.PoseStamped {
	return models.PoseStamped{
		FrameID: "map",
		Pose: models.Pose{
			Position:    models.Point{X: x, Y: y},
			Orientation: models.QuaternionFromYaw(yaw),
		},
	}
}

func TestDiscretizeNodeSize(t *testing.T) {
	d := testDiscretizer()

	cases := []struct {
		name         string
		resolution   float64
		tileSizeM    float64
		wantNodeSize int
		wantTileSize float64
	}{
		{"тайл кратен ячейке", 0.05, 0.3, 6, 0.3},
		{"округление вверх", 0.05, 0.32, 7, 0.35},
		{"тайл меньше ячейки", 0.05, 0.01, 1, 0.05},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := flatMap(20, 20, tc.resolution, []float64{0, 0})
			res, err := d.Discretize(m, tc.tileSizeM, poseAt(0, 0, 0))
			require.NoError(t, err)

			assert.Equal(t, tc.wantNodeSize, res.NodeSize)
			assert.InDelta(t, tc.wantTileSize, res.TileSize, 1e-9)
			// Фактическая сторона тайла никогда не меньше запрошенной
			assert.GreaterOrEqual(t, res.TileSize+1e-9, tc.tileSizeM)
		})
	}
}

func TestDiscretizeEmptyMap(t *testing.T) {
	d := testDiscretizer()

	m := flatMap(0, 0, 0.05, []float64{0, 0})
	_, err := d.Discretize(m, 0.3, poseAt(0, 0, 0))

	assert.ErrorIs(t, err, ErrEmptyMap)
}

func TestDiscretizeGridDimensions(t *testing.T) {
	d := testDiscretizer()

	// 10x10 ячеек при стороне тайла в 3 ячейки: неполные тайлы по краям
	// тоже попадают в сетку
	m := flatMap(10, 10, 0.1, []float64{0, 0})
	res, err := d.Discretize(m, 0.3, poseAt(0, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, 4, res.Grid.Rows())
	assert.Equal(t, 4, res.Grid.Cols())
}

func TestDiscretizeOccupancyThreshold(t *testing.T) {
	d := testDiscretizer()

	// 4x4 ячеек, тайлы по 2 ячейки: сетка 2x2
	m := flatMap(4, 4, 0.25, []float64{0, 0})
	// Стоимость ровно на пороге не считается препятствием
	m.Data[0] = CoverageCost
	// Стоимость строго выше порога занимает весь тайл
	m.Data[3*4+3] = CoverageCost + 1

	res, err := d.Discretize(m, 0.5, poseAt(0, 0, 0))
	require.NoError(t, err)

	require.Equal(t, 2, res.Grid.Rows())
	require.Equal(t, 2, res.Grid.Cols())
	assert.False(t, res.Grid[0][0])
	assert.False(t, res.Grid[0][1])
	assert.False(t, res.Grid[1][0])
	assert.True(t, res.Grid[1][1])
}

func TestDiscretizeGridOrigin(t *testing.T) {
	d := testDiscretizer()

	m := flatMap(4, 4, 0.5, []float64{1, 2})
	res, err := d.Discretize(m, 0.5, poseAt(1.25, 2.25, 0))
	require.NoError(t, err)

	// Начало сетки совпадает с центром ячейки (0, 0)
	assert.InDelta(t, 1.25, res.GridOrigin.X(), 1e-9)
	assert.InDelta(t, 2.25, res.GridOrigin.Y(), 1e-9)
}

func TestDiscretizeScaledStart(t *testing.T) {
	d := testDiscretizer()

	m := flatMap(4, 4, 0.25, []float64{0, 0})
	res, err := d.Discretize(m, 0.5, poseAt(0.7, 0.2, 0))
	require.NoError(t, err)

	// Старт масштабируется в координаты сетки относительно ее начала
	assert.Equal(t, models.GridPoint{X: 1, Y: 0}, res.ScaledStart)
}

func TestDiscretizeScaledStartClamped(t *testing.T) {
	d := testDiscretizer()

	m := flatMap(4, 4, 0.25, []float64{0, 0})

	// Поза далеко за пределами карты прижимается к границам диапазона
	res, err := d.Discretize(m, 0.5, poseAt(-10, 100, 0))
	require.NoError(t, err)

	assert.Equal(t, 0, res.ScaledStart.X)
	assert.Equal(t, 8, res.ScaledStart.Y)
}

func TestDiscretizeStartYaw(t *testing.T) {
	d := testDiscretizer()

	m := flatMap(4, 4, 0.25, []float64{0, 0})

	res, err := d.Discretize(m, 0.5, poseAt(0, 0, math.Pi/2))
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, res.StartYaw, 1e-9)

	// Знак угла теряется, возвращается модуль
	res, err = d.Discretize(m, 0.5, poseAt(0, 0, -math.Pi/2))
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, res.StartYaw, 1e-9)
}
