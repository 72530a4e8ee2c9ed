package waypoint

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"

	"coverage-planner-go/pkg/models"
)

// FrameMap система координат публикуемого плана
const FrameMap = "map"

const (
	// startOffsetTolerance допуск расхождения первой точки плана и
	// реальной стартовой позы: 100 * FLT_EPSILON на каждую ось
	startOffsetTolerance = 100.0 * 1.19209290e-07

	// reversalAngleTolerance допуск углового сравнения при детекции
	// разворота ровно на 180 градусов
	reversalAngleTolerance = 1e-6
)

// ErrTurnHintsExhausted возвращается, когда разворотов на пути больше,
// чем подсказок направления. Это нарушение контракта со стороны сервиса
// порядка обхода, план в таком случае не публикуется.
var ErrTurnHintsExhausted = errors.New("подсказки направления разворота исчерпаны")

// Synthesizer превращает плотный список посещаемых тайлов в разреженный
// план ориентированных поз
type Synthesizer struct {
	logger *logrus.Logger
	clock  func() time.Time
}

// NewSynthesizer создает новый синтезатор плана
func NewSynthesizer(logger *logrus.Logger) *Synthesizer {
	return &Synthesizer{
		logger: logger,
		clock:  time.Now,
	}
}

// Synthesize строит план из списка тайлов пути обхода.
//
// Поза оставляется в плане, если тайл первый, последний или в нем
// меняется направление движения. При каждой смене направления предыдущая
// оставленная поза переиздается с новым курсом, чтобы получить поворот на
// месте. Разворот ровно на 180 градусов дополнительно получает
// промежуточную позу, повернутую на 90 градусов в сторону, заданную
// последней неиспользованной подсказкой (подсказки потребляются с конца
// списка, см. контракт CoverageResponse).
//
// Пустой список тайлов — штатный вырожденный случай: пишется warning и
// возвращается пустой план. Нехватка подсказок — нарушение контракта,
// возвращается ErrTurnHintsExhausted.
func (s *Synthesizer) Synthesize(realStart models.PoseStamped, points []models.GridPoint, turns []models.TurnDirection, tileSize float64, gridOrigin orb.Point) ([]models.PoseStamped, error) {
	s.logger.Infof("Получен путь обхода длиной %d тайлов", len(points))

	if len(points) < 1 {
		s.logger.Warn("Пустой список тайлов, план не построен")
		return nil, nil
	}

	stamp := s.clock()
	plan := make([]models.PoseStamped, 0, len(points)+4)

	if len(points) == 1 {
		// Единственный тайл: направление не выводимо, курс ноль
		plan = append(plan, s.tilePose(points[0], 0, tileSize, gridOrigin, stamp))
	} else {
		// Состояние между итерациями локально для вызова: синтез
		// безопасен при параллельных запросах планирования
		var (
			prevGoal    models.PoseStamped
			prevHeading float64
			heading     float64
			hints       = turns
		)

		for i := range points {
			var dxNow, dyNow int
			if i == 0 {
				dxNow = points[1].X - points[0].X
				dyNow = points[1].Y - points[0].Y
			} else {
				dxNow = points[i].X - points[i-1].X
				dyNow = points[i].Y - points[i-1].Y
			}
			dirNow := DirectionFromDelta(dxNow, dyNow)

			last := i == len(points)-1
			dirNext := DirectionNone
			if !last {
				dirNext = DirectionFromDelta(points[i+1].X-points[i].X, points[i+1].Y-points[i].Y)
			}

			// Поза нужна в плане при смене направления, а также в первом
			// и последнем тайле
			if i != 0 && !last && dirNext == dirNow {
				continue
			}

			// Курс совпадает с направлением движения; отсутствие
			// движения сохраняет предыдущий курс
			if dirNow != DirectionNone {
				heading = dirNow.Heading()
			}
			goal := s.tilePose(points[i], heading, tileSize, gridOrigin, stamp)

			if i != 0 {
				if isReversal(heading, prevHeading) {
					// Прямой разворот неоднозначен: сторону вращения
					// задает последняя доступная подсказка
					if len(hints) == 0 {
						return nil, fmt.Errorf("разворот в тайле (%d, %d) не разрешим: %w", points[i].X, points[i].Y, ErrTurnHintsExhausted)
					}
					hint := hints[len(hints)-1]
					hints = hints[:len(hints)-1]

					rotated := math.Pi / 2
					if hint == models.TurnClockwise {
						rotated = -math.Pi / 2
					}
					intermediate := prevGoal
					intermediate.Pose.Orientation = models.QuaternionFromYaw(heading + rotated)
					plan = append(plan, intermediate)
				}
				// Переиздаем предыдущую цель с новым курсом, чтобы план
				// сначала поворачивал на месте, затем ехал
				prevGoal.Pose.Orientation = goal.Pose.Orientation
				plan = append(plan, prevGoal)
			}

			plan = append(plan, goal)
			prevGoal = goal
			prevHeading = heading
		}
	}

	// Достраиваем переход от текущей позиции робота к началу шаблона
	// обхода: поворот в сторону первой точки, затем проезд
	dy := plan[0].Pose.Position.Y - realStart.Pose.Position.Y
	dx := plan[0].Pose.Position.X - realStart.Pose.Position.X
	if !(math.Abs(dy) < startOffsetTolerance && math.Abs(dx) < startOffsetTolerance) {
		yaw := math.Atan2(dy, dx)
		transitionQuat := models.QuaternionFromYaw(yaw)

		firstGoal := plan[0]
		firstGoal.Pose.Orientation = transitionQuat
		fromStart := realStart
		fromStart.Pose.Orientation = transitionQuat
		plan = append([]models.PoseStamped{fromStart, firstGoal}, plan...)
	}

	// План всегда начинается с нетронутой реальной позы робота
	plan = append([]models.PoseStamped{realStart}, plan...)

	s.logger.Infof("План готов, содержит %d целей", len(plan))
	return plan, nil
}

// tilePose возвращает позу в центре тайла с заданным курсом
func (s *Synthesizer) tilePose(pt models.GridPoint, heading, tileSize float64, gridOrigin orb.Point, stamp time.Time) models.PoseStamped {
	return models.PoseStamped{
		FrameID: FrameMap,
		Stamp:   stamp,
		Pose: models.Pose{
			Position: models.Point{
				X: float64(pt.X)*tileSize + gridOrigin.X() + tileSize*0.5,
				Y: float64(pt.Y)*tileSize + gridOrigin.Y() + tileSize*0.5,
			},
			Orientation: models.QuaternionFromYaw(heading),
		},
	}
}

// isReversal проверяет, что новый курс противоположен предыдущему
// (разворот ровно на 180 градусов) с угловым допуском
func isReversal(heading, prevHeading float64) bool {
	return math.Abs(normalizeAngle(heading-prevHeading-math.Pi)) < reversalAngleTolerance
}

// normalizeAngle приводит угол к диапазону (-pi, pi]
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
