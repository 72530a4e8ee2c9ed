package waypoint

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"

	"coverage-planner-go/pkg/models"
)

// PlanToGeoJSON возвращает GeoJSON представление плана для отображения:
// линия пути плюс точечные объекты для каждой позы с ее курсом
func PlanToGeoJSON(plan []models.PoseStamped) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	line := make([][]float64, len(plan))
	for i := range plan {
		line[i] = []float64{plan[i].Pose.Position.X, plan[i].Pose.Position.Y}
	}
	lineFeature := geojson.NewLineStringFeature(line)
	lineFeature.SetProperty("kind", "path")
	fc.AddFeature(lineFeature)

	for i := range plan {
		pt := geojson.NewPointFeature([]float64{plan[i].Pose.Position.X, plan[i].Pose.Position.Y})
		pt.SetProperty("kind", "waypoint")
		pt.SetProperty("seq", i)
		pt.SetProperty("yaw", plan[i].Pose.Orientation.Yaw())
		pt.SetProperty("frame_id", plan[i].FrameID)
		fc.AddFeature(pt)
	}

	b, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации плана в GeoJSON: %w", err)
	}
	return b, nil
}
