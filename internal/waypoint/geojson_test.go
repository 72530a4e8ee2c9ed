package waypoint

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coverage-planner-go/pkg/models"
)

func TestPlanToGeoJSON(t *testing.T) {
	plan := []models.PoseStamped{
		startAt(0.5, 0.5, 0),
		startAt(2.5, 0.5, 0),
		startAt(2.5, 2.5, math.Pi/2),
	}

	body, err := PlanToGeoJSON(plan)
	require.NoError(t, err)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(body, &fc))

	assert.Equal(t, "FeatureCollection", fc.Type)
	// Линия пути плюс точка на каждую позу
	require.Len(t, fc.Features, 4)

	line := fc.Features[0]
	assert.Equal(t, "LineString", line.Geometry.Type)
	assert.Equal(t, "path", line.Properties["kind"])

	var lineCoords [][]float64
	require.NoError(t, json.Unmarshal(line.Geometry.Coordinates, &lineCoords))
	require.Len(t, lineCoords, 3)
	assert.InDelta(t, 2.5, lineCoords[2][0], 1e-9)
	assert.InDelta(t, 2.5, lineCoords[2][1], 1e-9)

	last := fc.Features[3]
	assert.Equal(t, "Point", last.Geometry.Type)
	assert.Equal(t, "waypoint", last.Properties["kind"])
	assert.Equal(t, float64(2), last.Properties["seq"])
	assert.InDelta(t, math.Pi/2, last.Properties["yaw"].(float64), 1e-9)
	assert.Equal(t, FrameMap, last.Properties["frame_id"])
}

func TestPlanToGeoJSONEmpty(t *testing.T) {
	body, err := PlanToGeoJSON(nil)
	require.NoError(t, err)

	var fc map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &fc))
	assert.Equal(t, "FeatureCollection", fc["type"])
}
