package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coverage-planner-go/pkg/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestPlanCoverage(t *testing.T) {
	var got models.CoverageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/plan", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(models.CoverageResponse{
			Status: "success",
			Path: []models.GridPoint{
				{X: 0, Y: 0}, {X: 1, Y: 0},
			},
			TurnDirections: []models.TurnDirection{models.TurnClockwise},
		})
	}))
	defer server.Close()

	c := NewCoverageAPIClient(server.URL, 5*time.Second, testLogger())

	resp, err := c.PlanCoverage(models.CoverageRequest{
		Grid:  [][]bool{{false, false}, {false, true}},
		Start: models.GridPoint{X: 0, Y: 0},
	})

	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	assert.Len(t, resp.Path, 2)
	assert.Equal(t, []models.TurnDirection{models.TurnClockwise}, resp.TurnDirections)

	// Сетка и старт доходят до сервиса без изменений
	assert.Equal(t, [][]bool{{false, false}, {false, true}}, got.Grid)
	assert.Equal(t, models.GridPoint{X: 0, Y: 0}, got.Start)
}

func TestPlanCoverageHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewCoverageAPIClient(server.URL, 5*time.Second, testLogger())

	_, err := c.PlanCoverage(models.CoverageRequest{Grid: [][]bool{{false}}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "статус 500")
}

func TestPlanCoverageBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := NewCoverageAPIClient(server.URL, 5*time.Second, testLogger())

	_, err := c.PlanCoverage(models.CoverageRequest{Grid: [][]bool{{false}}})
	assert.Error(t, err)
}

func TestPlanCoverageUnreachable(t *testing.T) {
	c := NewCoverageAPIClient("http://127.0.0.1:1", time.Second, testLogger())

	_, err := c.PlanCoverage(models.CoverageRequest{Grid: [][]bool{{false}}})
	assert.Error(t, err)
}

func TestCheckHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(models.HealthResponse{
			Status:       "healthy",
			PlannerReady: true,
			Version:      "1.2.0",
		})
	}))
	defer server.Close()

	c := NewCoverageAPIClient(server.URL, 5*time.Second, testLogger())

	health, err := c.CheckHealth()
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.PlannerReady)
	assert.Equal(t, "1.2.0", health.Version)
}

func TestCheckHealthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewCoverageAPIClient(server.URL, 5*time.Second, testLogger())

	_, err := c.CheckHealth()
	assert.Error(t, err)
}
