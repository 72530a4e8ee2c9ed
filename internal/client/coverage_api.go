package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"coverage-planner-go/pkg/models"
)

// CoverageAPIClient клиент для взаимодействия с внешним сервисом порядка
// обхода (boustrophedon-планировщик). Сервис получает грубую сетку и
// стартовый тайл, а возвращает упорядоченный список тайлов и подсказки
// направления разворотов (см. контракт models.CoverageResponse).
type CoverageAPIClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewCoverageAPIClient создает новый клиент сервиса порядка обхода
func NewCoverageAPIClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *CoverageAPIClient {
	return &CoverageAPIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// PlanCoverage отправляет грубую сетку на построение порядка обхода
func (c *CoverageAPIClient) PlanCoverage(request models.CoverageRequest) (*models.CoverageResponse, error) {
	c.logger.Infof("Отправка сетки %dx%d на построение порядка обхода", len(request.Grid), cols(request.Grid))

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	url := fmt.Sprintf("%s/plan", c.baseURL)
	req, err := http.NewRequest("POST", url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания HTTP запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debugf("Отправка POST запроса на %s", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка отправки HTTP запроса: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("сервис обхода вернул ошибку: статус %d, тело: %s", resp.StatusCode, string(respBody))
	}

	var apiResponse models.CoverageResponse
	if err := json.Unmarshal(respBody, &apiResponse); err != nil {
		return nil, fmt.Errorf("ошибка разбора JSON ответа: %w", err)
	}

	c.logger.Infof("Получен порядок обхода: %d тайлов, %d подсказок разворота", len(apiResponse.Path), len(apiResponse.TurnDirections))
	return &apiResponse, nil
}

// CheckHealth проверяет состояние сервиса порядка обхода
func (c *CoverageAPIClient) CheckHealth() (*models.HealthResponse, error) {
	c.logger.Debug("Проверка здоровья сервиса порядка обхода")

	url := fmt.Sprintf("%s/health", c.baseURL)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания HTTP запроса: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка отправки HTTP запроса: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("сервис обхода вернул ошибку: статус %d, тело: %s", resp.StatusCode, string(respBody))
	}

	var healthResponse models.HealthResponse
	if err := json.Unmarshal(respBody, &healthResponse); err != nil {
		return nil, fmt.Errorf("ошибка разбора JSON ответа: %w", err)
	}

	return &healthResponse, nil
}

// cols возвращает ширину сетки для логирования
func cols(grid [][]bool) int {
	if len(grid) == 0 {
		return 0
	}
	return len(grid[0])
}
