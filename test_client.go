package main

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"gopkg.in/yaml.v3"
)

func main() {
	// Проверяем health endpoint
	fmt.Println("Проверяем health endpoint...")
	resp, err := http.Get("http://localhost:8080/api/v1/health")
	if err != nil {
		fmt.Printf("Ошибка при обращении к health endpoint: %v\n", err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("Ошибка чтения ответа: %v\n", err)
		return
	}

	fmt.Printf("Health check ответ (статус %d):\n%s\n\n", resp.StatusCode, string(body))

	// Отправляем тестовую карту на планирование
	if err := testPlan(); err != nil {
		fmt.Printf("Ошибка при тестировании планирования: %v\n", err)
	}
}

// testMap описывает небольшую свободную карту 8x8 ячеек по 0.25 м
type testMap struct {
	Resolution float64   `yaml:"resolution"`
	Origin     []float64 `yaml:"origin"`
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	Negate     int       `yaml:"negate"`
	Data       []byte    `yaml:"data"`
}

func testPlan() error {
	// Собираем карту занятости в памяти
	m := testMap{
		Resolution: 0.25,
		Origin:     []float64{0, 0, 0},
		Width:      8,
		Height:     8,
		Negate:     0,
		Data:       make([]byte, 64),
	}

	mapData, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("ошибка сериализации карты: %w", err)
	}

	// Создаем multipart form
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	mapWriter, err := writer.CreateFormFile("map", "test_map.yaml")
	if err != nil {
		return fmt.Errorf("ошибка создания form field: %w", err)
	}

	if _, err := mapWriter.Write(mapData); err != nil {
		return fmt.Errorf("ошибка записи карты: %w", err)
	}

	// Добавляем стартовую позу и размер инструмента
	writer.WriteField("start_x", "0.25")
	writer.WriteField("start_y", "0.25")
	writer.WriteField("start_yaw", "0")
	writer.WriteField("tile_size", "0.5")
	writer.WriteField("name", "Тестовый план")

	writer.Close()

	// Отправляем запрос
	client := &http.Client{Timeout: 5 * time.Minute}
	req, err := http.NewRequest("POST", "http://localhost:8080/api/v1/plan", &body)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())

	fmt.Println("Отправляем запрос на планирование...")
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка отправки запроса: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	fmt.Printf("Ответ планирования (статус %d):\n%s\n", resp.StatusCode, string(respBody))
	return nil
}
