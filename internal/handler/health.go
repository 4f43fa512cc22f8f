package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Version — версия API в ответах health и корневого маршрута.
const Version = "1.0.0"

type healthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HealthHandler обрабатывает служебные запросы.
type HealthHandler struct {
	*BaseHandler
}

// NewHealthHandler создает новый экземпляр HealthHandler.
func NewHealthHandler(logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: NewBaseHandler(logger),
	}
}

// Health обрабатывает проверку работоспособности сервиса.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Success:   true,
		Message:   "Lunar Dashboard API is running",
		Timestamp: timestamp(),
		Version:   Version,
	})
}

// Index обрабатывает корневой маршрут с перечнем конечных точек.
func (h *HealthHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Lunar Dashboard API",
		"version": Version,
		"endpoints": map[string]string{
			"health":    "/api/health",
			"users":     "/api/users",
			"stats":     "/api/stats",
			"dashboard": "/api/dashboard",
		},
	})
}
