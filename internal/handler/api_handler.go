package handler

import (
	"errors"
	"net/http"

	"lunar-dashboard/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// APIHandler объединяет обработчики всех групп маршрутов.
type APIHandler struct {
	*UserHandler
	*StatsHandler
	*HealthHandler
}

// NewAPIHandler создает новый экземпляр APIHandler.
func NewAPIHandler(
	userUseCase domain.UserUseCase,
	statsUseCase domain.StatsUseCase,
	logger *logrus.Logger,
) *APIHandler {

	return &APIHandler{
		UserHandler:   NewUserHandler(userUseCase, logger),
		StatsHandler:  NewStatsHandler(statsUseCase, logger),
		HealthHandler: NewHealthHandler(logger),
	}
}

// RegisterRoutes вешает маршруты API на echo под базовым путем /api.
func RegisterRoutes(e *echo.Echo, h *APIHandler) {
	e.GET("/", h.Index)

	api := e.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/users", h.GetUsers)
	api.GET("/users/:id", h.GetUserByID)
	api.PATCH("/users/:id", h.UpdateUser)
	api.PUT("/users/:id", h.UpdateUser)
	api.GET("/stats", h.GetStats)
	api.GET("/dashboard", h.GetDashboard)
}

// NewHTTPErrorHandler возвращает глобальный обработчик: все неперехваченные
// ошибки и несуществующие маршруты получают единый конверт ошибки.
func NewHTTPErrorHandler(logger *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Internal server error"

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			switch status {
			case http.StatusNotFound:
				message = "Route not found"
			case http.StatusMethodNotAllowed:
				message = "Method not allowed"
			default:
				if s, ok := httpErr.Message.(string); ok {
					message = s
				}
			}
		} else {
			logger.WithError(err).WithField("path", c.Request().URL.Path).Error("Unhandled error")
		}

		if jsonErr := c.JSON(status, newErrorResponse(message, status)); jsonErr != nil {
			logger.WithError(jsonErr).Error("Failed to write error response")
		}
	}
}
