package handler

import (
	"net/http"

	"lunar-dashboard/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// StatsHandler обрабатывает HTTP-запросы для получения статистики.
type StatsHandler struct {
	*BaseHandler
	statsUseCase domain.StatsUseCase
}

// NewStatsHandler создает новый экземпляр StatsHandler.
func NewStatsHandler(statsUseCase domain.StatsUseCase, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		BaseHandler:  NewBaseHandler(logger),
		statsUseCase: statsUseCase,
	}
}

// GetStats обрабатывает GET запрос сводных показателей.
func (h *StatsHandler) GetStats(c echo.Context) error {
	logEntry := h.logRequest(c, "get_stats")

	stats, err := h.statsUseCase.GetStats(c.Request().Context())
	if err != nil {
		logEntry.WithError(err).Error("Failed to get stats")
		return respondError(c, err, "Failed to fetch statistics")
	}

	return c.JSON(http.StatusOK, newResponse(stats))
}

// GetDashboard обрабатывает GET запрос агрегированных данных главной страницы.
func (h *StatsHandler) GetDashboard(c echo.Context) error {
	logEntry := h.logRequest(c, "get_dashboard")

	dashboard, err := h.statsUseCase.GetDashboard(c.Request().Context())
	if err != nil {
		logEntry.WithError(err).Error("Failed to get dashboard data")
		return respondError(c, err, "Failed to fetch dashboard data")
	}

	return c.JSON(http.StatusOK, newResponse(dashboard))
}
