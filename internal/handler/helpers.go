package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"lunar-dashboard/internal/domain"

	"github.com/labstack/echo/v4"
)

// Вспомогательные функции для единого конверта ответов API

// Response — успешный конверт: {success, data, [pagination], [filters], timestamp}.
type Response struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
	Filters    *Filters           `json:"filters,omitempty"`
	Timestamp  string             `json:"timestamp"`
}

// ErrorResponse — конверт ошибки: {success:false, error:{message, statusCode, timestamp}}.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

type ErrorBody struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
}

// Filters — эхо нормализованных фильтров в ответе списка.
type Filters struct {
	Search      *string    `json:"search"`
	Role        *string    `json:"role"`
	Status      *string    `json:"status"`
	Profile     *string    `json:"profile"`
	CreatedFrom *time.Time `json:"createdFrom"`
	CreatedTo   *time.Time `json:"createdTo"`
	Sort        string     `json:"sort"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func newResponse(data any) Response {
	return Response{
		Success:   true,
		Data:      data,
		Timestamp: timestamp(),
	}
}

func newListResponse(data []domain.User, pagination domain.Pagination, q domain.Query) Response {
	filters := toAPIFilters(q)
	return Response{
		Success:    true,
		Data:       data,
		Pagination: &pagination,
		Filters:    &filters,
		Timestamp:  timestamp(),
	}
}

func newErrorResponse(message string, statusCode int) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: ErrorBody{
			Message:    message,
			StatusCode: statusCode,
			Timestamp:  timestamp(),
		},
	}
}

func toAPIFilters(q domain.Query) Filters {
	direction := "asc"
	if q.SortDesc {
		direction = "desc"
	}
	return Filters{
		Search:      optional(q.Search),
		Role:        optional(q.Role),
		Status:      optional(q.Status),
		Profile:     optional(q.Profile),
		CreatedFrom: q.CreatedFrom,
		CreatedTo:   q.CreatedTo,
		Sort:        fmt.Sprintf("%s:%s", q.SortField, direction),
	}
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func getHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidationFailed):
		return http.StatusBadRequest
	default:
		// ErrSourceUnavailable и все необработанные ошибки
		return http.StatusInternalServerError
	}
}

// respondError подбирает статус и публичное сообщение по ошибке. Для 500
// наружу уходит только fallback: детали источника остаются в логах.
func respondError(c echo.Context, err error, fallback string) error {
	status := getHTTPStatusCode(err)
	message := fallback
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		message = "User not found"
	case errors.Is(err, domain.ErrValidationFailed):
		message = err.Error()
	}
	return c.JSON(status, newErrorResponse(message, status))
}
