package handler

import (
	"net/http"
	"strconv"

	"lunar-dashboard/internal/domain"
	"lunar-dashboard/internal/query"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// UserHandler обрабатывает HTTP-запросы, связанные с пользователями.
type UserHandler struct {
	*BaseHandler
	userUseCase domain.UserUseCase
}

// NewUserHandler создает новый экземпляр UserHandler.
func NewUserHandler(userUseCase domain.UserUseCase, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userUseCase: userUseCase,
	}
}

// GetUsers обрабатывает запрос списка пользователей с фильтрацией,
// сортировкой и пагинацией.
func (h *UserHandler) GetUsers(c echo.Context) error {
	q := query.Normalize(query.Params{
		Search:      c.QueryParam("search"),
		Role:        c.QueryParam("role"),
		Status:      c.QueryParam("status"),
		Profile:     c.QueryParam("profile"),
		CreatedFrom: c.QueryParam("createdFrom"),
		CreatedTo:   c.QueryParam("createdTo"),
		Sort:        c.QueryParam("sort"),
		Page:        c.QueryParam("page"),
		PageSize:    c.QueryParam("pageSize"),
	})

	logEntry := h.logRequest(c, "list_users").WithFields(logrus.Fields{
		"page":      q.Page,
		"page_size": q.PageSize,
	})

	users, pagination, err := h.userUseCase.ListUsers(c.Request().Context(), q)
	if err != nil {
		logEntry.WithError(err).Error("Failed to list users")
		return respondError(c, err, "Failed to fetch users")
	}

	logEntry.WithField("total", pagination.Total).Info("Users listed")
	return c.JSON(http.StatusOK, newListResponse(users, pagination, q))
}

// GetUserByID обрабатывает запрос одного пользователя по идентификатору.
func (h *UserHandler) GetUserByID(c echo.Context) error {
	logEntry := h.logRequest(c, "get_user").WithField("user_id", c.Param("id"))

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		// Нечисловой идентификатор не может указывать на запись
		logEntry.Warn("Non-numeric user id")
		return respondError(c, domain.ErrUserNotFound, "User not found")
	}

	user, err := h.userUseCase.GetUser(c.Request().Context(), id)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to get user")
		return respondError(c, err, "Failed to fetch user")
	}

	return c.JSON(http.StatusOK, newResponse(user))
}

// UpdateUser обрабатывает частичное обновление записи. PATCH и PUT проходят
// одну и ту же проверку схемы изменяемых полей.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	logEntry := h.logRequest(c, "update_user").WithField("user_id", c.Param("id"))

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		logEntry.Warn("Non-numeric user id")
		return respondError(c, domain.ErrUserNotFound, "User not found")
	}

	// Разбираем только тело: полный Bind у echo подмешивает path-параметры
	// в map, и "id" из пути попадал бы под проверку схемы
	var fields map[string]any
	if err := (&echo.DefaultBinder{}).BindBody(c, &fields); err != nil {
		logEntry.WithError(err).Warn("Failed to bind update request")
		return c.JSON(http.StatusBadRequest, newErrorResponse("Invalid request body", http.StatusBadRequest))
	}

	user, err := h.userUseCase.UpdateUser(c.Request().Context(), id, fields)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to update user")
		return respondError(c, err, "Failed to update user")
	}

	logEntry.Info("User updated")
	return c.JSON(http.StatusOK, newResponse(user))
}
