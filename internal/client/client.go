// Package client предоставляет программный доступ к Lunar Dashboard API
// и клиентское состояние списка пользователей поверх него.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lunar-dashboard/internal/domain"
)

// Client — HTTP-клиент Lunar Dashboard API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New создает клиент с таймаутом по умолчанию.
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: 10 * time.Second})
}

// NewWithHTTPClient создает клиент поверх готового http.Client.
func NewWithHTTPClient(baseURL string, httpc *http.Client) *Client {
	return &Client{baseURL: baseURL, httpc: httpc}
}

// Filter — параметры запроса списка пользователей. Пустые значения
// не попадают в строку запроса.
type Filter struct {
	Search      string
	Role        string
	Status      string
	Profile     string
	CreatedFrom string
	CreatedTo   string
	Sort        string
	Page        int
	PageSize    int
}

func (f Filter) values() url.Values {
	v := url.Values{}
	add := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	add("search", f.Search)
	add("role", f.Role)
	add("status", f.Status)
	add("profile", f.Profile)
	add("createdFrom", f.CreatedFrom)
	add("createdTo", f.CreatedTo)
	add("sort", f.Sort)
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(f.PageSize))
	}
	return v
}

// UsersResult — страница списка вместе с метаданными пагинации.
type UsersResult struct {
	Users      []domain.User
	Pagination domain.Pagination
}

// APIError — ошибка, которую сервер вернул в конверте ошибки.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type envelope struct {
	Success    bool               `json:"success"`
	Data       json.RawMessage    `json:"data"`
	Pagination *domain.Pagination `json:"pagination"`
	Error      *struct {
		Message    string `json:"message"`
		StatusCode int    `json:"statusCode"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var buf *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		buf = bytes.NewBuffer(b)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !env.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: "request failed"}
		if env.Error != nil {
			apiErr.Message = env.Error.Message
			if env.Error.StatusCode != 0 {
				apiErr.StatusCode = env.Error.StatusCode
			}
		}
		return nil, apiErr
	}
	return &env, nil
}

// Health проверяет доступность сервиса.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/health", nil)
	return err
}

// Users запрашивает страницу списка пользователей.
func (c *Client) Users(ctx context.Context, f Filter) (*UsersResult, error) {
	path := "/api/users"
	if q := f.values().Encode(); q != "" {
		path += "?" + q
	}

	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	result := &UsersResult{}
	if err := json.Unmarshal(env.Data, &result.Users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	if env.Pagination != nil {
		result.Pagination = *env.Pagination
	}
	return result, nil
}

// User запрашивает одного пользователя по идентификатору.
func (c *Client) User(ctx context.Context, id int) (*domain.User, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}

// PatchUser отправляет частичное обновление записи пользователя.
func (c *Client) PatchUser(ctx context.Context, id int, fields map[string]any) (*domain.User, error) {
	env, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/users/%d", id), fields)
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}

// Stats запрашивает сводные показатели.
func (c *Client) Stats(ctx context.Context) (domain.Stats, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/stats", nil)
	if err != nil {
		return domain.Stats{}, err
	}

	var stats domain.Stats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		return domain.Stats{}, fmt.Errorf("failed to decode stats: %w", err)
	}
	return stats, nil
}

// Dashboard запрашивает агрегированные данные главной страницы.
func (c *Client) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/dashboard", nil)
	if err != nil {
		return nil, err
	}

	var dashboard domain.Dashboard
	if err := json.Unmarshal(env.Data, &dashboard); err != nil {
		return nil, fmt.Errorf("failed to decode dashboard: %w", err)
	}
	return &dashboard, nil
}
