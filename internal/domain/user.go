package domain

import "context"

// User представляет запись пользователя дашборда.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Avatar       string `json:"avatar"`
	Profile      string `json:"profile"`
	Status       string `json:"status"`
	Role         string `json:"role"`
	Servers      int    `json:"servers"`
	LastActivity string `json:"lastActivity"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

// Допустимые значения изменяемых полей пользователя.
var (
	Statuses = []string{"Connected", "Offline"}
	Roles    = []string{"Admin", "User", "Power User"}
)

// Source определяет контракт внешнего источника данных (файл или база данных).
// Источник только читается: записи создаются и удаляются вне этой системы.
type Source interface {
	LoadUsers(ctx context.Context) ([]User, error)
	LoadStats(ctx context.Context) (Stats, error)
}
