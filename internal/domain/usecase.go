package domain

import "context"

// UserUseCase определяет бизнес-логику для работы с пользователями.
type UserUseCase interface {
	ListUsers(ctx context.Context, q Query) ([]User, Pagination, error)
	GetUser(ctx context.Context, id int) (*User, error)
	UpdateUser(ctx context.Context, id int, fields map[string]any) (*User, error)
}

// StatsUseCase определяет бизнес-логику для статистики и сводки дашборда.
type StatsUseCase interface {
	GetStats(ctx context.Context) (Stats, error)
	GetDashboard(ctx context.Context) (*Dashboard, error)
}
