package usecase

import (
	"context"

	"lunar-dashboard/internal/domain"
)

// Количество последних пользователей в сводке дашборда.
const recentUsersLimit = 5

// StatsUseCase реализует бизнес-логику для статистики и сводки дашборда.
type StatsUseCase struct {
	store domain.RecordStore
}

// NewStatsUseCase создает новый экземпляр StatsUseCase.
func NewStatsUseCase(store domain.RecordStore) domain.StatsUseCase {
	return &StatsUseCase{
		store: store,
	}
}

// GetStats возвращает текущий снимок сводных показателей.
func (uc *StatsUseCase) GetStats(ctx context.Context) (domain.Stats, error) {
	return uc.store.Stats(ctx)
}

// GetDashboard собирает агрегированные данные главной страницы.
func (uc *StatsUseCase) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	users, err := uc.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := uc.store.Stats(ctx)
	if err != nil {
		return nil, err
	}

	recent := users
	if len(recent) > recentUsersLimit {
		recent = recent[:recentUsersLimit]
	}

	connected := 0
	for _, u := range users {
		if u.Status == "Connected" {
			connected++
		}
	}

	return &domain.Dashboard{
		Stats:          stats,
		RecentUsers:    recent,
		TotalUsers:     len(users),
		ConnectedUsers: connected,
	}, nil
}
