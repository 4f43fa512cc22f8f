package source

import (
	"context"
	"database/sql"
	"fmt"

	"lunar-dashboard/internal/domain"
)

// PostgresSource загружает снимки из PostgreSQL. Контракт тот же, что у
// файлового источника: только чтение, снимок отдается целиком.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource создает источник поверх подключения к базе.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// LoadUsers возвращает все записи пользователей в порядке идентификаторов.
func (s *PostgresSource) LoadUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, avatar, profile, status, role, servers, last_activity, created_at
		FROM users
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Avatar, &u.Profile, &u.Status,
			&u.Role, &u.Servers, &u.LastActivity, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}

// LoadStats возвращает единственную строку сводных показателей.
func (s *PostgresSource) LoadStats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT connected_tools, connected_servers, active_agents
		FROM stats
		LIMIT 1`).Scan(&stats.ConnectedTools, &stats.ConnectedServers, &stats.ActiveAgents)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("failed to query stats: %w", err)
	}
	return stats, nil
}
