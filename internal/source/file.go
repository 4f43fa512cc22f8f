// Package source реализует внешние источники данных дашборда.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"lunar-dashboard/internal/domain"
)

// FileSource загружает снимки из JSON-файлов с фикстурами.
type FileSource struct {
	usersPath string
	statsPath string
}

// NewFileSource создает источник поверх файлов users и stats.
func NewFileSource(usersPath, statsPath string) *FileSource {
	return &FileSource{usersPath: usersPath, statsPath: statsPath}
}

// LoadUsers читает и разбирает массив записей пользователей.
func (s *FileSource) LoadUsers(_ context.Context) ([]domain.User, error) {
	data, err := os.ReadFile(s.usersPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read users file: %w", err)
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse users file: %w", err)
	}
	return users, nil
}

// LoadStats читает и разбирает объект статистики.
func (s *FileSource) LoadStats(_ context.Context) (domain.Stats, error) {
	data, err := os.ReadFile(s.statsPath)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("failed to read stats file: %w", err)
	}

	var stats domain.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return domain.Stats{}, fmt.Errorf("failed to parse stats file: %w", err)
	}
	return stats, nil
}
