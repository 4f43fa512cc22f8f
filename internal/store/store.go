// Package store держит в памяти текущий снимок пользователей и статистики,
// перечитывая его из внешнего источника по истечении TTL.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lunar-dashboard/internal/domain"
)

// DefaultTTL — максимальный возраст кэшированного снимка.
const DefaultTTL = 5 * time.Minute

// Store обслуживает снимки данных поверх внешнего источника. Обновления через
// UpdateUser живут только в кэше: очередная перезагрузка по TTL замещает снимок
// целиком и отбрасывает их. Это документированное окно устаревания — системой
// записи остается источник.
type Store struct {
	src domain.Source
	ttl time.Duration
	now func() time.Time

	mu            sync.Mutex
	users         []domain.User
	usersLoadedAt time.Time
	stats         domain.Stats
	statsLoaded   bool
	statsLoadedAt time.Time
}

// New создает Store с системными часами.
func New(src domain.Source, ttl time.Duration) *Store {
	return NewWithClock(src, ttl, time.Now)
}

// NewWithClock создает Store с внешним источником времени для
// детерминированных тестов протухания кэша.
func NewWithClock(src domain.Source, ttl time.Duration, now func() time.Time) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{src: src, ttl: ttl, now: now}
}

// Users возвращает текущий снимок пользователей, при необходимости перечитывая
// его из источника. Неудачная перезагрузка фатальна для запроса, но не трогает
// уже имеющийся снимок. Наружу уходит копия: вызывающая сторона читает ее
// после снятия мьютекса, и параллельный UpdateUser не должен гонять по ее
// элементам.
func (s *Store) Users(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.users != nil && s.now().Sub(s.usersLoadedAt) < s.ttl {
		return s.snapshot(), nil
	}

	users, err := s.src.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	s.users = users
	s.usersLoadedAt = s.now()
	return s.snapshot(), nil
}

// snapshot копирует срез поэлементно; вызывается под мьютексом.
func (s *Store) snapshot() []domain.User {
	users := make([]domain.User, len(s.users))
	copy(users, s.users)
	return users
}

// Stats возвращает текущий снимок статистики по тем же правилам, что и Users.
func (s *Store) Stats(ctx context.Context) (domain.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.statsLoaded && s.now().Sub(s.statsLoadedAt) < s.ttl {
		return s.stats, nil
	}

	stats, err := s.src.LoadStats(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	s.stats = stats
	s.statsLoaded = true
	s.statsLoadedAt = s.now()
	return s.stats, nil
}

// Refresh принудительно перечитывает оба снимка независимо от их возраста.
// При ошибке источника прежние снимки сохраняются.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.src.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	stats, err := s.src.LoadStats(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	s.users = users
	s.usersLoadedAt = s.now()
	s.stats = stats
	s.statsLoaded = true
	s.statsLoadedAt = s.now()
	return nil
}

// Invalidate помечает оба снимка устаревшими. Данные остаются на месте до
// следующего обращения: если оно провалится, запросу вернется ошибка, но
// снимок не будет потерян.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usersLoadedAt = time.Time{}
	s.statsLoadedAt = time.Time{}
}

// UpdateUser сливает проверенные поля в кэшированную запись и возвращает ее
// обновленную копию. Слияние поверхностное: не названные поля сохраняют
// прежние значения.
func (s *Store) UpdateUser(id int, fields map[string]any) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		applyFields(&s.users[i], fields)
		updated := s.users[i]
		return &updated, nil
	}
	return nil, domain.ErrUserNotFound
}

func applyFields(u *domain.User, fields map[string]any) {
	for field, value := range fields {
		switch field {
		case "status":
			if s, ok := value.(string); ok {
				u.Status = s
			}
		case "role":
			if s, ok := value.(string); ok {
				u.Role = s
			}
		case "profile":
			if s, ok := value.(string); ok {
				u.Profile = s
			}
		case "lastActivity":
			if s, ok := value.(string); ok {
				u.LastActivity = s
			}
		case "servers":
			switch n := value.(type) {
			case float64:
				u.Servers = int(n)
			case int:
				u.Servers = n
			}
		}
	}
}
