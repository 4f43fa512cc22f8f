package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lunar-dashboard/internal/domain"
	"lunar-dashboard/internal/store"

	"github.com/stretchr/testify/assert"
)

type stubSource struct {
	users      []domain.User
	stats      domain.Stats
	err        error
	userLoads  int
	statsLoads int
}

func (s *stubSource) LoadUsers(_ context.Context) ([]domain.User, error) {
	s.userLoads++
	if s.err != nil {
		return nil, s.err
	}
	users := make([]domain.User, len(s.users))
	copy(users, s.users)
	return users, nil
}

func (s *stubSource) LoadStats(_ context.Context) (domain.Stats, error) {
	s.statsLoads++
	if s.err != nil {
		return domain.Stats{}, s.err
	}
	return s.stats, nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore() (*store.Store, *stubSource, *fakeClock) {
	src := &stubSource{
		users: []domain.User{
			{ID: 1, Name: "John Doe", Status: "Connected"},
			{ID: 2, Name: "Jane Smith", Status: "Offline"},
		},
		stats: domain.Stats{ConnectedTools: 15, ConnectedServers: 8, ActiveAgents: 3},
	}
	clock := &fakeClock{now: time.Date(2025, 9, 21, 12, 0, 0, 0, time.UTC)}
	return store.NewWithClock(src, 5*time.Minute, clock.Now), src, clock
}

func TestStore_CachesWithinTTL(t *testing.T) {
	ctx := context.Background()
	st, src, clock := newTestStore()

	first, err := st.Users(ctx)
	assert.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, src.userLoads)

	clock.Advance(4 * time.Minute)
	_, err = st.Users(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, src.userLoads)
}

func TestStore_ReloadsAfterTTL(t *testing.T) {
	ctx := context.Background()
	st, src, clock := newTestStore()

	_, err := st.Users(ctx)
	assert.NoError(t, err)

	clock.Advance(6 * time.Minute)
	_, err = st.Users(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, src.userLoads)
}

func TestStore_StatsCachedIndependently(t *testing.T) {
	ctx := context.Background()
	st, src, _ := newTestStore()

	stats, err := st.Stats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 15, stats.ConnectedTools)

	_, err = st.Stats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, src.statsLoads)
	assert.Equal(t, 0, src.userLoads)
}

func TestStore_LoadFailureIsSourceUnavailable(t *testing.T) {
	ctx := context.Background()
	st, src, _ := newTestStore()
	src.err = errors.New("disk gone")

	_, err := st.Users(ctx)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestStore_FailedReloadKeepsSnapshotForLater(t *testing.T) {
	ctx := context.Background()
	st, src, clock := newTestStore()

	_, err := st.Users(ctx)
	assert.NoError(t, err)

	// Протухший кэш + недоступный источник: запрос получает ошибку,
	// но снимок не теряется и следующая удачная загрузка стартует чисто
	clock.Advance(6 * time.Minute)
	src.err = errors.New("source down")
	_, err = st.Users(ctx)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)

	src.err = nil
	users, err := st.Users(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestStore_InvalidateForcesReload(t *testing.T) {
	ctx := context.Background()
	st, src, _ := newTestStore()

	_, err := st.Users(ctx)
	assert.NoError(t, err)

	st.Invalidate()
	_, err = st.Users(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, src.userLoads)
}

func TestStore_Refresh(t *testing.T) {
	ctx := context.Background()
	st, src, _ := newTestStore()

	assert.NoError(t, st.Refresh(ctx))
	assert.Equal(t, 1, src.userLoads)
	assert.Equal(t, 1, src.statsLoads)

	// Свежий после Refresh кэш обслуживается без обращения к источнику
	_, err := st.Users(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, src.userLoads)
}

func TestStore_UpdateUserMergesIntoSnapshot(t *testing.T) {
	ctx := context.Background()
	st, _, _ := newTestStore()

	_, err := st.Users(ctx)
	assert.NoError(t, err)

	updated, err := st.UpdateUser(1, map[string]any{"status": "Offline", "servers": float64(9)})
	assert.NoError(t, err)
	assert.Equal(t, "Offline", updated.Status)
	assert.Equal(t, 9, updated.Servers)
	assert.Equal(t, "John Doe", updated.Name)

	users, err := st.Users(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Offline", users[0].Status)
}

func TestStore_UpdateUnknownUser(t *testing.T) {
	ctx := context.Background()
	st, _, _ := newTestStore()

	_, err := st.Users(ctx)
	assert.NoError(t, err)

	_, err = st.UpdateUser(999, map[string]any{"status": "Offline"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStore_UsersReturnsIsolatedSnapshot(t *testing.T) {
	ctx := context.Background()
	st, _, _ := newTestStore()

	held, err := st.Users(ctx)
	assert.NoError(t, err)

	_, err = st.UpdateUser(1, map[string]any{"status": "Offline"})
	assert.NoError(t, err)

	// Ранее выданный срез не меняется задним числом
	assert.Equal(t, "Connected", held[0].Status)

	fresh, err := st.Users(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Offline", fresh[0].Status)
}

func TestStore_ConcurrentReadsAndUpdates(t *testing.T) {
	ctx := context.Background()
	st, _, _ := newTestStore()

	_, err := st.Users(ctx)
	assert.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			users, err := st.Users(ctx)
			assert.NoError(t, err)
			_ = users[0].Status
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			status := "Offline"
			if i%2 == 1 {
				status = "Connected"
			}
			_, err := st.UpdateUser(1, map[string]any{"status": status})
			assert.NoError(t, err)
		}
	}()
	wg.Wait()
}

func TestStore_RefreshDiscardsInMemoryUpdates(t *testing.T) {
	ctx := context.Background()
	st, _, clock := newTestStore()

	_, err := st.Users(ctx)
	assert.NoError(t, err)

	_, err = st.UpdateUser(1, map[string]any{"status": "Offline"})
	assert.NoError(t, err)

	// Окно устаревания: перезагрузка по TTL замещает снимок целиком
	clock.Advance(6 * time.Minute)
	users, err := st.Users(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Connected", users[0].Status)
}
