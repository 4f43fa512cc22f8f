package client

import (
	"context"
	"sync"

	"lunar-dashboard/internal/domain"
)

// UserList владеет клиентским состоянием списка пользователей: текущими
// фильтрами, накопленными страницами и метаданными пагинации. Смена фильтров
// замещает список, дозагрузка добавляет к нему, переключение статуса
// применяется оптимистично и откатывается при ошибке.
//
// Каждая замена списка увеличивает номер поколения; ответ, пришедший после
// более новой смены фильтров, отбрасывается и не затирает свежее состояние.
type UserList struct {
	api *Client

	mu          sync.Mutex
	filters     Filter
	users       []domain.User
	pagination  domain.Pagination
	hasMore     bool
	loadingMore bool
	generation  uint64
}

// NewUserList создает контроллер списка с фильтрами по умолчанию.
func NewUserList(api *Client) *UserList {
	return &UserList{
		api:     api,
		filters: Filter{Page: 1, PageSize: 20},
		hasMore: true,
	}
}

// Load загружает первую страницу с текущими фильтрами, замещая список.
func (l *UserList) Load(ctx context.Context) error {
	l.mu.Lock()
	f := l.filters
	f.Page = 1
	l.hasMore = true
	l.generation++
	gen := l.generation
	l.mu.Unlock()

	return l.fetchReplace(ctx, f, gen)
}

// SetFilters применяет новые фильтры: страница сбрасывается на первую,
// список замещается результатом.
func (l *UserList) SetFilters(ctx context.Context, f Filter) error {
	f.Page = 1
	if f.PageSize == 0 {
		f.PageSize = l.PageSize()
	}

	l.mu.Lock()
	l.filters = f
	l.hasMore = true
	l.generation++
	gen := l.generation
	l.mu.Unlock()

	return l.fetchReplace(ctx, f, gen)
}

func (l *UserList) fetchReplace(ctx context.Context, f Filter, gen uint64) error {
	result, err := l.api.Users(ctx, f)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation {
		// Ответ устарел: фильтры уже сменились
		return nil
	}
	if err != nil {
		return err
	}

	l.users = result.Users
	l.pagination = result.Pagination
	l.hasMore = result.Pagination.HasNext
	l.filters.Page = f.Page
	return nil
}

// LoadMore запрашивает следующую страницу и добавляет ее к списку.
// Пока один запрос дозагрузки не завершен, повторные вызовы не делают ничего;
// при исчерпании страниц вызов также не делает ничего.
func (l *UserList) LoadMore(ctx context.Context) error {
	l.mu.Lock()
	if !l.hasMore || l.loadingMore {
		l.mu.Unlock()
		return nil
	}
	l.loadingMore = true
	f := l.filters
	f.Page = l.pagination.Page + 1
	gen := l.generation
	l.mu.Unlock()

	result, err := l.api.Users(ctx, f)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadingMore = false
	if gen != l.generation {
		return nil
	}
	if err != nil {
		return err
	}

	l.users = append(l.users, result.Users...)
	l.pagination = result.Pagination
	l.hasMore = result.Pagination.HasNext
	l.filters.Page = f.Page
	return nil
}

// ToggleStatus оптимистично переключает статус пользователя и отправляет
// обновление на сервер. При ошибке статус откатывается к прежнему значению,
// остальное состояние списка не меняется.
func (l *UserList) ToggleStatus(ctx context.Context, id int) error {
	l.mu.Lock()
	idx := -1
	for i := range l.users {
		if l.users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return domain.ErrUserNotFound
	}

	prev := l.users[idx].Status
	next := "Connected"
	if prev == "Connected" {
		next = "Offline"
	}
	l.users[idx].Status = next
	l.mu.Unlock()

	if _, err := l.api.PatchUser(ctx, id, map[string]any{"status": next}); err != nil {
		l.mu.Lock()
		for i := range l.users {
			if l.users[i].ID == id {
				l.users[i].Status = prev
				break
			}
		}
		l.mu.Unlock()
		return err
	}
	return nil
}

// Users возвращает копию накопленного списка.
func (l *UserList) Users() []domain.User {
	l.mu.Lock()
	defer l.mu.Unlock()
	users := make([]domain.User, len(l.users))
	copy(users, l.users)
	return users
}

// Pagination возвращает метаданные последней загруженной страницы.
func (l *UserList) Pagination() domain.Pagination {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pagination
}

// HasMore сообщает, остались ли незагруженные страницы.
func (l *UserList) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasMore
}

// LoadingMore сообщает, выполняется ли сейчас дозагрузка.
func (l *UserList) LoadingMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadingMore
}

// PageSize возвращает текущий размер страницы фильтров.
func (l *UserList) PageSize() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filters.PageSize
}
