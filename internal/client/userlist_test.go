package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"lunar-dashboard/internal/client"
	"lunar-dashboard/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestUserList_LoadThenLoadMoreAppends(t *testing.T) {
	ctx := context.Background()
	srv := newAPIServer(t, &stubSource{users: fiveUsers()})
	list := client.NewUserList(client.New(srv.URL))

	assert.NoError(t, list.SetFilters(ctx, client.Filter{Sort: "id:asc", PageSize: 2}))
	assert.Len(t, list.Users(), 2)
	assert.True(t, list.HasMore())

	assert.NoError(t, list.LoadMore(ctx))
	assert.Len(t, list.Users(), 4)
	assert.True(t, list.HasMore())

	assert.NoError(t, list.LoadMore(ctx))
	users := list.Users()
	assert.Len(t, users, 5)
	assert.False(t, list.HasMore())

	// Все пять страниц в исходном порядке, каждая запись ровно один раз
	for i, u := range users {
		assert.Equal(t, i+1, u.ID)
	}

	// Дозагрузка после исчерпания страниц ничего не делает
	assert.NoError(t, list.LoadMore(ctx))
	assert.Len(t, list.Users(), 5)
}

func TestUserList_SetFiltersReplacesList(t *testing.T) {
	ctx := context.Background()
	srv := newAPIServer(t, &stubSource{users: fiveUsers()})
	list := client.NewUserList(client.New(srv.URL))

	assert.NoError(t, list.SetFilters(ctx, client.Filter{PageSize: 2}))
	assert.NoError(t, list.LoadMore(ctx))
	assert.Len(t, list.Users(), 4)

	assert.NoError(t, list.SetFilters(ctx, client.Filter{Status: "Offline", PageSize: 2}))
	users := list.Users()
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.Equal(t, "Offline", u.Status)
	}
	assert.Equal(t, 1, list.Pagination().Page)
}

func TestUserList_ToggleStatusOptimistic(t *testing.T) {
	ctx := context.Background()
	srv := newAPIServer(t, &stubSource{users: fiveUsers()})
	list := client.NewUserList(client.New(srv.URL))

	assert.NoError(t, list.Load(ctx))
	assert.Equal(t, "Connected", list.Users()[0].Status)

	assert.NoError(t, list.ToggleStatus(ctx, 1))
	assert.Equal(t, "Offline", list.Users()[0].Status)
}

func TestUserList_ToggleStatusRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()

	users := fiveUsers()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPatch {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"success":false,"error":{"message":"boom","statusCode":500,"timestamp":"now"}}`)
			return
		}
		data, _ := json.Marshal(users)
		fmt.Fprintf(w, `{"success":true,"data":%s,"pagination":{"page":1,"pageSize":20,"total":5,"totalPages":1,"hasNext":false,"hasPrev":false},"timestamp":"now"}`, data)
	}))
	defer srv.Close()

	list := client.NewUserList(client.New(srv.URL))
	assert.NoError(t, list.Load(ctx))

	before := list.Users()
	err := list.ToggleStatus(ctx, 1)
	assert.Error(t, err)

	// Статус откатился, остальное состояние не тронуто
	after := list.Users()
	assert.Equal(t, before, after)
	assert.Equal(t, "Connected", after[0].Status)
}

func TestUserList_ToggleStatusUnknownUser(t *testing.T) {
	ctx := context.Background()
	srv := newAPIServer(t, &stubSource{users: fiveUsers()})
	list := client.NewUserList(client.New(srv.URL))

	assert.NoError(t, list.Load(ctx))
	assert.ErrorIs(t, list.ToggleStatus(ctx, 999), domain.ErrUserNotFound)
}

func TestUserList_StaleResponseDiscarded(t *testing.T) {
	ctx := context.Background()

	block := make(chan struct{})
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		search := r.URL.Query().Get("search")
		if search == "old" {
			<-block
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"success":true,"data":[{"id":1,"name":"%s"}],"pagination":{"page":1,"pageSize":20,"total":1,"totalPages":1,"hasNext":false,"hasPrev":false},"timestamp":"now"}`, search)
	}))
	defer srv.Close()

	list := client.NewUserList(client.New(srv.URL))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// Ответ на этот запрос придет после более новой смены фильтров
		_ = list.SetFilters(ctx, client.Filter{Search: "old"})
	}()

	// Дожидаемся, пока первый запрос повиснет на сервере
	for requests.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	assert.NoError(t, list.SetFilters(ctx, client.Filter{Search: "new"}))
	assert.Equal(t, "new", list.Users()[0].Name)

	close(block)
	wg.Wait()

	// Устаревший ответ не затер более свежее состояние
	assert.Equal(t, "new", list.Users()[0].Name)
}
