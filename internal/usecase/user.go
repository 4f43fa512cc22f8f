package usecase

import (
	"context"

	"lunar-dashboard/internal/domain"
	"lunar-dashboard/internal/query"
	"lunar-dashboard/internal/validate"
)

// UserUseCase реализует бизнес-логику для работы с пользователями.
type UserUseCase struct {
	store domain.RecordStore
}

// NewUserUseCase создает новый экземпляр UserUseCase.
func NewUserUseCase(store domain.RecordStore) domain.UserUseCase {
	return &UserUseCase{
		store: store,
	}
}

// ListUsers прогоняет текущий снимок через конвейер фильтрации, сортировки
// и пагинации.
func (uc *UserUseCase) ListUsers(ctx context.Context, q domain.Query) ([]domain.User, domain.Pagination, error) {
	users, err := uc.store.Users(ctx)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	data, pagination := query.Apply(users, q)
	return data, pagination, nil
}

// GetUser возвращает пользователя по идентификатору.
func (uc *UserUseCase) GetUser(ctx context.Context, id int) (*domain.User, error) {
	users, err := uc.store.Users(ctx)
	if err != nil {
		return nil, err
	}

	u, ok := query.FindByID(users, id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	user := *u
	return &user, nil
}

// UpdateUser применяет частичное обновление к записи. Проверка полей общая
// для PATCH и PUT: обходного пути мимо схемы нет.
func (uc *UserUseCase) UpdateUser(ctx context.Context, id int, fields map[string]any) (*domain.User, error) {
	// Проверяем, что пользователь существует
	users, err := uc.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := query.FindByID(users, id); !ok {
		return nil, domain.ErrUserNotFound
	}

	valid, err := validate.UserUpdate(fields)
	if err != nil {
		return nil, err
	}

	return uc.store.UpdateUser(id, valid)
}
