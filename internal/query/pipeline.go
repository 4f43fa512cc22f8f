package query

import (
	"sort"
	"strings"

	"lunar-dashboard/internal/domain"
)

// Apply прогоняет снимок через конвейер фильтрация → сортировка → пагинация.
// Снимок не изменяется: сортировка работает с копией отфильтрованного среза.
func Apply(users []domain.User, q domain.Query) ([]domain.User, domain.Pagination) {
	filtered := Filter(users, q)
	Sort(filtered, q.SortField, q.SortDesc)
	return Paginate(filtered, q.Page, q.PageSize)
}

// Filter возвращает записи, удовлетворяющие всем активным предикатам.
// Отсутствующий фильтр пропускает любую запись.
func Filter(users []domain.User, q domain.Query) []domain.User {
	result := make([]domain.User, 0, len(users))
	for _, u := range users {
		if !matches(u, q) {
			continue
		}
		result = append(result, u)
	}
	return result
}

func matches(u domain.User, q domain.Query) bool {
	if q.Search != "" && !strings.Contains(strings.ToLower(u.Name), q.Search) {
		return false
	}
	if q.Role != "" && strings.ToLower(u.Role) != q.Role {
		return false
	}
	if q.Status != "" && strings.ToLower(u.Status) != q.Status {
		return false
	}
	if q.Profile != "" && strings.ToLower(u.Profile) != q.Profile {
		return false
	}
	if q.CreatedFrom != nil || q.CreatedTo != nil {
		created := ParseDate(u.CreatedAt)
		// Запись без читаемой даты не исключается границами.
		if created != nil {
			if q.CreatedFrom != nil && created.Before(*q.CreatedFrom) {
				return false
			}
			if q.CreatedTo != nil && created.After(*q.CreatedTo) {
				return false
			}
		}
	}
	return true
}

// Sort устойчиво сортирует записи по полю field. Текстовые поля сравниваются
// без учета регистра, числовые — естественным порядком. Неизвестное поле
// оставляет исходный порядок. Направление "asc" — возрастание, любое другое —
// убывание; равные ключи сохраняют взаимный порядок в обоих направлениях.
func Sort(users []domain.User, field string, desc bool) {
	cmp := comparator(field)
	if cmp == nil {
		return
	}
	sort.SliceStable(users, func(i, j int) bool {
		c := cmp(users[i], users[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func comparator(field string) func(a, b domain.User) int {
	switch field {
	case "id":
		return func(a, b domain.User) int { return a.ID - b.ID }
	case "servers":
		return func(a, b domain.User) int { return a.Servers - b.Servers }
	case "name":
		return textComparator(func(u domain.User) string { return u.Name })
	case "avatar":
		return textComparator(func(u domain.User) string { return u.Avatar })
	case "profile":
		return textComparator(func(u domain.User) string { return u.Profile })
	case "status":
		return textComparator(func(u domain.User) string { return u.Status })
	case "role":
		return textComparator(func(u domain.User) string { return u.Role })
	case "lastActivity":
		return textComparator(func(u domain.User) string { return u.LastActivity })
	case "createdAt":
		return textComparator(func(u domain.User) string { return u.CreatedAt })
	default:
		return nil
	}
}

func textComparator(key func(u domain.User) string) func(a, b domain.User) int {
	return func(a, b domain.User) int {
		return strings.Compare(strings.ToLower(key(a)), strings.ToLower(key(b)))
	}
}

// Paginate вырезает страницу [startIndex, endIndex) и считает метаданные.
// Страница за пределами результата дает пустые данные с корректными
// метаданными, а не ошибку.
func Paginate(users []domain.User, page, pageSize int) ([]domain.User, domain.Pagination) {
	total := len(users)
	startIndex := (page - 1) * pageSize
	endIndex := startIndex + pageSize

	data := []domain.User{}
	if startIndex < total {
		if endIndex > total {
			data = users[startIndex:total]
		} else {
			data = users[startIndex:endIndex]
		}
	}

	return data, domain.Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (total + pageSize - 1) / pageSize,
		HasNext:    endIndex < total,
		HasPrev:    page > 1,
	}
}

// FindByID возвращает первую запись с данным идентификатором.
func FindByID(users []domain.User, id int) (*domain.User, bool) {
	for i := range users {
		if users[i].ID == id {
			return &users[i], true
		}
	}
	return nil, false
}
