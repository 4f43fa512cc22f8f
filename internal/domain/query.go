package domain

import "time"

// Query представляет нормализованную спецификацию запроса списка пользователей.
// Пустая строка в текстовых фильтрах означает отсутствие фильтра.
type Query struct {
	Search      string
	Role        string
	Status      string
	Profile     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	SortField   string
	SortDesc    bool
	Page        int
	PageSize    int
}

// Pagination представляет метаданные страницы результата.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}
