package query

import (
	"strconv"
	"strings"
	"time"

	"lunar-dashboard/internal/domain"
)

// Параметры пагинации по умолчанию.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultSort     = "id:asc"
)

// Форматы, в которых источник и клиенты передают даты.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"Jan 2 2006",
}

// Params представляет сырые строковые параметры запроса.
// Отсутствующий параметр передается пустой строкой.
type Params struct {
	Search      string
	Role        string
	Status      string
	Profile     string
	CreatedFrom string
	CreatedTo   string
	Sort        string
	Page        string
	PageSize    string
}

// Normalize превращает сырые параметры в каноническую спецификацию запроса.
// Преобразование чистое и никогда не возвращает ошибку: некорректные значения
// заменяются значениями по умолчанию, нечитаемые даты снимают ограничение.
func Normalize(p Params) domain.Query {
	sortField, sortDesc := parseSort(p.Sort)

	return domain.Query{
		Search:      normalizeText(p.Search),
		Role:        normalizeText(p.Role),
		Status:      normalizeText(p.Status),
		Profile:     normalizeText(p.Profile),
		CreatedFrom: ParseDate(p.CreatedFrom),
		CreatedTo:   ParseDate(p.CreatedTo),
		SortField:   sortField,
		SortDesc:    sortDesc,
		Page:        parsePage(p.Page),
		PageSize:    parsePageSize(p.PageSize),
	}
}

func normalizeText(v string) string {
	return strings.TrimSpace(strings.ToLower(v))
}

// ParseDate разбирает дату в одном из поддерживаемых форматов.
// Пустая или нечитаемая строка дает nil — фильтр без границы.
func ParseDate(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}

// parseSort разбирает строку вида "field:direction". Любое направление,
// отличное от "asc", трактуется как убывание.
func parseSort(v string) (field string, desc bool) {
	if v == "" {
		v = DefaultSort
	}
	field, direction, _ := strings.Cut(v, ":")
	return field, direction != "asc"
}

func parsePage(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return DefaultPage
	}
	return n
}

func parsePageSize(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return DefaultPageSize
	}
	if n < 1 {
		return 1
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}
