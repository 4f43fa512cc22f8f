// Package validate проверяет частичные обновления записей пользователей.
package validate

import (
	"fmt"
	"slices"

	"lunar-dashboard/internal/domain"
)

// Схема изменяемых полей записи пользователя. Фиксированный перечень:
// любое поле вне схемы отклоняется с перечислением в общем списке ошибок.
var updatableFields = map[string]func(v any) string{
	"status":       validateStatus,
	"role":         validateRole,
	"profile":      validateString("profile"),
	"lastActivity": validateString("lastActivity"),
	"servers":      validateServers,
}

// UserUpdate проверяет предложенные изменения против схемы. Ошибки
// накапливаются: вызывающая сторона получает полный список нарушений,
// а не первое из них. При успехе возвращается подмножество проверенных
// полей для поверхностного слияния с существующей записью.
func UserUpdate(fields map[string]any) (map[string]any, error) {
	var errs []string
	valid := make(map[string]any, len(fields))

	for field, value := range fields {
		check, ok := updatableFields[field]
		if !ok {
			errs = append(errs, fmt.Sprintf("Field '%s' is not allowed for update", field))
			continue
		}
		if msg := check(value); msg != "" {
			errs = append(errs, msg)
			continue
		}
		valid[field] = value
	}

	if len(errs) > 0 {
		slices.Sort(errs)
		return nil, &domain.ValidationError{Errors: errs}
	}
	return valid, nil
}

func validateStatus(v any) string {
	s, ok := v.(string)
	if !ok || !slices.Contains(domain.Statuses, s) {
		return `Status must be either "Connected" or "Offline"`
	}
	return ""
}

func validateRole(v any) string {
	s, ok := v.(string)
	if !ok || !slices.Contains(domain.Roles, s) {
		return "Role must be one of: Admin, User, Power User"
	}
	return ""
}

func validateString(field string) func(v any) string {
	return func(v any) string {
		if _, ok := v.(string); !ok {
			return fmt.Sprintf("Field '%s' must be a string", field)
		}
		return ""
	}
}

func validateServers(v any) string {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return "Servers must be a non-negative number"
		}
	case int:
		if n < 0 {
			return "Servers must be a non-negative number"
		}
	default:
		return "Servers must be a non-negative number"
	}
	return ""
}
