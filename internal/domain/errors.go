package domain

import (
	"errors"
	"strings"
)

// Domain ошибки (для бизнес-логики)
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrValidationFailed  = errors.New("validation failed")
	ErrSourceUnavailable = errors.New("failed to load data from source")
)

// ValidationError накапливает все нарушения одного запроса на обновление.
// Вызывающая сторона получает полный список, а не первую ошибку.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "Validation failed: " + strings.Join(e.Errors, ", ")
}

// Is сопоставляет ValidationError с сигнальной ошибкой ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
