package domain

import "context"

// RecordStore определяет контракт кэширующего хранилища снимков.
type RecordStore interface {
	Users(ctx context.Context) ([]User, error)
	Stats(ctx context.Context) (Stats, error)
	UpdateUser(id int, fields map[string]any) (*User, error)
	Refresh(ctx context.Context) error
	Invalidate()
}
