package repository

import "context"

// PrefsRepo is the local key-value preference store backing persisted
// filter state and view settings. It satisfies query.Storage.
type PrefsRepo interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
