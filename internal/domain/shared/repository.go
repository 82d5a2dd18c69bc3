package shared

import (
	"context"
)

// Repository is the base interface for all repositories.
// Every operation resolves its connection from ctx, so calls made inside
// TransactionManager.WithinTransaction join the surrounding transaction.
type Repository[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id uint) (*T, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, entity *T) error
	// Update persists entity guarded by its version. A row deleted meanwhile
	// yields NOT_FOUND, any other version mismatch yields CONFLICT.
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uint) error
}

// TransactionManager runs a unit of work atomically
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
