package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Model constrains the pointer type of a persisted entity
type Model[T any] interface {
	*T
	shared.Entity
}

// GormRepository is the generic implementation of shared.Repository.
// Resource repositories embed it and add their own queries.
type GormRepository[T any, PT Model[T]] struct {
	db       *gorm.DB
	entity   string
	preloads []string
}

// NewGormRepository creates a repository for T. entity names T in error
// messages ("House not found"); preloads are eager-loaded on reads.
func NewGormRepository[T any, PT Model[T]](db *gorm.DB, entity string, preloads ...string) *GormRepository[T, PT] {
	return &GormRepository[T, PT]{db: db, entity: entity, preloads: preloads}
}

func (r *GormRepository[T, PT]) conn(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db)
}

func (r *GormRepository[T, PT]) withPreloads(db *gorm.DB) *gorm.DB {
	for _, p := range r.preloads {
		db = db.Preload(p, func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		})
	}
	return db
}

// FindAll returns every row in identifier order
func (r *GormRepository[T, PT]) FindAll(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	if err := r.withPreloads(r.conn(ctx)).Order("id").Find(&items).Error; err != nil {
		return nil, r.translate(err)
	}
	return items, nil
}

// FindByID finds a row by its ID
func (r *GormRepository[T, PT]) FindByID(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.withPreloads(r.conn(ctx)).First(&item, "id = ?", id).Error; err != nil {
		return nil, r.translate(err)
	}
	return &item, nil
}

// ExistsByID checks if a row with the ID exists
func (r *GormRepository[T, PT]) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.conn(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, r.translate(err)
	}
	return count > 0, nil
}

// Create inserts the row; the store assigns the ID. Associations are not saved.
func (r *GormRepository[T, PT]) Create(ctx context.Context, entity *T) error {
	if err := r.conn(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return r.translate(err)
	}
	return nil
}

// Update writes every column of the row, guarded by its version.
// On failure the in-memory version stays bumped; reload before retrying.
func (r *GormRepository[T, PT]) Update(ctx context.Context, entity *T) error {
	e := PT(entity)
	expected := e.GetVersion()
	e.IncrementVersion()

	result := r.conn(ctx).Model(entity).
		Select("*").
		Omit(clause.Associations).
		Where("version = ?", expected).
		Updates(entity)
	if result.Error != nil {
		return r.translate(result.Error)
	}
	if result.RowsAffected == 0 {
		exists, err := r.ExistsByID(ctx, e.GetID())
		if err != nil {
			return err
		}
		if !exists {
			return shared.NewNotFoundError(r.entity)
		}
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes the row. Restricting references surface as CONFLICT.
func (r *GormRepository[T, PT]) Delete(ctx context.Context, id uint) error {
	result := r.conn(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return r.translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(r.entity)
	}
	return nil
}

// translate maps store errors to domain errors without leaking store detail
func (r *GormRepository[T, PT]) translate(err error) error {
	return translateError(r.entity, err)
}

func translateError(entity string, err error) error {
	var de *shared.DomainError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &de):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError(entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("%s already exists", entity))
	case errors.Is(err, gorm.ErrForeignKeyViolated), isSQLiteRestrictViolation(err):
		return shared.ErrReferenced
	default:
		return fmt.Errorf("%s store operation failed: %w", entity, err)
	}
}
