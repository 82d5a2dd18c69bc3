package community

import (
	"context"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Metrics receives business events from the community services
type Metrics interface {
	RecordCreated(ctx context.Context, resource string)
	RecordPayment(ctx context.Context, method string, amount decimal.Decimal)
	RecordPaymentReverted(ctx context.Context, method string, amount decimal.Decimal)
	RecordDueSettled(ctx context.Context)
}

type noopMetrics struct{}

func (noopMetrics) RecordCreated(context.Context, string)                          {}
func (noopMetrics) RecordPayment(context.Context, string, decimal.Decimal)         {}
func (noopMetrics) RecordPaymentReverted(context.Context, string, decimal.Decimal) {}
func (noopMetrics) RecordDueSettled(context.Context)                               {}

func metricsOrNoop(m Metrics) Metrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}

// resource holds the read and delete paths shared by every service.
// Create and update stay in the services, which supply their own checks.
type resource[T any, R any] struct {
	repo       shared.Repository[T]
	toResponse func(*T) R
}

func (r resource[T, R]) list(ctx context.Context) ([]R, error) {
	items, err := r.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]R, len(items))
	for i := range items {
		responses[i] = r.toResponse(&items[i])
	}
	return responses, nil
}

func (r resource[T, R]) get(ctx context.Context, id uint) (*R, error) {
	item, err := r.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := r.toResponse(item)
	return &resp, nil
}

func (r resource[T, R]) delete(ctx context.Context, id uint) error {
	return r.repo.Delete(ctx, id)
}

// existenceChecker is satisfied by every repository
type existenceChecker interface {
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

// requireExists fails with a not-found error naming entity if id is unknown
func requireExists(ctx context.Context, repo existenceChecker, entity string, id uint) error {
	exists, err := repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewNotFoundError(entity)
	}
	return nil
}

// requireExistsIfSet is requireExists for optional references
func requireExistsIfSet(ctx context.Context, repo existenceChecker, entity string, id *uint) error {
	if id == nil {
		return nil
	}
	return requireExists(ctx, repo, entity, *id)
}

func uintChanged(current uint, next *uint) bool {
	return next != nil && *next != current
}

func optionalUintChanged(current, next *uint) bool {
	if next == nil {
		return false
	}
	return current == nil || *current != *next
}
