package community

import (
	"context"
	"time"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/community"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// mockRepository implements shared.Repository[T] on top of mock.Mock
type mockRepository[T any] struct {
	mock.Mock
}

func (m *mockRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	args := m.MethodCalled("FindAll", ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *mockRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	args := m.MethodCalled("FindByID", ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *mockRepository[T]) ExistsByID(ctx context.Context, id uint) (bool, error) {
	args := m.MethodCalled("ExistsByID", ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository[T]) Create(ctx context.Context, entity *T) error {
	args := m.MethodCalled("Create", ctx, entity)
	return args.Error(0)
}

func (m *mockRepository[T]) Update(ctx context.Context, entity *T) error {
	args := m.MethodCalled("Update", ctx, entity)
	return args.Error(0)
}

func (m *mockRepository[T]) Delete(ctx context.Context, id uint) error {
	args := m.MethodCalled("Delete", ctx, id)
	return args.Error(0)
}

// MockHouseRepository is a mock implementation of HouseRepository
type MockHouseRepository struct {
	mockRepository[community.House]
}

func (m *MockHouseRepository) ExistsByHouseNumber(ctx context.Context, houseNumber string, excludeID uint) (bool, error) {
	args := m.MethodCalled("ExistsByHouseNumber", ctx, houseNumber, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockResidentRepository is a mock implementation of ResidentRepository
type MockResidentRepository struct {
	mockRepository[community.Resident]
}

func (m *MockResidentRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	args := m.MethodCalled("ExistsByEmail", ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockResidentRepository) DeleteByHouse(ctx context.Context, houseID uint) error {
	args := m.MethodCalled("DeleteByHouse", ctx, houseID)
	return args.Error(0)
}

// MockDueRepository is a mock implementation of DueRepository
type MockDueRepository struct {
	mockRepository[community.Due]
}

func (m *MockDueRepository) DeleteByHouse(ctx context.Context, houseID uint) error {
	args := m.MethodCalled("DeleteByHouse", ctx, houseID)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mockRepository[community.Payment]
}

// =============================================================================
// Other collaborators
// =============================================================================

// inlineTxManager runs the function directly, counting invocations
type inlineTxManager struct {
	calls int
}

func (m *inlineTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// MockMetrics is a mock implementation of Metrics
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordCreated(ctx context.Context, resource string) {
	m.Called(ctx, resource)
}

func (m *MockMetrics) RecordPayment(ctx context.Context, method string, amount decimal.Decimal) {
	m.Called(ctx, method, amount)
}

func (m *MockMetrics) RecordPaymentReverted(ctx context.Context, method string, amount decimal.Decimal) {
	m.Called(ctx, method, amount)
}

func (m *MockMetrics) RecordDueSettled(ctx context.Context) {
	m.Called(ctx)
}

// =============================================================================
// Test Helper Functions
// =============================================================================

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

// assignID mimics the store assigning an identifier on insert
func assignID(id uint) func(args mock.Arguments) {
	return func(args mock.Arguments) {
		switch e := args.Get(1).(type) {
		case *community.House:
			e.ID = id
		case *community.Resident:
			e.ID = id
		case *community.Due:
			e.ID = id
		case *community.Payment:
			e.ID = id
		}
	}
}

var fixedTime = time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)

func existingHouse(id uint, number string) *community.House {
	house, _ := community.NewHouse(number, "Main St", nil, nil)
	house.ID = id
	return house
}

func existingResident(id, houseID uint, email string) *community.Resident {
	resident, _ := community.NewResident(houseID, "Jane", "", email, fixedTime)
	resident.ID = id
	return resident
}

func existingDue(id, houseID uint, amount string) *community.Due {
	due, _ := community.NewDue(houseID, nil, "Maintenance", dec(amount))
	due.ID = id
	return due
}

func existingPayment(id, dueID uint, amount string) *community.Payment {
	payment, _ := community.NewPayment(dueID, dec(amount), community.PaymentMethodCash, fixedTime)
	payment.ID = id
	return payment
}
