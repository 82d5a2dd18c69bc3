package community

import (
	"context"
	"errors"
	"testing"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/community"
	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newResidentService() (*ResidentService, *MockResidentRepository, *MockHouseRepository, *MockMetrics) {
	residents := new(MockResidentRepository)
	houses := new(MockHouseRepository)
	metrics := new(MockMetrics)
	return NewResidentService(residents, houses, &inlineTxManager{}, metrics), residents, houses, metrics
}

func TestResidentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates resident in existing house", func(t *testing.T) {
		svc, residents, houses, metrics := newResidentService()
		houses.On("ExistsByID", mock.Anything, uint(1)).Return(true, nil)
		residents.On("ExistsByEmail", mock.Anything, "j@x.com", uint(0)).Return(false, nil)
		residents.On("Create", mock.Anything, mock.AnythingOfType("*community.Resident")).Run(assignID(7)).Return(nil)
		metrics.On("RecordCreated", mock.Anything, "resident").Return()

		resp, err := svc.Create(ctx, CreateResidentRequest{HouseID: 1, Name: "Jane", Email: "j@x.com", Phone: "+52 555 123 4567"})

		require.NoError(t, err)
		assert.Equal(t, uint(7), resp.ID)
		assert.Equal(t, uint(1), resp.HouseID)
		assert.Equal(t, "+52 555 123 4567", resp.Phone)
		assert.False(t, resp.MoveInDate.IsZero())
		metrics.AssertExpectations(t)
	})

	t.Run("unknown house is not found and nothing is written", func(t *testing.T) {
		svc, residents, houses, _ := newResidentService()
		houses.On("ExistsByID", mock.Anything, uint(42)).Return(false, nil)

		resp, err := svc.Create(ctx, CreateResidentRequest{HouseID: 42, Name: "Jane", Email: "j@x.com"})

		assert.Nil(t, resp)
		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
		assert.Equal(t, "House not found", err.Error())
		residents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("taken email is a conflict", func(t *testing.T) {
		svc, residents, houses, _ := newResidentService()
		houses.On("ExistsByID", mock.Anything, uint(1)).Return(true, nil)
		residents.On("ExistsByEmail", mock.Anything, "j@x.com", uint(0)).Return(true, nil)

		_, err := svc.Create(ctx, CreateResidentRequest{HouseID: 1, Name: "Jane", Email: "j@x.com"})

		assert.True(t, shared.IsConflict(err))
		residents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("malformed email fails validation first", func(t *testing.T) {
		svc, _, houses, _ := newResidentService()

		_, err := svc.Create(ctx, CreateResidentRequest{HouseID: 1, Name: "Jane", Email: "not-an-email"})

		assert.True(t, shared.IsValidation(err))
		houses.AssertNotCalled(t, "ExistsByID", mock.Anything, mock.Anything)
	})

	t.Run("store failures propagate", func(t *testing.T) {
		svc, _, houses, _ := newResidentService()
		houses.On("ExistsByID", mock.Anything, uint(1)).Return(false, errors.New("db down"))

		_, err := svc.Create(ctx, CreateResidentRequest{HouseID: 1, Name: "Jane", Email: "j@x.com"})

		assert.EqualError(t, err, "db down")
	})
}

func TestResidentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("relocating to a missing house is not found", func(t *testing.T) {
		svc, residents, houses, _ := newResidentService()
		residents.On("FindByID", mock.Anything, uint(7)).Return(existingResident(7, 1, "j@x.com"), nil)
		houses.On("ExistsByID", mock.Anything, uint(99)).Return(false, nil)

		err := svc.Update(ctx, 7, UpdateResidentRequest{HouseID: uintPtr(99)})

		assert.Equal(t, "House not found", err.Error())
		residents.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("same house is not re-checked", func(t *testing.T) {
		svc, residents, houses, _ := newResidentService()
		residents.On("FindByID", mock.Anything, uint(7)).Return(existingResident(7, 1, "j@x.com"), nil)
		residents.On("Update", mock.Anything, mock.MatchedBy(func(r *community.Resident) bool {
			return r.Name == "Janet" && r.HouseID == 1
		})).Return(nil)

		err := svc.Update(ctx, 7, UpdateResidentRequest{HouseID: uintPtr(1), Name: strPtr("Janet")})

		require.NoError(t, err)
		houses.AssertNotCalled(t, "ExistsByID", mock.Anything, mock.Anything)
		residents.AssertExpectations(t)
	})

	t.Run("changed email is checked excluding self", func(t *testing.T) {
		svc, residents, _, _ := newResidentService()
		residents.On("FindByID", mock.Anything, uint(7)).Return(existingResident(7, 1, "j@x.com"), nil)
		residents.On("ExistsByEmail", mock.Anything, "new@x.com", uint(7)).Return(true, nil)

		err := svc.Update(ctx, 7, UpdateResidentRequest{Email: strPtr("new@x.com")})

		assert.True(t, shared.IsConflict(err))
	})

	t.Run("concurrent modification is a conflict", func(t *testing.T) {
		svc, residents, _, _ := newResidentService()
		residents.On("FindByID", mock.Anything, uint(7)).Return(existingResident(7, 1, "j@x.com"), nil)
		residents.On("Update", mock.Anything, mock.Anything).Return(shared.ErrConcurrencyConflict)

		err := svc.Update(ctx, 7, UpdateResidentRequest{Phone: strPtr("5551234567")})

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestResidentService_Delete(t *testing.T) {
	svc, residents, _, _ := newResidentService()
	residents.On("Delete", mock.Anything, uint(3)).Return(shared.NewNotFoundError("Resident"))

	err := svc.Delete(context.Background(), 3)

	assert.True(t, shared.IsNotFound(err))
}
