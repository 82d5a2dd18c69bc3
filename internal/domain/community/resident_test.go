package community

import (
	"strings"
	"testing"
	"time"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResident(t *testing.T) {
	t.Run("creates resident and defaults move-in date", func(t *testing.T) {
		resident, err := NewResident(1, "Jane", "+52 555-123-4567", "j@x.com", time.Time{})
		require.NoError(t, err)

		assert.Equal(t, uint(1), resident.HouseID)
		assert.Equal(t, "Jane", resident.Name)
		assert.Equal(t, "j@x.com", resident.Email)
		assert.WithinDuration(t, time.Now(), resident.MoveInDate, 5*time.Second)
		assert.Zero(t, resident.MoveInDate.Nanosecond()%1000)
		assert.Zero(t, resident.RegisteredAt.Nanosecond()%1000)
	})

	t.Run("keeps explicit move-in date", func(t *testing.T) {
		moveIn := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
		resident, err := NewResident(1, "Jane", "", "j@x.com", moveIn)
		require.NoError(t, err)
		assert.Equal(t, moveIn, resident.MoveInDate)
	})

	t.Run("requires a house", func(t *testing.T) {
		_, err := NewResident(0, "Jane", "", "j@x.com", time.Time{})
		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "house_id", de.Field)
	})

	t.Run("validates fields", func(t *testing.T) {
		cases := map[string]struct {
			name, phone, email, field string
		}{
			"empty name":   {"", "", "j@x.com", "name"},
			"long name":    {strings.Repeat("n", 51), "", "j@x.com", "name"},
			"bad phone":    {"Jane", "call me", "j@x.com", "phone"},
			"empty email":  {"Jane", "", "", "email"},
			"bad email":    {"Jane", "", "not-an-email", "email"},
			"email no tld": {"Jane", "", "j@x", "email"},
		}
		for name, tc := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := NewResident(1, tc.name, tc.phone, tc.email, time.Time{})
				require.Error(t, err)
				var de *shared.DomainError
				require.ErrorAs(t, err, &de)
				assert.Equal(t, shared.CodeValidation, de.Code)
				assert.Equal(t, tc.field, de.Field)
			})
		}
	})
}

func TestResident_Update(t *testing.T) {
	resident, err := NewResident(1, "Jane", "", "j@x.com", time.Time{})
	require.NoError(t, err)

	phone := "5551234567"
	require.NoError(t, resident.SetContact(&phone, nil))
	assert.Equal(t, phone, resident.Phone)
	assert.Equal(t, "j@x.com", resident.Email)

	bad := "nope"
	assert.Error(t, resident.SetContact(nil, &bad))
	assert.Equal(t, "j@x.com", resident.Email)

	require.NoError(t, resident.Relocate(7))
	assert.Equal(t, uint(7), resident.HouseID)
	assert.Error(t, resident.Relocate(0))

	require.NoError(t, resident.Rename("Janet"))
	assert.Equal(t, "Janet", resident.Name)
}
