package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	t.Run("not found names the entity", func(t *testing.T) {
		err := NewNotFoundError("House")
		assert.Equal(t, "House not found", err.Error())
		assert.True(t, IsNotFound(err))
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.False(t, errors.Is(err, ErrConcurrencyConflict))
	})

	t.Run("classifies wrapped errors", func(t *testing.T) {
		wrapped := fmt.Errorf("saving: %w", NewValidationError("email", "Invalid email format"))
		assert.True(t, IsValidation(wrapped))
		assert.False(t, IsConflict(wrapped))

		var de *DomainError
		assert.True(t, errors.As(wrapped, &de))
		assert.Equal(t, "email", de.Field)
	})

	t.Run("already exists counts as conflict", func(t *testing.T) {
		assert.True(t, IsConflict(ErrAlreadyExists))
		assert.True(t, IsConflict(ErrReferenced))
		assert.False(t, IsConflict(errors.New("boom")))
	})
}
