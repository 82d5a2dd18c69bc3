package community

import (
	"testing"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDebtStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected DebtStatus
	}{
		{"Pending", DebtStatusPending},
		{"paid", DebtStatusPaid},
		{"PAID", DebtStatusPaid},
		{"pAiD", DebtStatusPaid},
		{"overdue", DebtStatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			status, err := ParseDebtStatus(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}

	t.Run("rejects unknown value", func(t *testing.T) {
		for _, input := range []string{"quux", "", "pend", "Paid!", "0", " paid ", "Paid\n"} {
			_, err := ParseDebtStatus(input)
			require.Error(t, err, input)
			assert.True(t, shared.IsValidation(err))

			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "status", de.Field)
		}
	})
}

func TestParsePaymentMethod(t *testing.T) {
	t.Run("matches case-insensitively", func(t *testing.T) {
		method, err := ParsePaymentMethod("creditcard")
		require.NoError(t, err)
		assert.Equal(t, PaymentMethodCreditCard, method)

		method, err = ParsePaymentMethod("CASH")
		require.NoError(t, err)
		assert.Equal(t, PaymentMethodCash, method)

		method, err = ParsePaymentMethod("Transfer")
		require.NoError(t, err)
		assert.Equal(t, PaymentMethodTransfer, method)
	})

	t.Run("rejects partial names", func(t *testing.T) {
		_, err := ParsePaymentMethod("credit")
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
		assert.Contains(t, err.Error(), "Invalid method")
	})

	t.Run("rejects padded names", func(t *testing.T) {
		_, err := ParsePaymentMethod(" Cash ")
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, DebtStatusOverdue.IsValid())
	assert.False(t, DebtStatus("paid").IsValid())
	assert.True(t, PaymentMethodCash.IsValid())
	assert.False(t, PaymentMethod("Cheque").IsValid())
	assert.Equal(t, "CreditCard", PaymentMethodCreditCard.String())
	assert.Equal(t, "Pending", DebtStatusPending.String())
}
