package community

import (
	"strings"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
)

// DebtStatus represents the settlement state of a due
type DebtStatus string

const (
	DebtStatusPending DebtStatus = "Pending"
	DebtStatusPaid    DebtStatus = "Paid"
	DebtStatusOverdue DebtStatus = "Overdue"
)

var debtStatuses = []DebtStatus{DebtStatusPending, DebtStatusPaid, DebtStatusOverdue}

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "Cash"
	PaymentMethodCreditCard PaymentMethod = "CreditCard"
	PaymentMethodTransfer   PaymentMethod = "Transfer"
)

var paymentMethods = []PaymentMethod{PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodTransfer}

// String returns the canonical token
func (s DebtStatus) String() string {
	return string(s)
}

// IsValid returns true if s is one of the defined statuses
func (s DebtStatus) IsValid() bool {
	for _, v := range debtStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// String returns the canonical token
func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid returns true if m is one of the defined methods
func (m PaymentMethod) IsValid() bool {
	for _, v := range paymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

// ParseDebtStatus maps a client-supplied string to a DebtStatus.
// Matching ignores case but otherwise requires the exact member name.
func ParseDebtStatus(value string) (DebtStatus, error) {
	for _, s := range debtStatuses {
		if strings.EqualFold(value, string(s)) {
			return s, nil
		}
	}
	return "", shared.NewValidationError("status", "Invalid status: must be one of Pending, Paid, Overdue")
}

// ParsePaymentMethod maps a client-supplied string to a PaymentMethod.
// Matching ignores case but otherwise requires the exact member name.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, m := range paymentMethods {
		if strings.EqualFold(value, string(m)) {
			return m, nil
		}
	}
	return "", shared.NewValidationError("method", "Invalid method: must be one of Cash, CreditCard, Transfer")
}
