package community

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{6,19}$`)

	// numeric(10,2) upper bound
	maxMoney = decimal.New(1, 8)
)

func validateRequired(field, label, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return shared.NewValidationError(field, fmt.Sprintf("%s cannot be empty", label))
	}
	return validateMaxLength(field, label, value, maxLen)
}

func validateMaxLength(field, label, value string, maxLen int) error {
	if utf8.RuneCountInString(value) > maxLen {
		return shared.NewValidationError(field, fmt.Sprintf("%s cannot exceed %d characters", label, maxLen))
	}
	return nil
}

func validateEmail(email string) error {
	if err := validateRequired("email", "Email", email, 200); err != nil {
		return err
	}
	if !emailRegex.MatchString(email) {
		return shared.NewValidationError("email", "Invalid email format")
	}
	return nil
}

func validatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phoneRegex.MatchString(phone) {
		return shared.NewValidationError("phone", "Invalid phone format")
	}
	return nil
}

// validateMoney enforces a positive amount with at most two decimal places
func validateMoney(field, label string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError(field, fmt.Sprintf("%s must be greater than zero", label))
	}
	if !amount.Equal(amount.Round(2)) {
		return shared.NewValidationError(field, fmt.Sprintf("%s cannot have more than 2 decimal places", label))
	}
	if amount.GreaterThanOrEqual(maxMoney) {
		return shared.NewValidationError(field, fmt.Sprintf("%s cannot exceed 99999999.99", label))
	}
	return nil
}

func validateReference(field, label string, id uint) error {
	if id == 0 {
		return shared.NewValidationError(field, fmt.Sprintf("%s is required", label))
	}
	return nil
}
