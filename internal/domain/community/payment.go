package community

import (
	"strings"
	"time"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Payment settles all or part of a due.
// HouseID and ResidentID are denormalized conveniences; DueID is the source of truth.
type Payment struct {
	shared.BaseEntity
	AmountPaid decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	PaidAt     time.Time       `gorm:"not null"`
	Method     PaymentMethod   `gorm:"type:varchar(20);not null"`
	Notes      string          `gorm:"type:varchar(500)"`
	DueID      uint            `gorm:"not null;index"`
	HouseID    *uint           `gorm:"index"`
	ResidentID *uint           `gorm:"index"`
	House      *House          `gorm:"foreignKey:HouseID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Resident   *Resident       `gorm:"foreignKey:ResidentID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a payment against a due. A zero paidAt defaults to now.
func NewPayment(dueID uint, amount decimal.Decimal, method PaymentMethod, paidAt time.Time) (*Payment, error) {
	if err := validateReference("due_id", "Due", dueID); err != nil {
		return nil, err
	}
	if err := validateMoney("amount_paid", "Amount paid", amount); err != nil {
		return nil, err
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("method", "Invalid method: must be one of Cash, CreditCard, Transfer")
	}
	if paidAt.IsZero() {
		paidAt = shared.Now()
	}

	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		AmountPaid: amount,
		PaidAt:     paidAt,
		Method:     method,
		DueID:      dueID,
	}, nil
}

// Attribute links the payment to a house and resident; nil leaves a link unchanged
func (p *Payment) Attribute(houseID, residentID *uint) error {
	if houseID != nil {
		if err := validateReference("house_id", "House", *houseID); err != nil {
			return err
		}
		p.HouseID = houseID
	}
	if residentID != nil {
		if err := validateReference("resident_id", "Resident", *residentID); err != nil {
			return err
		}
		p.ResidentID = residentID
	}
	return nil
}

// Reassign points the payment at another due
func (p *Payment) Reassign(dueID uint) error {
	if err := validateReference("due_id", "Due", dueID); err != nil {
		return err
	}
	p.DueID = dueID
	return nil
}

// ChangeAmount sets the paid amount
func (p *Payment) ChangeAmount(amount decimal.Decimal) error {
	if err := validateMoney("amount_paid", "Amount paid", amount); err != nil {
		return err
	}
	p.AmountPaid = amount
	return nil
}

// SetMethod sets the payment method
func (p *Payment) SetMethod(method PaymentMethod) error {
	if !method.IsValid() {
		return shared.NewValidationError("method", "Invalid method: must be one of Cash, CreditCard, Transfer")
	}
	p.Method = method
	return nil
}

// Annotate sets the free-text notes
func (p *Payment) Annotate(notes string) error {
	notes = strings.TrimSpace(notes)
	if err := validateMaxLength("notes", "Notes", notes, 500); err != nil {
		return err
	}
	p.Notes = notes
	return nil
}

// Reschedule sets when the payment was made
func (p *Payment) Reschedule(paidAt time.Time) {
	if !paidAt.IsZero() {
		p.PaidAt = paidAt
	}
}
