package community

import (
	"strings"
	"time"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Due is a fee charged to a house, optionally attributed to one resident.
// RemainingBalance tracks what is still owed: 0 <= RemainingBalance <= Amount.
type Due struct {
	shared.BaseEntity
	Name             string          `gorm:"type:varchar(100);not null"`
	Amount           decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	RemainingBalance decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	DueDate          *time.Time
	Description      string     `gorm:"type:varchar(500)"`
	Status           DebtStatus `gorm:"type:varchar(20);not null;default:'Pending'"`
	HouseID          uint       `gorm:"not null;index"`
	ResidentID       *uint      `gorm:"index"`
	Resident         *Resident  `gorm:"foreignKey:ResidentID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Payments         []Payment  `gorm:"foreignKey:DueID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Due) TableName() string {
	return "dues"
}

// NewDue creates a new pending due whose remaining balance equals its amount
func NewDue(houseID uint, residentID *uint, name string, amount decimal.Decimal) (*Due, error) {
	name = strings.TrimSpace(name)
	if err := validateReference("house_id", "House", houseID); err != nil {
		return nil, err
	}
	if residentID != nil {
		if err := validateReference("resident_id", "Resident", *residentID); err != nil {
			return nil, err
		}
	}
	if err := validateRequired("name", "Name", name, 100); err != nil {
		return nil, err
	}
	if err := validateMoney("amount", "Amount", amount); err != nil {
		return nil, err
	}

	return &Due{
		BaseEntity:       shared.NewBaseEntity(),
		Name:             name,
		Amount:           amount,
		RemainingBalance: amount,
		Status:           DebtStatusPending,
		HouseID:          houseID,
		ResidentID:       residentID,
	}, nil
}

// Rename changes the due label
func (d *Due) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateRequired("name", "Name", name, 100); err != nil {
		return err
	}
	d.Name = name
	return nil
}

// Describe sets the free-text description
func (d *Due) Describe(description string) error {
	if err := validateMaxLength("description", "Description", description, 500); err != nil {
		return err
	}
	d.Description = description
	return nil
}

// Schedule sets the due date; nil leaves it unchanged
func (d *Due) Schedule(dueDate *time.Time) {
	if dueDate != nil {
		d.DueDate = dueDate
	}
}

// AssignTo moves the due to another house and resident
func (d *Due) AssignTo(houseID uint, residentID *uint) error {
	if err := validateReference("house_id", "House", houseID); err != nil {
		return err
	}
	if residentID != nil {
		if err := validateReference("resident_id", "Resident", *residentID); err != nil {
			return err
		}
	}
	d.HouseID = houseID
	d.ResidentID = residentID
	return nil
}

// SetStatus sets the status explicitly
func (d *Due) SetStatus(status DebtStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "Invalid status: must be one of Pending, Paid, Overdue")
	}
	d.Status = status
	return nil
}

// ChangeAmount changes the charged amount and shifts the remaining balance by
// the same delta. The amount cannot drop below what was already paid.
func (d *Due) ChangeAmount(amount decimal.Decimal) error {
	if err := validateMoney("amount", "Amount", amount); err != nil {
		return err
	}
	remaining := d.RemainingBalance.Add(amount.Sub(d.Amount))
	if remaining.IsNegative() {
		return shared.NewValidationError("amount", "Amount cannot be lower than the amount already paid")
	}
	d.Amount = amount
	d.RemainingBalance = remaining
	d.reconcileStatus()
	return nil
}

// ApplyPayment deducts a payment from the remaining balance.
// A settled due is marked Paid.
func (d *Due) ApplyPayment(amount decimal.Decimal) error {
	if err := validateMoney("amount_paid", "Amount paid", amount); err != nil {
		return err
	}
	if amount.GreaterThan(d.RemainingBalance) {
		return shared.NewValidationError("amount_paid", "Amount paid exceeds the remaining balance of the due")
	}
	d.RemainingBalance = d.RemainingBalance.Sub(amount)
	d.reconcileStatus()
	return nil
}

// RevertPayment gives back a previously applied payment.
// A Paid due with an outstanding balance returns to Pending.
func (d *Due) RevertPayment(amount decimal.Decimal) {
	remaining := d.RemainingBalance.Add(amount)
	if remaining.GreaterThan(d.Amount) {
		remaining = d.Amount
	}
	d.RemainingBalance = remaining
	d.reconcileStatus()
}

// IsSettled returns true if nothing is owed
func (d *Due) IsSettled() bool {
	return d.RemainingBalance.IsZero()
}

func (d *Due) reconcileStatus() {
	if d.IsSettled() {
		d.Status = DebtStatusPaid
		return
	}
	if d.Status == DebtStatusPaid {
		d.Status = DebtStatusPending
	}
}
