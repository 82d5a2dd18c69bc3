package community

import (
	"strings"
	"time"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
)

// Resident is a person living in a house
type Resident struct {
	shared.BaseEntity
	Name       string    `gorm:"type:varchar(50);not null"`
	Phone      string    `gorm:"type:varchar(20)"`
	Email      string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_residents_email"`
	MoveInDate time.Time `gorm:"not null"`
	HouseID    uint      `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Resident) TableName() string {
	return "residents"
}

// NewResident creates a new resident. A zero moveIn defaults to now.
func NewResident(houseID uint, name, phone, email string, moveIn time.Time) (*Resident, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if err := validateReference("house_id", "House", houseID); err != nil {
		return nil, err
	}
	if err := validateRequired("name", "Name", name, 50); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if moveIn.IsZero() {
		moveIn = shared.Now()
	}

	return &Resident{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      phone,
		Email:      email,
		MoveInDate: moveIn,
		HouseID:    houseID,
	}, nil
}

// Rename changes the resident's name
func (r *Resident) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateRequired("name", "Name", name, 50); err != nil {
		return err
	}
	r.Name = name
	return nil
}

// SetContact changes phone and email; nil leaves a value unchanged
func (r *Resident) SetContact(phone, email *string) error {
	if phone != nil {
		p := strings.TrimSpace(*phone)
		if err := validatePhone(p); err != nil {
			return err
		}
		r.Phone = p
	}
	if email != nil {
		e := strings.TrimSpace(*email)
		if err := validateEmail(e); err != nil {
			return err
		}
		r.Email = e
	}
	return nil
}

// MoveIn records the move-in date
func (r *Resident) MoveIn(at time.Time) {
	if !at.IsZero() {
		r.MoveInDate = at
	}
}

// Relocate assigns the resident to another house
func (r *Resident) Relocate(houseID uint) error {
	if err := validateReference("house_id", "House", houseID); err != nil {
		return err
	}
	r.HouseID = houseID
	return nil
}
