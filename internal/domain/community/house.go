package community

import (
	"strings"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
)

// House represents a dwelling in the community.
// It owns its residents and dues; neither can be orphaned by deleting the house.
type House struct {
	shared.BaseEntity
	HouseNumber string     `gorm:"type:varchar(10);not null;uniqueIndex:idx_houses_house_number"`
	Address     string     `gorm:"type:varchar(200)"`
	Rooms       *int       `gorm:"type:integer"`
	Bathrooms   *int       `gorm:"type:integer"`
	Residents   []Resident `gorm:"foreignKey:HouseID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Dues        []Due      `gorm:"foreignKey:HouseID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (House) TableName() string {
	return "houses"
}

// NewHouse creates a new house with required fields
func NewHouse(houseNumber, address string, rooms, bathrooms *int) (*House, error) {
	houseNumber = strings.TrimSpace(houseNumber)
	if err := validateHouseNumber(houseNumber); err != nil {
		return nil, err
	}
	if err := validateMaxLength("address", "Address", address, 200); err != nil {
		return nil, err
	}

	return &House{
		BaseEntity:  shared.NewBaseEntity(),
		HouseNumber: houseNumber,
		Address:     address,
		Rooms:       rooms,
		Bathrooms:   bathrooms,
	}, nil
}

// Renumber changes the house number
func (h *House) Renumber(houseNumber string) error {
	houseNumber = strings.TrimSpace(houseNumber)
	if err := validateHouseNumber(houseNumber); err != nil {
		return err
	}
	h.HouseNumber = houseNumber
	return nil
}

// SetAddress changes the street address
func (h *House) SetAddress(address string) error {
	if err := validateMaxLength("address", "Address", address, 200); err != nil {
		return err
	}
	h.Address = address
	return nil
}

// SetLayout changes the room and bathroom counts; nil leaves a count unchanged
func (h *House) SetLayout(rooms, bathrooms *int) {
	if rooms != nil {
		h.Rooms = rooms
	}
	if bathrooms != nil {
		h.Bathrooms = bathrooms
	}
}

func validateHouseNumber(houseNumber string) error {
	return validateRequired("house_number", "House number", houseNumber, 10)
}
