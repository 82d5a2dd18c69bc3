package community

import (
	"time"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/community"
	"github.com/shopspring/decimal"
)

// =============================================================================
// House DTOs
// =============================================================================

// CreateHouseRequest represents a request to create a house, optionally with
// its residents and dues in the same operation
type CreateHouseRequest struct {
	HouseNumber string                 `json:"house_number" binding:"required,max=10"`
	Address     string                 `json:"address" binding:"max=200"`
	Rooms       *int                   `json:"rooms" binding:"omitempty,min=0"`
	Bathrooms   *int                   `json:"bathrooms" binding:"omitempty,min=0"`
	Residents   []HouseResidentRequest `json:"residents" binding:"omitempty,dive"`
	Dues        []HouseDueRequest      `json:"dues" binding:"omitempty,dive"`
}

// UpdateHouseRequest represents a request to update a house.
// A non-nil Residents or Dues list replaces the existing collection.
type UpdateHouseRequest struct {
	HouseNumber *string                `json:"house_number" binding:"omitempty,min=1,max=10"`
	Address     *string                `json:"address" binding:"omitempty,max=200"`
	Rooms       *int                   `json:"rooms" binding:"omitempty,min=0"`
	Bathrooms   *int                   `json:"bathrooms" binding:"omitempty,min=0"`
	Residents   []HouseResidentRequest `json:"residents" binding:"omitempty,dive"`
	Dues        []HouseDueRequest      `json:"dues" binding:"omitempty,dive"`
}

// HouseResidentRequest is a resident nested in a house request
type HouseResidentRequest struct {
	Name       string     `json:"name" binding:"required,max=50"`
	Phone      string     `json:"phone" binding:"max=20"`
	Email      string     `json:"email" binding:"required,email,max=200"`
	MoveInDate *time.Time `json:"move_in_date"`
}

// HouseDueRequest is a due nested in a house request
type HouseDueRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	DueDate     *time.Time      `json:"due_date"`
	Description string          `json:"description" binding:"max=500"`
	Status      string          `json:"status"`
}

// HouseResponse represents a house in API responses
type HouseResponse struct {
	ID           uint               `json:"id"`
	HouseNumber  string             `json:"house_number"`
	Address      string             `json:"address"`
	Rooms        *int               `json:"rooms"`
	Bathrooms    *int               `json:"bathrooms"`
	RegisteredAt time.Time          `json:"registered_at"`
	Version      int                `json:"version"`
	Residents    []ResidentResponse `json:"residents"`
	Dues         []DueResponse      `json:"dues"`
}

// ToHouseResponse converts a domain House to HouseResponse.
// Residents and dues are nested one level; payments are not included.
func ToHouseResponse(h *community.House) HouseResponse {
	resp := HouseResponse{
		ID:           h.ID,
		HouseNumber:  h.HouseNumber,
		Address:      h.Address,
		Rooms:        h.Rooms,
		Bathrooms:    h.Bathrooms,
		RegisteredAt: h.RegisteredAt,
		Version:      h.Version,
		Residents:    make([]ResidentResponse, len(h.Residents)),
		Dues:         make([]DueResponse, len(h.Dues)),
	}
	for i := range h.Residents {
		resp.Residents[i] = ToResidentResponse(&h.Residents[i])
	}
	for i := range h.Dues {
		resp.Dues[i] = ToDueResponse(&h.Dues[i])
	}
	return resp
}

// ToHouseResponses converts a slice of domain Houses to HouseResponses
func ToHouseResponses(houses []community.House) []HouseResponse {
	responses := make([]HouseResponse, len(houses))
	for i := range houses {
		responses[i] = ToHouseResponse(&houses[i])
	}
	return responses
}

// =============================================================================
// Resident DTOs
// =============================================================================

// CreateResidentRequest represents a request to create a resident
type CreateResidentRequest struct {
	HouseID    uint       `json:"house_id" binding:"required"`
	Name       string     `json:"name" binding:"required,max=50"`
	Phone      string     `json:"phone" binding:"max=20"`
	Email      string     `json:"email" binding:"required,email,max=200"`
	MoveInDate *time.Time `json:"move_in_date"`
}

// UpdateResidentRequest represents a request to update a resident
type UpdateResidentRequest struct {
	HouseID    *uint      `json:"house_id" binding:"omitempty,min=1"`
	Name       *string    `json:"name" binding:"omitempty,min=1,max=50"`
	Phone      *string    `json:"phone" binding:"omitempty,max=20"`
	Email      *string    `json:"email" binding:"omitempty,email,max=200"`
	MoveInDate *time.Time `json:"move_in_date"`
}

// ResidentResponse represents a resident in API responses
type ResidentResponse struct {
	ID           uint      `json:"id"`
	HouseID      uint      `json:"house_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	MoveInDate   time.Time `json:"move_in_date"`
	RegisteredAt time.Time `json:"registered_at"`
	Version      int       `json:"version"`
}

// ToResidentResponse converts a domain Resident to ResidentResponse
func ToResidentResponse(r *community.Resident) ResidentResponse {
	return ResidentResponse{
		ID:           r.ID,
		HouseID:      r.HouseID,
		Name:         r.Name,
		Phone:        r.Phone,
		Email:        r.Email,
		MoveInDate:   r.MoveInDate,
		RegisteredAt: r.RegisteredAt,
		Version:      r.Version,
	}
}

// ToResidentResponses converts a slice of domain Residents to ResidentResponses
func ToResidentResponses(residents []community.Resident) []ResidentResponse {
	responses := make([]ResidentResponse, len(residents))
	for i := range residents {
		responses[i] = ToResidentResponse(&residents[i])
	}
	return responses
}

// =============================================================================
// Due DTOs
// =============================================================================

// CreateDueRequest represents a request to create a due
type CreateDueRequest struct {
	HouseID     uint            `json:"house_id" binding:"required"`
	ResidentID  *uint           `json:"resident_id" binding:"omitempty,min=1"`
	Name        string          `json:"name" binding:"required,max=100"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	DueDate     *time.Time      `json:"due_date"`
	Description string          `json:"description" binding:"max=500"`
	Status      string          `json:"status"`
}

// UpdateDueRequest represents a request to update a due
type UpdateDueRequest struct {
	HouseID     *uint            `json:"house_id" binding:"omitempty,min=1"`
	ResidentID  *uint            `json:"resident_id" binding:"omitempty,min=1"`
	Name        *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Amount      *decimal.Decimal `json:"amount"`
	DueDate     *time.Time       `json:"due_date"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	Status      *string          `json:"status"`
}

// DueResponse represents a due in API responses
type DueResponse struct {
	ID               uint            `json:"id"`
	HouseID          uint            `json:"house_id"`
	ResidentID       *uint           `json:"resident_id"`
	Name             string          `json:"name"`
	Amount           decimal.Decimal `json:"amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	DueDate          *time.Time      `json:"due_date"`
	Description      string          `json:"description"`
	Status           string          `json:"status"`
	RegisteredAt     time.Time       `json:"registered_at"`
	Version          int             `json:"version"`
}

// ToDueResponse converts a domain Due to DueResponse
func ToDueResponse(d *community.Due) DueResponse {
	return DueResponse{
		ID:               d.ID,
		HouseID:          d.HouseID,
		ResidentID:       d.ResidentID,
		Name:             d.Name,
		Amount:           d.Amount,
		RemainingBalance: d.RemainingBalance,
		DueDate:          d.DueDate,
		Description:      d.Description,
		Status:           d.Status.String(),
		RegisteredAt:     d.RegisteredAt,
		Version:          d.Version,
	}
}

// ToDueResponses converts a slice of domain Dues to DueResponses
func ToDueResponses(dues []community.Due) []DueResponse {
	responses := make([]DueResponse, len(dues))
	for i := range dues {
		responses[i] = ToDueResponse(&dues[i])
	}
	return responses
}

// =============================================================================
// Payment DTOs
// =============================================================================

// CreatePaymentRequest represents a request to record a payment against a due
type CreatePaymentRequest struct {
	DueID      uint            `json:"due_id" binding:"required"`
	HouseID    *uint           `json:"house_id" binding:"omitempty,min=1"`
	ResidentID *uint           `json:"resident_id" binding:"omitempty,min=1"`
	AmountPaid decimal.Decimal `json:"amount_paid" binding:"required"`
	PaidAt     *time.Time      `json:"paid_at"`
	Method     string          `json:"method" binding:"required"`
	Notes      string          `json:"notes" binding:"max=500"`
}

// UpdatePaymentRequest represents a request to update a payment
type UpdatePaymentRequest struct {
	DueID      *uint            `json:"due_id" binding:"omitempty,min=1"`
	HouseID    *uint            `json:"house_id" binding:"omitempty,min=1"`
	ResidentID *uint            `json:"resident_id" binding:"omitempty,min=1"`
	AmountPaid *decimal.Decimal `json:"amount_paid"`
	PaidAt     *time.Time       `json:"paid_at"`
	Method     *string          `json:"method"`
	Notes      *string          `json:"notes" binding:"omitempty,max=500"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID           uint            `json:"id"`
	DueID        uint            `json:"due_id"`
	HouseID      *uint           `json:"house_id"`
	ResidentID   *uint           `json:"resident_id"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	PaidAt       time.Time       `json:"paid_at"`
	Method       string          `json:"method"`
	Notes        string          `json:"notes"`
	RegisteredAt time.Time       `json:"registered_at"`
	Version      int             `json:"version"`
}

// ToPaymentResponse converts a domain Payment to PaymentResponse
func ToPaymentResponse(p *community.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		DueID:        p.DueID,
		HouseID:      p.HouseID,
		ResidentID:   p.ResidentID,
		AmountPaid:   p.AmountPaid,
		PaidAt:       p.PaidAt,
		Method:       p.Method.String(),
		Notes:        p.Notes,
		RegisteredAt: p.RegisteredAt,
		Version:      p.Version,
	}
}

// ToPaymentResponses converts a slice of domain Payments to PaymentResponses
func ToPaymentResponses(payments []community.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
