package community

import (
	"context"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
)

// HouseRepository defines the interface for house persistence.
// FindAll and FindByID load Residents and Dues.
type HouseRepository interface {
	shared.Repository[House]

	// ExistsByHouseNumber checks if another house uses the number.
	// excludeID skips one house, 0 checks all.
	ExistsByHouseNumber(ctx context.Context, houseNumber string, excludeID uint) (bool, error)
}

// ResidentRepository defines the interface for resident persistence
type ResidentRepository interface {
	shared.Repository[Resident]

	// ExistsByEmail checks if another resident uses the email (case-insensitive)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)

	// DeleteByHouse removes every resident of a house
	DeleteByHouse(ctx context.Context, houseID uint) error
}

// DueRepository defines the interface for due persistence
type DueRepository interface {
	shared.Repository[Due]

	// DeleteByHouse removes every due of a house, with their payments
	DeleteByHouse(ctx context.Context, houseID uint) error
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	shared.Repository[Payment]
}
