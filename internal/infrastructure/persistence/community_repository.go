package persistence

import (
	"context"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/community"
	"gorm.io/gorm"
)

// GormHouseRepository implements community.HouseRepository
type GormHouseRepository struct {
	*GormRepository[community.House, *community.House]
}

// NewGormHouseRepository creates a house repository that loads residents and dues
func NewGormHouseRepository(db *gorm.DB) *GormHouseRepository {
	return &GormHouseRepository{
		GormRepository: NewGormRepository[community.House, *community.House](db, "House", "Residents", "Dues"),
	}
}

// ExistsByHouseNumber checks if another house uses the number
func (r *GormHouseRepository) ExistsByHouseNumber(ctx context.Context, houseNumber string, excludeID uint) (bool, error) {
	var count int64
	query := r.conn(ctx).Model(&community.House{}).Where("house_number = ?", houseNumber)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, r.translate(err)
	}
	return count > 0, nil
}

// GormResidentRepository implements community.ResidentRepository
type GormResidentRepository struct {
	*GormRepository[community.Resident, *community.Resident]
}

// NewGormResidentRepository creates a new GormResidentRepository
func NewGormResidentRepository(db *gorm.DB) *GormResidentRepository {
	return &GormResidentRepository{
		GormRepository: NewGormRepository[community.Resident, *community.Resident](db, "Resident"),
	}
}

// ExistsByEmail checks if another resident uses the email, ignoring case
func (r *GormResidentRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	query := r.conn(ctx).Model(&community.Resident{}).Where("LOWER(email) = LOWER(?)", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, r.translate(err)
	}
	return count > 0, nil
}

// DeleteByHouse removes every resident of a house
func (r *GormResidentRepository) DeleteByHouse(ctx context.Context, houseID uint) error {
	if err := r.conn(ctx).Where("house_id = ?", houseID).Delete(&community.Resident{}).Error; err != nil {
		return r.translate(err)
	}
	return nil
}

// GormDueRepository implements community.DueRepository
type GormDueRepository struct {
	*GormRepository[community.Due, *community.Due]
}

// NewGormDueRepository creates a new GormDueRepository
func NewGormDueRepository(db *gorm.DB) *GormDueRepository {
	return &GormDueRepository{
		GormRepository: NewGormRepository[community.Due, *community.Due](db, "Due"),
	}
}

// DeleteByHouse removes every due of a house; their payments cascade
func (r *GormDueRepository) DeleteByHouse(ctx context.Context, houseID uint) error {
	if err := r.conn(ctx).Where("house_id = ?", houseID).Delete(&community.Due{}).Error; err != nil {
		return r.translate(err)
	}
	return nil
}

// GormPaymentRepository implements community.PaymentRepository
type GormPaymentRepository struct {
	*GormRepository[community.Payment, *community.Payment]
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{
		GormRepository: NewGormRepository[community.Payment, *community.Payment](db, "Payment"),
	}
}

// Compile-time interface checks
var (
	_ community.HouseRepository    = (*GormHouseRepository)(nil)
	_ community.ResidentRepository = (*GormResidentRepository)(nil)
	_ community.DueRepository      = (*GormDueRepository)(nil)
	_ community.PaymentRepository  = (*GormPaymentRepository)(nil)
)
