package community

import (
	"context"
	"time"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/community"
	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ResidentService handles resident-related business operations
type ResidentService struct {
	resource[community.Resident, ResidentResponse]
	residentRepo community.ResidentRepository
	houseRepo    community.HouseRepository
	txManager    shared.TransactionManager
	metrics      Metrics
}

// NewResidentService creates a new ResidentService
func NewResidentService(
	residentRepo community.ResidentRepository,
	houseRepo community.HouseRepository,
	txManager shared.TransactionManager,
	metrics Metrics,
) *ResidentService {
	return &ResidentService{
		resource:     resource[community.Resident, ResidentResponse]{repo: residentRepo, toResponse: ToResidentResponse},
		residentRepo: residentRepo,
		houseRepo:    houseRepo,
		txManager:    txManager,
		metrics:      metricsOrNoop(metrics),
	}
}

// List returns every resident
func (s *ResidentService) List(ctx context.Context) ([]ResidentResponse, error) {
	return s.list(ctx)
}

// GetByID retrieves a resident by ID
func (s *ResidentService) GetByID(ctx context.Context, id uint) (*ResidentResponse, error) {
	return s.get(ctx, id)
}

// Create creates a resident in an existing house
func (s *ResidentService) Create(ctx context.Context, req CreateResidentRequest) (*ResidentResponse, error) {
	resident, err := newResident(req.HouseID, req.Name, req.Phone, req.Email, req.MoveInDate)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := requireExists(ctx, s.houseRepo, "House", resident.HouseID); err != nil {
			return err
		}
		if err := ensureEmailAvailable(ctx, s.residentRepo, resident.Email, 0); err != nil {
			return err
		}
		return s.residentRepo.Create(ctx, resident)
	})
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Resident created",
		zap.Uint("resident_id", resident.ID),
		zap.Uint("house_id", resident.HouseID),
	)
	s.metrics.RecordCreated(ctx, "resident")

	response := ToResidentResponse(resident)
	return &response, nil
}

// Update applies the fields present in req. A new house is checked for existence.
func (s *ResidentService) Update(ctx context.Context, id uint, req UpdateResidentRequest) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		resident, err := s.residentRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			if err := resident.Rename(*req.Name); err != nil {
				return err
			}
		}

		previousEmail := resident.Email
		if err := resident.SetContact(req.Phone, req.Email); err != nil {
			return err
		}
		if resident.Email != previousEmail {
			if err := ensureEmailAvailable(ctx, s.residentRepo, resident.Email, resident.ID); err != nil {
				return err
			}
		}

		if req.MoveInDate != nil {
			resident.MoveIn(*req.MoveInDate)
		}

		if uintChanged(resident.HouseID, req.HouseID) {
			if err := resident.Relocate(*req.HouseID); err != nil {
				return err
			}
			if err := requireExists(ctx, s.houseRepo, "House", resident.HouseID); err != nil {
				return err
			}
		}

		if err := s.residentRepo.Update(ctx, resident); err != nil {
			return err
		}

		logger.L(ctx).Info("Resident updated", zap.Uint("resident_id", id))
		return nil
	})
}

// Delete removes a resident. Fails with a conflict while dues reference it.
func (s *ResidentService) Delete(ctx context.Context, id uint) error {
	if err := s.delete(ctx, id); err != nil {
		return err
	}
	logger.L(ctx).Info("Resident deleted", zap.Uint("resident_id", id))
	return nil
}

func newResident(houseID uint, name, phone, email string, moveIn *time.Time) (*community.Resident, error) {
	var at time.Time
	if moveIn != nil {
		at = *moveIn
	}
	return community.NewResident(houseID, name, phone, email, at)
}

func ensureEmailAvailable(ctx context.Context, repo community.ResidentRepository, email string, excludeID uint) error {
	exists, err := repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Resident with this email already exists")
	}
	return nil
}
