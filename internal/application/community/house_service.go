package community

import (
	"context"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/community"
	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// HouseService handles house-related business operations
type HouseService struct {
	resource[community.House, HouseResponse]
	houseRepo    community.HouseRepository
	residentRepo community.ResidentRepository
	dueRepo      community.DueRepository
	txManager    shared.TransactionManager
	metrics      Metrics
}

// NewHouseService creates a new HouseService
func NewHouseService(
	houseRepo community.HouseRepository,
	residentRepo community.ResidentRepository,
	dueRepo community.DueRepository,
	txManager shared.TransactionManager,
	metrics Metrics,
) *HouseService {
	return &HouseService{
		resource:     resource[community.House, HouseResponse]{repo: houseRepo, toResponse: ToHouseResponse},
		houseRepo:    houseRepo,
		residentRepo: residentRepo,
		dueRepo:      dueRepo,
		txManager:    txManager,
		metrics:      metricsOrNoop(metrics),
	}
}

// List returns every house with its residents and dues
func (s *HouseService) List(ctx context.Context) ([]HouseResponse, error) {
	return s.list(ctx)
}

// GetByID retrieves a house with its residents and dues
func (s *HouseService) GetByID(ctx context.Context, id uint) (*HouseResponse, error) {
	return s.get(ctx, id)
}

// Create creates a house together with any nested residents and dues.
// Either every row is written or none is.
func (s *HouseService) Create(ctx context.Context, req CreateHouseRequest) (*HouseResponse, error) {
	house, err := community.NewHouse(req.HouseNumber, req.Address, req.Rooms, req.Bathrooms)
	if err != nil {
		return nil, err
	}

	var created *community.House
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureHouseNumberAvailable(ctx, house.HouseNumber, 0); err != nil {
			return err
		}
		if err := s.houseRepo.Create(ctx, house); err != nil {
			return err
		}
		if err := s.addChildren(ctx, house.ID, req.Residents, req.Dues); err != nil {
			return err
		}

		created, err = s.houseRepo.FindByID(ctx, house.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("House created",
		zap.Uint("house_id", created.ID),
		zap.String("house_number", created.HouseNumber),
		zap.Int("residents", len(created.Residents)),
		zap.Int("dues", len(created.Dues)),
	)
	s.metrics.RecordCreated(ctx, "house")

	response := ToHouseResponse(created)
	return &response, nil
}

// Update applies the fields present in req.
// Nested residents or dues, when given, replace the existing collection.
func (s *HouseService) Update(ctx context.Context, id uint, req UpdateHouseRequest) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		house, err := s.houseRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.HouseNumber != nil && *req.HouseNumber != house.HouseNumber {
			if err := house.Renumber(*req.HouseNumber); err != nil {
				return err
			}
			if err := s.ensureHouseNumberAvailable(ctx, house.HouseNumber, house.ID); err != nil {
				return err
			}
		}
		if req.Address != nil {
			if err := house.SetAddress(*req.Address); err != nil {
				return err
			}
		}
		house.SetLayout(req.Rooms, req.Bathrooms)

		if err := s.houseRepo.Update(ctx, house); err != nil {
			return err
		}

		// Dues may reference residents, so they go first
		if req.Dues != nil {
			if err := s.dueRepo.DeleteByHouse(ctx, id); err != nil {
				return err
			}
		}
		if req.Residents != nil {
			if err := s.residentRepo.DeleteByHouse(ctx, id); err != nil {
				return err
			}
		}
		if err := s.addChildren(ctx, id, req.Residents, req.Dues); err != nil {
			return err
		}

		logger.L(ctx).Info("House updated",
			zap.Uint("house_id", id),
			zap.Bool("residents_replaced", req.Residents != nil),
			zap.Bool("dues_replaced", req.Dues != nil),
		)
		return nil
	})
}

// Delete removes a house. Fails with a conflict while residents or dues reference it.
func (s *HouseService) Delete(ctx context.Context, id uint) error {
	if err := s.delete(ctx, id); err != nil {
		return err
	}
	logger.L(ctx).Info("House deleted", zap.Uint("house_id", id))
	return nil
}

func (s *HouseService) ensureHouseNumberAvailable(ctx context.Context, houseNumber string, excludeID uint) error {
	exists, err := s.houseRepo.ExistsByHouseNumber(ctx, houseNumber, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "House with this house number already exists")
	}
	return nil
}

func (s *HouseService) addChildren(ctx context.Context, houseID uint, residents []HouseResidentRequest, dues []HouseDueRequest) error {
	for _, r := range residents {
		resident, err := newResident(houseID, r.Name, r.Phone, r.Email, r.MoveInDate)
		if err != nil {
			return err
		}
		if err := ensureEmailAvailable(ctx, s.residentRepo, resident.Email, 0); err != nil {
			return err
		}
		if err := s.residentRepo.Create(ctx, resident); err != nil {
			return err
		}
	}

	for _, d := range dues {
		due, err := newDue(houseID, nil, d.Name, d.Amount, d.DueDate, d.Description, d.Status)
		if err != nil {
			return err
		}
		if err := s.dueRepo.Create(ctx, due); err != nil {
			return err
		}
	}
	return nil
}
