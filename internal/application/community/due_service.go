package community

import (
	"context"
	"strings"
	"time"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/community"
	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DueService handles due-related business operations
type DueService struct {
	resource[community.Due, DueResponse]
	dueRepo      community.DueRepository
	houseRepo    community.HouseRepository
	residentRepo community.ResidentRepository
	txManager    shared.TransactionManager
	metrics      Metrics
}

// NewDueService creates a new DueService
func NewDueService(
	dueRepo community.DueRepository,
	houseRepo community.HouseRepository,
	residentRepo community.ResidentRepository,
	txManager shared.TransactionManager,
	metrics Metrics,
) *DueService {
	return &DueService{
		resource:     resource[community.Due, DueResponse]{repo: dueRepo, toResponse: ToDueResponse},
		dueRepo:      dueRepo,
		houseRepo:    houseRepo,
		residentRepo: residentRepo,
		txManager:    txManager,
		metrics:      metricsOrNoop(metrics),
	}
}

// List returns every due
func (s *DueService) List(ctx context.Context) ([]DueResponse, error) {
	return s.list(ctx)
}

// GetByID retrieves a due by ID
func (s *DueService) GetByID(ctx context.Context, id uint) (*DueResponse, error) {
	return s.get(ctx, id)
}

// Create creates a due for an existing house and, optionally, resident
func (s *DueService) Create(ctx context.Context, req CreateDueRequest) (*DueResponse, error) {
	due, err := newDue(req.HouseID, req.ResidentID, req.Name, req.Amount, req.DueDate, req.Description, req.Status)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := requireExists(ctx, s.houseRepo, "House", due.HouseID); err != nil {
			return err
		}
		if err := requireExistsIfSet(ctx, s.residentRepo, "Resident", due.ResidentID); err != nil {
			return err
		}
		return s.dueRepo.Create(ctx, due)
	})
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Due created",
		zap.Uint("due_id", due.ID),
		zap.Uint("house_id", due.HouseID),
		zap.String("amount", due.Amount.StringFixed(2)),
	)
	s.metrics.RecordCreated(ctx, "due")

	response := ToDueResponse(due)
	return &response, nil
}

// Update applies the fields present in req.
// A changed amount shifts the remaining balance; an explicit status wins over
// the status derived from the balance.
func (s *DueService) Update(ctx context.Context, id uint, req UpdateDueRequest) error {
	var status *community.DebtStatus
	if req.Status != nil {
		parsed, err := community.ParseDebtStatus(*req.Status)
		if err != nil {
			return err
		}
		status = &parsed
	}

	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		due, err := s.dueRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			if err := due.Rename(*req.Name); err != nil {
				return err
			}
		}
		if req.Description != nil {
			if err := due.Describe(*req.Description); err != nil {
				return err
			}
		}
		due.Schedule(req.DueDate)

		houseChanged := uintChanged(due.HouseID, req.HouseID)
		residentChanged := optionalUintChanged(due.ResidentID, req.ResidentID)
		if houseChanged || residentChanged {
			houseID, residentID := due.HouseID, due.ResidentID
			if req.HouseID != nil {
				houseID = *req.HouseID
			}
			if req.ResidentID != nil {
				residentID = req.ResidentID
			}
			if err := due.AssignTo(houseID, residentID); err != nil {
				return err
			}
		}
		if houseChanged {
			if err := requireExists(ctx, s.houseRepo, "House", due.HouseID); err != nil {
				return err
			}
		}
		if residentChanged {
			if err := requireExistsIfSet(ctx, s.residentRepo, "Resident", due.ResidentID); err != nil {
				return err
			}
		}

		if req.Amount != nil && !req.Amount.Equal(due.Amount) {
			if err := due.ChangeAmount(*req.Amount); err != nil {
				return err
			}
		}
		if status != nil {
			if err := due.SetStatus(*status); err != nil {
				return err
			}
		}

		if err := s.dueRepo.Update(ctx, due); err != nil {
			return err
		}

		logger.L(ctx).Info("Due updated",
			zap.Uint("due_id", id),
			zap.String("status", due.Status.String()),
			zap.String("remaining_balance", due.RemainingBalance.StringFixed(2)),
		)
		return nil
	})
}

// Delete removes a due together with its payments
func (s *DueService) Delete(ctx context.Context, id uint) error {
	if err := s.delete(ctx, id); err != nil {
		return err
	}
	logger.L(ctx).Info("Due deleted", zap.Uint("due_id", id))
	return nil
}

// newDue builds a due from request fields. An empty status keeps Pending.
func newDue(houseID uint, residentID *uint, name string, amount decimal.Decimal, dueDate *time.Time, description, status string) (*community.Due, error) {
	due, err := community.NewDue(houseID, residentID, name, amount)
	if err != nil {
		return nil, err
	}
	if err := due.Describe(description); err != nil {
		return nil, err
	}
	due.Schedule(dueDate)

	if strings.TrimSpace(status) != "" {
		parsed, err := community.ParseDebtStatus(status)
		if err != nil {
			return nil, err
		}
		if err := due.SetStatus(parsed); err != nil {
			return nil, err
		}
	}
	return due, nil
}
