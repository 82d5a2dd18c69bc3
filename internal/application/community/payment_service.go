package community

import (
	"context"
	"time"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/community"
	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService records payments and keeps the paid due's balance in step.
// Every write touches the payment and its due in one transaction.
type PaymentService struct {
	resource[community.Payment, PaymentResponse]
	paymentRepo  community.PaymentRepository
	dueRepo      community.DueRepository
	houseRepo    community.HouseRepository
	residentRepo community.ResidentRepository
	txManager    shared.TransactionManager
	metrics      Metrics
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo community.PaymentRepository,
	dueRepo community.DueRepository,
	houseRepo community.HouseRepository,
	residentRepo community.ResidentRepository,
	txManager shared.TransactionManager,
	metrics Metrics,
) *PaymentService {
	return &PaymentService{
		resource:     resource[community.Payment, PaymentResponse]{repo: paymentRepo, toResponse: ToPaymentResponse},
		paymentRepo:  paymentRepo,
		dueRepo:      dueRepo,
		houseRepo:    houseRepo,
		residentRepo: residentRepo,
		txManager:    txManager,
		metrics:      metricsOrNoop(metrics),
	}
}

// List returns every payment
func (s *PaymentService) List(ctx context.Context) ([]PaymentResponse, error) {
	return s.list(ctx)
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, id uint) (*PaymentResponse, error) {
	return s.get(ctx, id)
}

// Create records a payment and deducts it from the due's remaining balance
func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	method, err := community.ParsePaymentMethod(req.Method)
	if err != nil {
		return nil, err
	}

	var paidAt time.Time
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}
	payment, err := community.NewPayment(req.DueID, req.AmountPaid, method, paidAt)
	if err != nil {
		return nil, err
	}
	if err := payment.Annotate(req.Notes); err != nil {
		return nil, err
	}
	if err := payment.Attribute(req.HouseID, req.ResidentID); err != nil {
		return nil, err
	}

	var settled bool
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkAttribution(ctx, payment.HouseID, payment.ResidentID); err != nil {
			return err
		}

		due, err := s.dueRepo.FindByID(ctx, payment.DueID)
		if err != nil {
			return err
		}
		if err := due.ApplyPayment(payment.AmountPaid); err != nil {
			return err
		}
		if err := s.dueRepo.Update(ctx, due); err != nil {
			return err
		}
		settled = due.IsSettled()

		return s.paymentRepo.Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Payment recorded",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("due_id", payment.DueID),
		zap.String("amount_paid", payment.AmountPaid.StringFixed(2)),
		zap.String("method", payment.Method.String()),
		zap.Bool("due_settled", settled),
	)
	s.metrics.RecordCreated(ctx, "payment")
	s.metrics.RecordPayment(ctx, payment.Method.String(), payment.AmountPaid)
	if settled {
		s.metrics.RecordDueSettled(ctx)
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// Update applies the fields present in req. When the amount or due changes the
// old application is reverted and the new one applied.
func (s *PaymentService) Update(ctx context.Context, id uint, req UpdatePaymentRequest) error {
	var method *community.PaymentMethod
	if req.Method != nil {
		parsed, err := community.ParsePaymentMethod(*req.Method)
		if err != nil {
			return err
		}
		method = &parsed
	}

	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		payment, err := s.paymentRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		previousDueID, previousAmount := payment.DueID, payment.AmountPaid

		if req.DueID != nil {
			if err := payment.Reassign(*req.DueID); err != nil {
				return err
			}
		}
		if req.AmountPaid != nil {
			if err := payment.ChangeAmount(*req.AmountPaid); err != nil {
				return err
			}
		}
		if method != nil {
			if err := payment.SetMethod(*method); err != nil {
				return err
			}
		}
		if req.Notes != nil {
			if err := payment.Annotate(*req.Notes); err != nil {
				return err
			}
		}
		if req.PaidAt != nil {
			payment.Reschedule(*req.PaidAt)
		}

		houseChanged := optionalUintChanged(payment.HouseID, req.HouseID)
		residentChanged := optionalUintChanged(payment.ResidentID, req.ResidentID)
		if err := payment.Attribute(req.HouseID, req.ResidentID); err != nil {
			return err
		}
		if houseChanged {
			if err := requireExistsIfSet(ctx, s.houseRepo, "House", payment.HouseID); err != nil {
				return err
			}
		}
		if residentChanged {
			if err := requireExistsIfSet(ctx, s.residentRepo, "Resident", payment.ResidentID); err != nil {
				return err
			}
		}

		if payment.DueID != previousDueID || !payment.AmountPaid.Equal(previousAmount) {
			if err := s.reapply(ctx, previousDueID, previousAmount, payment); err != nil {
				return err
			}
		}

		if err := s.paymentRepo.Update(ctx, payment); err != nil {
			return err
		}

		logger.L(ctx).Info("Payment updated",
			zap.Uint("payment_id", id),
			zap.Uint("due_id", payment.DueID),
			zap.String("amount_paid", payment.AmountPaid.StringFixed(2)),
		)
		return nil
	})
}

// Delete removes a payment and gives its amount back to the due
func (s *PaymentService) Delete(ctx context.Context, id uint) error {
	var payment *community.Payment
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		payment, err = s.paymentRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		due, err := s.dueRepo.FindByID(ctx, payment.DueID)
		if err != nil {
			return err
		}
		due.RevertPayment(payment.AmountPaid)
		if err := s.dueRepo.Update(ctx, due); err != nil {
			return err
		}

		return s.paymentRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	logger.L(ctx).Info("Payment deleted",
		zap.Uint("payment_id", id),
		zap.Uint("due_id", payment.DueID),
	)
	s.metrics.RecordPaymentReverted(ctx, payment.Method.String(), payment.AmountPaid)
	return nil
}

// reapply reverts a payment's previous application and applies its current one
func (s *PaymentService) reapply(ctx context.Context, previousDueID uint, previousAmount decimal.Decimal, payment *community.Payment) error {
	previous, err := s.dueRepo.FindByID(ctx, previousDueID)
	if err != nil {
		return err
	}
	previous.RevertPayment(previousAmount)

	target := previous
	if payment.DueID != previousDueID {
		if err := s.dueRepo.Update(ctx, previous); err != nil {
			return err
		}
		target, err = s.dueRepo.FindByID(ctx, payment.DueID)
		if err != nil {
			return err
		}
	}

	if err := target.ApplyPayment(payment.AmountPaid); err != nil {
		return err
	}
	return s.dueRepo.Update(ctx, target)
}

func (s *PaymentService) checkAttribution(ctx context.Context, houseID, residentID *uint) error {
	if err := requireExistsIfSet(ctx, s.houseRepo, "House", houseID); err != nil {
		return err
	}
	return requireExistsIfSet(ctx, s.residentRepo, "Resident", residentID)
}
