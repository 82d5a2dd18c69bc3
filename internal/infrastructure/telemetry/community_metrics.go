package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

// CommunityMetrics counts business events of the community services
type CommunityMetrics struct {
	createdTotal         *Counter
	paymentTotal         *Counter
	paymentAmount        metric.Float64Counter
	paymentRevertedTotal *Counter
	paymentRevertedAmt   metric.Float64Counter
	dueSettledTotal      *Counter
}

// NewCommunityMetrics creates the instruments on meter
func NewCommunityMetrics(meter metric.Meter) (*CommunityMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &CommunityMetrics{}
	var err error

	if m.createdTotal, err = NewCounter(meter,
		"clusterweb_resource_created_total",
		"Houses, residents, dues and payments created",
		"{records}",
	); err != nil {
		return nil, err
	}
	if m.paymentTotal, err = NewCounter(meter,
		"clusterweb_payment_total",
		"Payments applied to dues",
		"{payments}",
	); err != nil {
		return nil, err
	}
	if m.paymentAmount, err = meter.Float64Counter("clusterweb_payment_amount_total",
		metric.WithDescription("Sum of applied payment amounts"),
		metric.WithUnit("{currency}"),
	); err != nil {
		return nil, err
	}
	if m.paymentRevertedTotal, err = NewCounter(meter,
		"clusterweb_payment_reverted_total",
		"Payments deleted and returned to their due",
		"{payments}",
	); err != nil {
		return nil, err
	}
	if m.paymentRevertedAmt, err = meter.Float64Counter("clusterweb_payment_reverted_amount_total",
		metric.WithDescription("Sum of reverted payment amounts"),
		metric.WithUnit("{currency}"),
	); err != nil {
		return nil, err
	}
	if m.dueSettledTotal, err = NewCounter(meter,
		"clusterweb_due_settled_total",
		"Dues whose remaining balance reached zero",
		"{dues}",
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordCreated counts a created record of the given resource
func (m *CommunityMetrics) RecordCreated(ctx context.Context, resource string) {
	m.createdTotal.Inc(ctx, AttrResource.String(resource))
}

// RecordPayment counts an applied payment and its amount
func (m *CommunityMetrics) RecordPayment(ctx context.Context, method string, amount decimal.Decimal) {
	m.paymentTotal.Inc(ctx, AttrPaymentMethod.String(method))
	m.paymentAmount.Add(ctx, amount.InexactFloat64(), metric.WithAttributes(AttrPaymentMethod.String(method)))
}

// RecordPaymentReverted counts a deleted payment and its amount
func (m *CommunityMetrics) RecordPaymentReverted(ctx context.Context, method string, amount decimal.Decimal) {
	m.paymentRevertedTotal.Inc(ctx, AttrPaymentMethod.String(method))
	m.paymentRevertedAmt.Add(ctx, amount.InexactFloat64(), metric.WithAttributes(AttrPaymentMethod.String(method)))
}

// RecordDueSettled counts a due that became fully paid
func (m *CommunityMetrics) RecordDueSettled(ctx context.Context) {
	m.dueSettledTotal.Inc(ctx)
}
