package handler

import (
	app "github.com/EliwtFdez/ClusterWeb/internal/application/community"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment-related API endpoints
type PaymentHandler struct {
	crud[app.CreatePaymentRequest, app.UpdatePaymentRequest, app.PaymentResponse]
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(service crudService[app.CreatePaymentRequest, app.UpdatePaymentRequest, app.PaymentResponse]) *PaymentHandler {
	return &PaymentHandler{crud: crud[app.CreatePaymentRequest, app.UpdatePaymentRequest, app.PaymentResponse]{
		service: service,
		idOf:    func(p *app.PaymentResponse) uint { return p.ID },
	}}
}

// List godoc
// @ID           listPayments
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Success      200 {array}  app.PaymentResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	h.list(c)
}

// GetByID godoc
// @ID           getPaymentById
// @Summary      Get payment by ID
// @Tags         payments
// @Produce      json
// @Param        id  path     int true "Payment ID"
// @Success      200 {object} app.PaymentResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	h.get(c)
}

// Create godoc
// @ID           createPayment
// @Summary      Record a payment
// @Description  Reduces the due's remaining balance; overpayment is rejected
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string                   false "Idempotency key"
// @Param        request         body   app.CreatePaymentRequest true  "Payment request"
// @Success      201 {object} app.PaymentResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	h.create(c)
}

// Update godoc
// @ID           updatePayment
// @Summary      Update a payment
// @Description  The old amount is returned to its due before the new one is applied
// @Tags         payments
// @Accept       json
// @Param        id      path int                      true "Payment ID"
// @Param        request body app.UpdatePaymentRequest true "Payment update request"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /payments/{id} [put]
func (h *PaymentHandler) Update(c *gin.Context) {
	h.update(c)
}

// Delete godoc
// @ID           deletePayment
// @Summary      Delete a payment
// @Description  The paid amount is returned to the due's remaining balance
// @Tags         payments
// @Param        id path int true "Payment ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /payments/{id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
	h.delete(c)
}
