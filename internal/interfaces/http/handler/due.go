package handler

import (
	app "github.com/EliwtFdez/ClusterWeb/internal/application/community"
	"github.com/gin-gonic/gin"
)

// DueHandler handles due-related API endpoints
type DueHandler struct {
	crud[app.CreateDueRequest, app.UpdateDueRequest, app.DueResponse]
}

// NewDueHandler creates a new DueHandler
func NewDueHandler(service crudService[app.CreateDueRequest, app.UpdateDueRequest, app.DueResponse]) *DueHandler {
	return &DueHandler{crud: crud[app.CreateDueRequest, app.UpdateDueRequest, app.DueResponse]{
		service: service,
		idOf:    func(d *app.DueResponse) uint { return d.ID },
	}}
}

// List godoc
// @ID           listDues
// @Summary      List dues
// @Tags         dues
// @Produce      json
// @Success      200 {array}  app.DueResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /dues [get]
func (h *DueHandler) List(c *gin.Context) {
	h.list(c)
}

// GetByID godoc
// @ID           getDueById
// @Summary      Get due by ID
// @Tags         dues
// @Produce      json
// @Param        id  path     int true "Due ID"
// @Success      200 {object} app.DueResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /dues/{id} [get]
func (h *DueHandler) GetByID(c *gin.Context) {
	h.get(c)
}

// Create godoc
// @ID           createDue
// @Summary      Create a due
// @Description  The remaining balance starts at the full amount
// @Tags         dues
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string               false "Idempotency key"
// @Param        request         body   app.CreateDueRequest true  "Due creation request"
// @Success      201 {object} app.DueResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /dues [post]
func (h *DueHandler) Create(c *gin.Context) {
	h.create(c)
}

// Update godoc
// @ID           updateDue
// @Summary      Update a due
// @Description  Changing the amount shifts the remaining balance by the same delta
// @Tags         dues
// @Accept       json
// @Param        id      path int                  true "Due ID"
// @Param        request body app.UpdateDueRequest true "Due update request"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /dues/{id} [put]
func (h *DueHandler) Update(c *gin.Context) {
	h.update(c)
}

// Delete godoc
// @ID           deleteDue
// @Summary      Delete a due
// @Description  Payments recorded against the due are removed with it
// @Tags         dues
// @Param        id path int true "Due ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Router       /dues/{id} [delete]
func (h *DueHandler) Delete(c *gin.Context) {
	h.delete(c)
}
