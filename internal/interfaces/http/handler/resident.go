package handler

import (
	app "github.com/EliwtFdez/ClusterWeb/internal/application/community"
	"github.com/gin-gonic/gin"
)

// ResidentHandler handles resident-related API endpoints
type ResidentHandler struct {
	crud[app.CreateResidentRequest, app.UpdateResidentRequest, app.ResidentResponse]
}

// NewResidentHandler creates a new ResidentHandler
func NewResidentHandler(service crudService[app.CreateResidentRequest, app.UpdateResidentRequest, app.ResidentResponse]) *ResidentHandler {
	return &ResidentHandler{crud: crud[app.CreateResidentRequest, app.UpdateResidentRequest, app.ResidentResponse]{
		service: service,
		idOf:    func(r *app.ResidentResponse) uint { return r.ID },
	}}
}

// List godoc
// @ID           listResidents
// @Summary      List residents
// @Tags         residents
// @Produce      json
// @Success      200 {array}  app.ResidentResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /residents [get]
func (h *ResidentHandler) List(c *gin.Context) {
	h.list(c)
}

// GetByID godoc
// @ID           getResidentById
// @Summary      Get resident by ID
// @Tags         residents
// @Produce      json
// @Param        id  path     int true "Resident ID"
// @Success      200 {object} app.ResidentResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /residents/{id} [get]
func (h *ResidentHandler) GetByID(c *gin.Context) {
	h.get(c)
}

// Create godoc
// @ID           createResident
// @Summary      Create a resident
// @Tags         residents
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string                    false "Idempotency key"
// @Param        request         body   app.CreateResidentRequest true  "Resident creation request"
// @Success      201 {object} app.ResidentResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /residents [post]
func (h *ResidentHandler) Create(c *gin.Context) {
	h.create(c)
}

// Update godoc
// @ID           updateResident
// @Summary      Update a resident
// @Tags         residents
// @Accept       json
// @Param        id      path int                       true "Resident ID"
// @Param        request body app.UpdateResidentRequest true "Resident update request"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /residents/{id} [put]
func (h *ResidentHandler) Update(c *gin.Context) {
	h.update(c)
}

// Delete godoc
// @ID           deleteResident
// @Summary      Delete a resident
// @Description  Fails with 409 while dues are assigned to the resident
// @Tags         residents
// @Param        id path int true "Resident ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /residents/{id} [delete]
func (h *ResidentHandler) Delete(c *gin.Context) {
	h.delete(c)
}
