package handler

import (
	app "github.com/EliwtFdez/ClusterWeb/internal/application/community"
	"github.com/gin-gonic/gin"
)

// HouseHandler handles house-related API endpoints
type HouseHandler struct {
	crud[app.CreateHouseRequest, app.UpdateHouseRequest, app.HouseResponse]
}

// NewHouseHandler creates a new HouseHandler
func NewHouseHandler(service crudService[app.CreateHouseRequest, app.UpdateHouseRequest, app.HouseResponse]) *HouseHandler {
	return &HouseHandler{crud: crud[app.CreateHouseRequest, app.UpdateHouseRequest, app.HouseResponse]{
		service: service,
		idOf:    func(h *app.HouseResponse) uint { return h.ID },
	}}
}

// List godoc
// @ID           listHouses
// @Summary      List houses
// @Description  Returns every house with its residents and dues
// @Tags         houses
// @Produce      json
// @Success      200 {array}  app.HouseResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /houses [get]
func (h *HouseHandler) List(c *gin.Context) {
	h.list(c)
}

// GetByID godoc
// @ID           getHouseById
// @Summary      Get house by ID
// @Tags         houses
// @Produce      json
// @Param        id  path     int true "House ID"
// @Success      200 {object} app.HouseResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /houses/{id} [get]
func (h *HouseHandler) GetByID(c *gin.Context) {
	h.get(c)
}

// Create godoc
// @ID           createHouse
// @Summary      Create a house
// @Description  Creates a house, optionally with residents and dues in the same request
// @Tags         houses
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string                 false "Idempotency key"
// @Param        request         body   app.CreateHouseRequest true  "House creation request"
// @Success      201 {object} app.HouseResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /houses [post]
func (h *HouseHandler) Create(c *gin.Context) {
	h.create(c)
}

// Update godoc
// @ID           updateHouse
// @Summary      Update a house
// @Description  Partial update; a residents or dues list replaces the existing collection
// @Tags         houses
// @Accept       json
// @Param        id      path int                    true "House ID"
// @Param        request body app.UpdateHouseRequest true "House update request"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /houses/{id} [put]
func (h *HouseHandler) Update(c *gin.Context) {
	h.update(c)
}

// Delete godoc
// @ID           deleteHouse
// @Summary      Delete a house
// @Description  Fails with 409 while residents or dues still reference the house
// @Tags         houses
// @Param        id path int true "House ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /houses/{id} [delete]
func (h *HouseHandler) Delete(c *gin.Context) {
	h.delete(c)
}
