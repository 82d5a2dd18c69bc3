package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
)

// crudService is the shape shared by every community service
type crudService[C any, U any, R any] interface {
	List(ctx context.Context) ([]R, error)
	GetByID(ctx context.Context, id uint) (*R, error)
	Create(ctx context.Context, req C) (*R, error)
	Update(ctx context.Context, id uint, req U) error
	Delete(ctx context.Context, id uint) error
}

// crud turns a crudService into gin handlers.
// idOf reads the identifier used for the Location header.
type crud[C any, U any, R any] struct {
	BaseHandler
	service crudService[C, U, R]
	idOf    func(*R) uint
}

func (h *crud[C, U, R]) list(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, items)
}

func (h *crud[C, U, R]) get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

func (h *crud[C, U, R]) create(c *gin.Context) {
	var req C
	if !h.bindJSON(c, &req) {
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, c.FullPath()+"/"+strconv.FormatUint(uint64(h.idOf(item)), 10), item)
}

func (h *crud[C, U, R]) update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req U
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *crud[C, U, R]) delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
