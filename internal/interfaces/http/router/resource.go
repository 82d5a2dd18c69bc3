package router

import (
	"slices"

	"github.com/gin-gonic/gin"
)

// ResourceHandler serves the five CRUD endpoints of one resource
type ResourceHandler interface {
	List(c *gin.Context)
	GetByID(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// NewResourceGroup maps a ResourceHandler onto prefix and prefix/:id.
// onCreate runs before Create only, e.g. idempotency checks.
func NewResourceGroup(name, prefix string, h ResourceHandler, onCreate ...gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup(name, prefix)
	g.GET("", h.List)
	g.POST("", append(slices.Clip(onCreate), h.Create)...)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return g
}
