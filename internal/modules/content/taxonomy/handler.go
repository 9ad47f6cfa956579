package taxonomy

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptfinder/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	tax := rg.Group("/taxonomy")
	tax.GET("/categories", h.listCategories)
	tax.GET("/descriptors", h.listDescriptors)

	authed := tax.Group("", authMW)
	authed.POST("/refresh", h.refresh)
}

func (h *Handler) listCategories(c *gin.Context) {
	response.OK(c, gin.H{"data": h.svc.Categories()})
}

func (h *Handler) listDescriptors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data":  h.svc.Descriptors(),
		"types": h.svc.DescriptorNamesByType(),
	})
}

func (h *Handler) refresh(c *gin.Context) {
	if err := h.svc.Refresh(c.Request.Context()); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
