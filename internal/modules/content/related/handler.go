package related

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/promptfinder/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/items/:id/related", h.getRelated)
}

// GET /items/:id/related?limit=
func (h *Handler) getRelated(c *gin.Context) {
	limit := 0
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = v
	}

	items, err := h.svc.Related(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}
