package enrichment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/promptfinder/core/internal/pkg/response"
	"github.com/promptfinder/core/internal/pkg/taskqueue"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/enrichment", authMW)
	g.POST("/items/:id/pass1", h.triggerPass1)
	g.POST("/items/:id/pass2", h.triggerPass2)
	g.GET("/tasks", h.listTasks)
	g.GET("/tasks/:id", h.getTask)
}

// POST /enrichment/items/:id/pass1
func (h *Handler) triggerPass1(c *gin.Context) {
	itemID := c.Param("id")
	task, err := h.svc.EnqueuePass1(c.Request.Context(), itemID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"task_id": task.ID, "status": task.Status})
}

// POST /enrichment/items/:id/pass2
func (h *Handler) triggerPass2(c *gin.Context) {
	itemID := c.Param("id")
	queued := h.svc.QueuePass2(c.Request.Context(), itemID)
	c.JSON(http.StatusAccepted, gin.H{"queued": queued})
}

// GET /enrichment/tasks?page=&size=&type=&status=
func (h *Handler) listTasks(c *gin.Context) {
	page, size := paginationParams(c)

	var taskType *string
	if t := c.Query("type"); t != "" {
		taskType = &t
	}
	var status *taskqueue.TaskStatus
	if st := c.Query("status"); st != "" {
		v := taskqueue.TaskStatus(st)
		status = &v
	}

	tasks, total, err := h.svc.tasks.List(c.Request.Context(), page, size, taskType, status)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	totalPage := int((total + int64(size) - 1) / int64(size))
	response.Paged(c, tasks, response.Pagination{
		Total:       total,
		CurrentPage: page,
		TotalPage:   totalPage,
		Size:        size,
		HasNextPage: page < totalPage,
	})
}

// GET /enrichment/tasks/:id
func (h *Handler) getTask(c *gin.Context) {
	task, err := h.svc.tasks.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if task == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, task)
}

func paginationParams(c *gin.Context) (page, size int) {
	page, size = 1, 20
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 && v <= 100 {
		size = v
	}
	return page, size
}
