package schedule

import (
	"github.com/gin-gonic/gin"

	"github.com/caremate/caremate-api/internal/handler"
	"github.com/caremate/caremate-api/internal/middleware"
	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/service/nurse"
	"github.com/caremate/caremate-api/internal/service/schedule"
	"github.com/caremate/caremate-api/pkg/httputil"
)

type Handler struct {
	service  *schedule.Service
	nurseSvc *nurse.Service
}

func NewHandler(service *schedule.Service, nurseSvc *nurse.Service) *Handler {
	return &Handler{service: service, nurseSvc: nurseSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	schedules := r.Group("/availability/schedule")
	{
		schedules.POST("", h.Create)
		schedules.GET("", h.List)
		schedules.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) currentNurse(c *gin.Context) (*model.Nurse, error) {
	return h.nurseSvc.GetByEmail(c.Request.Context(), middleware.EmailFromContext(c))
}

func (h *Handler) Create(c *gin.Context) {
	n, err := h.currentNurse(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, handler.BindingError(err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), n.ID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Schedule created successfully", created)
}

func (h *Handler) List(c *gin.Context) {
	n, err := h.currentNurse(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	schedules, err := h.service.List(c.Request.Context(), n.ID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Schedules retrieved", schedules)
}

func (h *Handler) Delete(c *gin.Context) {
	n, err := h.currentNurse(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	id, err := handler.PathID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, n.ID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Schedule deleted successfully", nil)
}
