package earnings

import (
	"github.com/gin-gonic/gin"

	"github.com/caremate/caremate-api/internal/middleware"
	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/service/earnings"
	"github.com/caremate/caremate-api/internal/service/nurse"
	"github.com/caremate/caremate-api/pkg/httputil"
)

type Handler struct {
	service  *earnings.Service
	nurseSvc *nurse.Service
}

func NewHandler(service *earnings.Service, nurseSvc *nurse.Service) *Handler {
	return &Handler{service: service, nurseSvc: nurseSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Dashboard)
	e := r.Group("/earnings")
	{
		e.GET("", h.Get)
		e.GET("/monthly", h.Monthly)
		e.GET("/breakdown", h.Breakdown)
	}
}

func (h *Handler) currentNurse(c *gin.Context) (*model.Nurse, error) {
	return h.nurseSvc.GetByEmail(c.Request.Context(), middleware.EmailFromContext(c))
}

func (h *Handler) Dashboard(c *gin.Context) {
	n, err := h.currentNurse(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), n.ID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Dashboard retrieved", dashboard)
}

func (h *Handler) Get(c *gin.Context) {
	n, err := h.currentNurse(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	e, err := h.service.Get(c.Request.Context(), n.ID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Earnings retrieved", e)
}

func (h *Handler) Monthly(c *gin.Context) {
	n, err := h.currentNurse(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	monthly, err := h.service.Monthly(c.Request.Context(), n.ID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Monthly earnings retrieved", monthly)
}

func (h *Handler) Breakdown(c *gin.Context) {
	n, err := h.currentNurse(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	breakdown, err := h.service.Breakdown(c.Request.Context(), n.ID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Earnings breakdown retrieved", breakdown)
}
