package booking

import (
	"github.com/gin-gonic/gin"

	"github.com/caremate/caremate-api/internal/handler"
	"github.com/caremate/caremate-api/internal/middleware"
	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/service/booking"
	"github.com/caremate/caremate-api/internal/service/nurse"
	"github.com/caremate/caremate-api/pkg/httputil"
)

type Handler struct {
	service  *booking.Service
	nurseSvc *nurse.Service
}

func NewHandler(service *booking.Service, nurseSvc *nurse.Service) *Handler {
	return &Handler{service: service, nurseSvc: nurseSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.GET("", h.List)
		bookings.GET("/active", h.ListActive)
		bookings.GET("/history", h.ListHistory)
		bookings.GET("/:id", h.Get)
		bookings.PATCH("/:id/accept", h.Accept)
		bookings.PATCH("/:id/reject", h.Reject)
		bookings.PATCH("/:id/complete", h.Complete)
		bookings.POST("/:id/report", h.SubmitCareReport)
	}
	r.GET("/stats/bookings", h.Stats)
}

func (h *Handler) currentNurse(c *gin.Context) (*model.Nurse, error) {
	return h.nurseSvc.GetByEmail(c.Request.Context(), middleware.EmailFromContext(c))
}

func (h *Handler) List(c *gin.Context) {
	n, p, ok := h.listContext(c)
	if !ok {
		return
	}

	var statuses []model.BookingStatus
	if s := c.Query("status"); s != "" {
		statuses = []model.BookingStatus{model.BookingStatus(s)}
	}

	page, err := h.service.List(c.Request.Context(), n.ID, statuses, p)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Bookings retrieved", page)
}

func (h *Handler) ListActive(c *gin.Context) {
	n, p, ok := h.listContext(c)
	if !ok {
		return
	}

	page, err := h.service.ListActive(c.Request.Context(), n.ID, p)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Active bookings retrieved", page)
}

func (h *Handler) ListHistory(c *gin.Context) {
	n, p, ok := h.listContext(c)
	if !ok {
		return
	}

	page, err := h.service.ListHistory(c.Request.Context(), n.ID, p)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Booking history retrieved", page)
}

// listContext resolves the acting nurse and the pagination query,
// responding itself on failure.
func (h *Handler) listContext(c *gin.Context) (*model.Nurse, model.Pagination, bool) {
	n, err := h.currentNurse(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return nil, model.Pagination{}, false
	}

	var p model.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		httputil.RespondWithError(c, handler.BindingError(err))
		return nil, model.Pagination{}, false
	}
	return n, p, true
}

func (h *Handler) Get(c *gin.Context) {
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

	dto, err := h.service.Get(c.Request.Context(), n.ID, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Booking retrieved", dto)
}

func (h *Handler) Accept(c *gin.Context) {
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

	var req model.BookingActionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.RespondWithError(c, handler.BindingError(err))
			return
		}
	}

	b, err := h.service.Accept(c.Request.Context(), n, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Booking accepted successfully", b)
}

func (h *Handler) Reject(c *gin.Context) {
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

	var req model.BookingActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, handler.BindingError(err))
		return
	}

	b, err := h.service.Reject(c.Request.Context(), n, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Booking rejected", b)
}

func (h *Handler) Complete(c *gin.Context) {
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

	b, err := h.service.Complete(c.Request.Context(), n, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Booking completed successfully", b)
}

func (h *Handler) SubmitCareReport(c *gin.Context) {
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

	var req model.CareReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, handler.BindingError(err))
		return
	}

	b, err := h.service.SubmitCareReport(c.Request.Context(), n, id, req.CareReport)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Care report submitted successfully", b)
}

func (h *Handler) Stats(c *gin.Context) {
	n, err := h.currentNurse(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), n.ID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Booking statistics retrieved", stats)
}
