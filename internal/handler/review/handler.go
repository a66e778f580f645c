package review

import (
	"github.com/gin-gonic/gin"

	"github.com/caremate/caremate-api/internal/handler"
	"github.com/caremate/caremate-api/internal/middleware"
	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/service/nurse"
	"github.com/caremate/caremate-api/internal/service/review"
	"github.com/caremate/caremate-api/pkg/httputil"
)

type Handler struct {
	service  *review.Service
	nurseSvc *nurse.Service
}

func NewHandler(service *review.Service, nurseSvc *nurse.Service) *Handler {
	return &Handler{service: service, nurseSvc: nurseSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reviews := r.Group("/reviews")
	{
		reviews.GET("", h.List)
		reviews.GET("/stats", h.Stats)
		reviews.POST("/:id/reply", h.Reply)
	}
}

func (h *Handler) currentNurse(c *gin.Context) (*model.Nurse, error) {
	return h.nurseSvc.GetByEmail(c.Request.Context(), middleware.EmailFromContext(c))
}

func (h *Handler) List(c *gin.Context) {
	n, err := h.currentNurse(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var p model.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		httputil.RespondWithError(c, handler.BindingError(err))
		return
	}

	page, err := h.service.List(c.Request.Context(), n.ID, p)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Reviews retrieved", page)
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

	httputil.RespondWithSuccess(c, "Review statistics retrieved", stats)
}

func (h *Handler) Reply(c *gin.Context) {
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

	var req model.ReviewReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, handler.BindingError(err))
		return
	}

	updated, err := h.service.Reply(c.Request.Context(), n.ID, id, req.Reply)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Reply added successfully", updated)
}
