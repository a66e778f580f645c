package notification

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/caremate/caremate-api/internal/handler"
	"github.com/caremate/caremate-api/internal/middleware"
	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/service/notification"
	"github.com/caremate/caremate-api/internal/service/nurse"
	"github.com/caremate/caremate-api/internal/service/patient"
	apperrors "github.com/caremate/caremate-api/pkg/errors"
	"github.com/caremate/caremate-api/pkg/httputil"
)

// Handler serves notifications for both nurse and patient principals;
// the recipient identity is resolved from the token role.
type Handler struct {
	service    *notification.Service
	nurseSvc   *nurse.Service
	patientSvc *patient.Service
}

func NewHandler(service *notification.Service, nurseSvc *nurse.Service, patientSvc *patient.Service) *Handler {
	return &Handler{service: service, nurseSvc: nurseSvc, patientSvc: patientSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.PATCH("/:id/read", h.MarkRead)
	}
}

func (h *Handler) recipient(c *gin.Context) (uuid.UUID, model.UserRole, error) {
	email := middleware.EmailFromContext(c)
	role := model.UserRole(c.GetString(middleware.ContextRole))

	switch role {
	case model.RoleNurse:
		n, err := h.nurseSvc.GetByEmail(c.Request.Context(), email)
		if err != nil {
			return uuid.Nil, "", err
		}
		return n.ID, role, nil
	case model.RolePatient:
		p, err := h.patientSvc.GetByEmail(c.Request.Context(), email)
		if err != nil {
			return uuid.Nil, "", err
		}
		return p.ID, role, nil
	default:
		return uuid.Nil, "", apperrors.Forbidden("Access denied")
	}
}

func (h *Handler) List(c *gin.Context) {
	userID, role, err := h.recipient(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var p model.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		httputil.RespondWithError(c, handler.BindingError(err))
		return
	}

	page, err := h.service.List(c.Request.Context(), userID, role, p)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Notifications retrieved", page)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	userID, role, err := h.recipient(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), userID, role)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Unread count retrieved", gin.H{"unread_count": count})
}

func (h *Handler) MarkRead(c *gin.Context) {
	userID, role, err := h.recipient(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	id, err := handler.PathID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	n, err := h.service.MarkRead(c.Request.Context(), id, userID, role)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Notification marked as read", n)
}
