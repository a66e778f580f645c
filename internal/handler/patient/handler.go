package patient

import (
	"github.com/gin-gonic/gin"

	"github.com/caremate/caremate-api/internal/handler"
	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/service/patient"
	"github.com/caremate/caremate-api/pkg/httputil"
)

type Handler struct {
	service *patient.Service
}

func NewHandler(service *patient.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
}

// Register accepts a multipart form: patient details plus an optional
// hospital report image.
func (h *Handler) Register(c *gin.Context) {
	var req model.PatientRegistrationRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.RespondWithError(c, handler.BindingError(err))
		return
	}

	report, err := c.FormFile("hospital_report")
	if err != nil {
		report = nil
	}

	resp, err := h.service.Register(c.Request.Context(), &req, report)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, resp.Message, resp)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.PatientLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, handler.BindingError(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, resp.Message, resp)
}
