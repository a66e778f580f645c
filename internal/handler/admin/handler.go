package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/caremate/caremate-api/internal/handler"
	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/service/admin"
	"github.com/caremate/caremate-api/internal/service/nurse"
	"github.com/caremate/caremate-api/pkg/httputil"
)

type Handler struct {
	service  *admin.Service
	nurseSvc *nurse.Service
}

func NewHandler(service *admin.Service, nurseSvc *nurse.Service) *Handler {
	return &Handler{service: service, nurseSvc: nurseSvc}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/login", h.Login)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/nurses", h.ListNurses)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.AdminLoginRequest
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

func (h *Handler) ListNurses(c *gin.Context) {
	var p model.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		httputil.RespondWithError(c, handler.BindingError(err))
		return
	}

	page, err := h.nurseSvc.List(c.Request.Context(), p)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Nurses retrieved", page)
}
