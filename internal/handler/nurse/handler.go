package nurse

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/caremate/caremate-api/internal/handler"
	"github.com/caremate/caremate-api/internal/middleware"
	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/service/nurse"
	apperrors "github.com/caremate/caremate-api/pkg/errors"
	"github.com/caremate/caremate-api/pkg/httputil"
)

type Handler struct {
	service *nurse.Service
}

func NewHandler(service *nurse.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/profile", h.GetProfile)
	r.PUT("/profile", h.UpdateProfile)
	r.PUT("/profile/status", h.UpdateStatus)
	r.POST("/profile/image/:slot", h.UpdateProfileImage)
}

// Register accepts a multipart form: nurse details plus up to two
// optional profile images.
func (h *Handler) Register(c *gin.Context) {
	var req model.NurseRegistrationRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.RespondWithError(c, handler.BindingError(err))
		return
	}

	image1, err := c.FormFile("profile_image_1")
	if err != nil {
		image1 = nil
	}
	image2, err := c.FormFile("profile_image_2")
	if err != nil {
		image2 = nil
	}

	resp, err := h.service.Register(c.Request.Context(), &req, image1, image2)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, resp.Message, resp)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.NurseLoginRequest
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

func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context(), middleware.EmailFromContext(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Profile retrieved", profile)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req model.NurseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, handler.BindingError(err))
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), middleware.EmailFromContext(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Profile updated successfully", profile)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req model.NurseStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, handler.BindingError(err))
		return
	}

	profile, err := h.service.UpdateStatus(c.Request.Context(), middleware.EmailFromContext(c), req.Status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Status updated successfully", profile)
}

func (h *Handler) UpdateProfileImage(c *gin.Context) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation(map[string]string{
			"slot": "Invalid image number. Use 1 or 2.",
		}))
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation(map[string]string{
			"image": "Image file is required",
		}))
		return
	}

	profile, err := h.service.UpdateProfileImage(c.Request.Context(), middleware.EmailFromContext(c), image, slot)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "Profile image updated successfully", profile)
}
