package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/caremate/caremate-api/internal/config"
	adminhandler "github.com/caremate/caremate-api/internal/handler/admin"
	bookinghandler "github.com/caremate/caremate-api/internal/handler/booking"
	earningshandler "github.com/caremate/caremate-api/internal/handler/earnings"
	healthhandler "github.com/caremate/caremate-api/internal/handler/health"
	notificationhandler "github.com/caremate/caremate-api/internal/handler/notification"
	nursehandler "github.com/caremate/caremate-api/internal/handler/nurse"
	patienthandler "github.com/caremate/caremate-api/internal/handler/patient"
	reviewhandler "github.com/caremate/caremate-api/internal/handler/review"
	schedulehandler "github.com/caremate/caremate-api/internal/handler/schedule"
	"github.com/caremate/caremate-api/internal/middleware"
	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/pkg/logger"
	"github.com/caremate/caremate-api/pkg/metrics"
)

// Handlers carries every handler mounted by the router.
type Handlers struct {
	Patient      *patienthandler.Handler
	Nurse        *nursehandler.Handler
	Booking      *bookinghandler.Handler
	Schedule     *schedulehandler.Handler
	Review       *reviewhandler.Handler
	Earnings     *earningshandler.Handler
	Notification *notificationhandler.Handler
	Admin        *adminhandler.Handler
	Health       *healthhandler.Handler
}

// New assembles the gin engine: global middleware, public auth routes,
// and the role-scoped nurse/patient/admin groups.
func New(
	cfg *config.Config,
	log *logger.Logger,
	m *metrics.Metrics,
	auth *middleware.AuthMiddleware,
	h Handlers,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.BodySizeLimit(cfg.Uploads.MaxFileSize))
	if cfg.RateLimit.Enabled {
		engine.Use(middleware.NewRateLimiter(cfg.RateLimit).Handler())
	}

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	h.Health.RegisterRoutes(engine.Group(""))

	api := engine.Group("/api")

	// Public auth surface.
	h.Patient.RegisterRoutes(api.Group("/patient"))
	h.Nurse.RegisterPublicRoutes(api.Group("/nurse"))
	h.Admin.RegisterPublicRoutes(api.Group("/admin"))

	// Nurse-facing surface.
	nurseAPI := api.Group("/nurse")
	nurseAPI.Use(auth.Authenticate(), auth.RequireRole(model.RoleNurse))
	{
		h.Nurse.RegisterRoutes(nurseAPI)
		h.Booking.RegisterRoutes(nurseAPI)
		h.Schedule.RegisterRoutes(nurseAPI)
		h.Review.RegisterRoutes(nurseAPI)
		h.Earnings.RegisterRoutes(nurseAPI)
		h.Notification.RegisterRoutes(nurseAPI)
	}

	// Patient-facing surface.
	patientAPI := api.Group("/patient")
	patientAPI.Use(auth.Authenticate(), auth.RequireRole(model.RolePatient))
	{
		h.Notification.RegisterRoutes(patientAPI)
	}

	// Admin surface.
	adminAPI := api.Group("/admin")
	adminAPI.Use(auth.Authenticate(), auth.RequireRole(model.RoleAdmin))
	{
		h.Admin.RegisterRoutes(adminAPI)
		h.Health.RegisterRoutes(adminAPI)
	}

	return engine
}
