package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/caremate/caremate-api/internal/config"
	"github.com/caremate/caremate-api/internal/email"
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
	"github.com/caremate/caremate-api/internal/repository/postgres"
	"github.com/caremate/caremate-api/internal/router"
	adminservice "github.com/caremate/caremate-api/internal/service/admin"
	bookingservice "github.com/caremate/caremate-api/internal/service/booking"
	earningsservice "github.com/caremate/caremate-api/internal/service/earnings"
	notificationservice "github.com/caremate/caremate-api/internal/service/notification"
	nurseservice "github.com/caremate/caremate-api/internal/service/nurse"
	patientservice "github.com/caremate/caremate-api/internal/service/patient"
	reviewservice "github.com/caremate/caremate-api/internal/service/review"
	scheduleservice "github.com/caremate/caremate-api/internal/service/schedule"
	"github.com/caremate/caremate-api/pkg/auth"
	"github.com/caremate/caremate-api/pkg/logger"
	"github.com/caremate/caremate-api/pkg/messaging"
	"github.com/caremate/caremate-api/pkg/messaging/redis"
	"github.com/caremate/caremate-api/pkg/metrics"
	"github.com/caremate/caremate-api/pkg/security"
	"github.com/caremate/caremate-api/pkg/storage"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	if err := middleware.RegisterValidators(); err != nil {
		log.Fatal(err, "failed to register validators")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	store, err := storage.NewLocalStore(cfg.Uploads.Root)
	if err != nil {
		log.Fatal(err, "failed to initialize file storage")
	}

	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		brokerLog := zerolog.New(os.Stdout).With().Timestamp().Str("component", "broker").Logger()
		broker, err = redis.NewBroker(cfg.Redis.URL, &brokerLog)
		if err != nil {
			log.Fatal(err, "failed to connect to redis")
		}
		defer broker.Close()
	} else {
		log.Warn("redis url not configured, notification events will not be published")
	}

	// Repositories.
	patientRepo := postgres.NewPatientRepository(db)
	nurseRepo := postgres.NewNurseRepository(db)
	adminRepo := postgres.NewAdminRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Shared infrastructure.
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	emailSvc := email.NewService(outboxRepo)
	m := metrics.NewMetrics("caremate")

	// Services.
	notificationSvc := notificationservice.NewService(notificationRepo, broker, log)
	patientSvc := patientservice.NewService(patientRepo, store, emailSvc, jwtSvc, log)
	nurseSvc := nurseservice.NewService(nurseRepo, reviewRepo, store, emailSvc, jwtSvc, hasher, log)
	adminSvc := adminservice.NewService(adminRepo, jwtSvc, hasher, log)
	bookingSvc := bookingservice.NewService(bookingRepo, nurseRepo, patientRepo, notificationSvc, emailSvc, m, log)
	scheduleSvc := scheduleservice.NewService(scheduleRepo, log)
	reviewSvc := reviewservice.NewService(reviewRepo, log)
	earningsSvc := earningsservice.NewService(bookingRepo, reviewRepo, notificationRepo, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := adminSvc.EnsureAdmins(ctx, cfg.Admins); err != nil {
		log.Fatal(err, "failed to provision admin accounts")
	}

	engine := router.New(cfg, log, m, middleware.NewAuthMiddleware(jwtSvc), router.Handlers{
		Patient:      patienthandler.NewHandler(patientSvc),
		Nurse:        nursehandler.NewHandler(nurseSvc),
		Booking:      bookinghandler.NewHandler(bookingSvc, nurseSvc),
		Schedule:     schedulehandler.NewHandler(scheduleSvc, nurseSvc),
		Review:       reviewhandler.NewHandler(reviewSvc, nurseSvc),
		Earnings:     earningshandler.NewHandler(earningsSvc, nurseSvc),
		Notification: notificationhandler.NewHandler(notificationSvc, nurseSvc, patientSvc),
		Admin:        adminhandler.NewHandler(adminSvc, nurseSvc),
		Health:       healthhandler.NewHandler(db),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "forced shutdown")
	}
}
