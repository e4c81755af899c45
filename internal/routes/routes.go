package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/scheduly/booking-core/internal/audit"
	"github.com/scheduly/booking-core/internal/config"
	"github.com/scheduly/booking-core/internal/handlers"
	"github.com/scheduly/booking-core/internal/infra/persistence"
	"github.com/scheduly/booking-core/internal/middleware"
	ucAppointment "github.com/scheduly/booking-core/internal/usecase/appointment"
	"github.com/scheduly/booking-core/internal/wizard"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	logger *zap.Logger,
) error {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	store := persistence.NewGormStore(db)

	fallbackLog, err := persistence.NewFallbackLog(cfg.FallbackDBPath)
	if err != nil {
		return err
	}

	var nonces persistence.NonceRegistry
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		nonces = persistence.NewRedisNonces(client, 24*time.Hour)
	} else {
		nonces = persistence.NewMemoryNonces()
	}

	resilient := persistence.NewResilient(
		store,
		fallbackLog,
		nonces,
		time.Duration(cfg.RemoteTimeoutSec)*time.Second,
		logger,
	)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	sessions := wizard.NewSessions(
		time.Duration(cfg.SessionTTLMinutes) * time.Minute,
	)

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(store)
	listAppointmentsUC := ucAppointment.NewListAppointments(resilient)
	transitionUC := ucAppointment.NewTransitionAppointment(store, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	publicHandler := handlers.NewPublicHandler(store, availabilityUC)
	bookingHandler := handlers.NewBookingHandler(
		store,
		resilient,
		auditDispatcher,
		sessions,
		cfg,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		listAppointmentsUC,
		transitionUC,
	)

	serviceHandler := handlers.NewServiceHandler(db)
	professionalHandler := handlers.NewProfessionalHandler(db)
	settingsHandler := handlers.NewSettingsHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (vitrine + wizard)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/professionals", publicHandler.ListProfessionals)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)

			publicAPI.POST("/:slug/wizard", bookingHandler.Start)
		}

		// ------------------------------
		// WIZARD (sessões de agendamento)
		// ------------------------------
		wizardAPI := api.Group("/wizard")
		{
			wizardAPI.GET("/:session", bookingHandler.State)
			wizardAPI.POST("/:session/advance", bookingHandler.Advance)
			wizardAPI.POST("/:session/retreat", bookingHandler.Retreat)
			wizardAPI.POST("/:session/reset", bookingHandler.Reset)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA (painel)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.Me)

			secured.GET("/me/settings", settingsHandler.Get)
			secured.PATCH("/me/settings", settingsHandler.Update)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/professionals", professionalHandler.List)
			secured.POST("/me/professionals", professionalHandler.Create)
			secured.PATCH("/me/professionals/:id", professionalHandler.Update)

			secured.GET("/me/appointments", appointmentHandler.List)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}

	return nil
}
