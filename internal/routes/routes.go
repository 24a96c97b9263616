package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/media"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log zerolog.Logger,
	rdb *redis.Client,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	availabilityCache := cache.NewAvailability(rdb)
	mediaStore := media.NewStore(cfg)

	// ======================================================
	// USE CASES
	// ======================================================
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		bookingRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		bookingRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(cfg)
	shopHandler := handlers.NewShopHandler(db, cfg)

	serviceHandler := handlers.NewServiceHandler(db, mediaStore)
	openingHoursHandler := handlers.NewOpeningHoursHandler(db)
	timeOffHandler := handlers.NewTimeOffHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	galleryHandler := handlers.NewGalleryHandler(db, mediaStore, cfg)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		cancelAppointmentUC,
		completeAppointmentUC,
		availabilityCache,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		cfg,
		bookingRepo,
		auditDispatcher,
		mediaStore,
		availabilityCache,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API (booking wizard)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/shop", publicHandler.GetShop)
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/gallery", publicHandler.ListGallery)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API (admin dashboard)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/auth/me", authHandler.Me)

			secured.GET("/shop", shopHandler.Get)
			secured.PATCH("/shop", shopHandler.Update)

			secured.GET("/services", serviceHandler.List)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.GET("/opening-hours", openingHoursHandler.List)
			secured.PUT("/opening-hours", openingHoursHandler.Upsert)
			secured.DELETE("/opening-hours/:id", openingHoursHandler.Delete)

			secured.GET("/time-off", timeOffHandler.ListFuture)
			secured.POST("/time-off", timeOffHandler.Create)
			secured.PATCH("/time-off/:id", timeOffHandler.Update)
			secured.DELETE("/time-off/:id", timeOffHandler.Delete)

			secured.GET("/clients", clientHandler.List)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.POST("/clients", clientHandler.Create)
			secured.PATCH("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.GET("/gallery", galleryHandler.List)
			secured.POST("/gallery", galleryHandler.Upload)
			secured.PUT("/gallery/:id/order", galleryHandler.UpdateSortOrder)
			secured.DELETE("/gallery/:id", galleryHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
