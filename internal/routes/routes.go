package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RenatoWlk/projeto-aplicado-II/internal/audit"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/cache"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/config"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/domain/eligibility"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/events"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/handlers"
	infraRepo "github.com/RenatoWlk/projeto-aplicado-II/internal/infra/repository"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/middleware"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/models"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/slotlock"
	ucAvailability "github.com/RenatoWlk/projeto-aplicado-II/internal/usecase/availability"
	ucBooking "github.com/RenatoWlk/projeto-aplicado-II/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)
	locks := slotlock.NewManager()
	snapshots := cache.NewAvailabilityCache(cfg.RedisAddr, cfg.RedisPassword)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	eventsDispatcher := events.NewDispatcher(events.LogSubscriber{})

	evaluator := eligibility.NewEvaluator(cfg.DonationIntervalDays)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	bookUC := ucBooking.NewBook(
		schedulingRepo,
		locks,
		evaluator,
		eventsDispatcher,
		auditDispatcher,
	)

	confirmUC := ucBooking.NewConfirm(
		schedulingRepo,
		locks,
		eventsDispatcher,
		auditDispatcher,
	)

	cancelUC := ucBooking.NewCancel(
		schedulingRepo,
		locks,
		eventsDispatcher,
		auditDispatcher,
	)

	completeUC := ucBooking.NewComplete(
		schedulingRepo,
		locks,
		eventsDispatcher,
		auditDispatcher,
	)

	noShowUC := ucBooking.NewMarkNoShow(
		schedulingRepo,
		locks,
		eventsDispatcher,
		auditDispatcher,
	)

	// ======================================================
	// USE CASES — AVAILABILITY
	// ======================================================
	publishUC := ucAvailability.NewPublish(schedulingRepo, auditDispatcher)
	unpublishUC := ucAvailability.NewUnpublish(schedulingRepo, auditDispatcher)
	remainingUC := ucAvailability.NewRemainingCapacity(schedulingRepo)
	listDatesUC := ucAvailability.NewListDates(schedulingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	availabilityHandler := handlers.NewAvailabilityHandler(
		publishUC,
		unpublishUC,
		remainingUC,
		listDatesUC,
		snapshots,
	)

	donationHandler := handlers.NewDonationHandler(
		db,
		schedulingRepo,
		bookUC,
		confirmUC,
		cancelUC,
		completeUC,
		noShowUC,
		snapshots,
	)

	eligibilityHandler := handlers.NewEligibilityHandler(db, schedulingRepo, evaluator)
	auditLogsHandler := handlers.NewAuditHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/bloodbanks/:id/dates", availabilityHandler.ListDates)
			publicAPI.GET("/bloodbanks/:id/availability", availabilityHandler.GetForDate)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.RegisterDonor)
		api.POST("/auth/register/bloodbank", authHandler.RegisterBloodBank)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", authHandler.Me)

			// ------------------------------
			// DONOR
			// ------------------------------
			secured.GET("/me/eligibility", eligibilityHandler.Status)
			secured.POST("/me/questionnaires", eligibilityHandler.SubmitQuestionnaire)
			secured.GET("/me/questionnaires/latest", eligibilityHandler.LatestQuestionnaire)

			secured.POST("/donations", donationHandler.Create)
			secured.GET("/donations", donationHandler.ListMine)
			secured.GET("/donations/:id", donationHandler.Get)
			secured.PATCH("/donations/:id/cancel", donationHandler.Cancel)

			// ------------------------------
			// BLOOD BANK
			// ------------------------------
			bank := secured.Group("/me/bank")
			bank.Use(middleware.RequireRole(models.RoleBloodBank))
			{
				bank.POST("/availability", availabilityHandler.Publish)
				bank.DELETE("/availability/:date", availabilityHandler.Unpublish)

				bank.GET("/donations", donationHandler.ListForBank)
				bank.GET("/donations/upcoming", donationHandler.Upcoming)
				bank.PATCH("/donations/:id/confirm", donationHandler.Confirm)
				bank.PATCH("/donations/:id/complete", donationHandler.Complete)
				bank.PATCH("/donations/:id/no-show", donationHandler.MarkNoShow)

				bank.GET("/stats", donationHandler.Stats)
				bank.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
