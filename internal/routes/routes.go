package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonsuite/salon-scheduler/internal/audit"
	"github.com/salonsuite/salon-scheduler/internal/cache"
	"github.com/salonsuite/salon-scheduler/internal/clock"
	"github.com/salonsuite/salon-scheduler/internal/config"
	"github.com/salonsuite/salon-scheduler/internal/handlers"
	infraRepo "github.com/salonsuite/salon-scheduler/internal/infra/repository"
	"github.com/salonsuite/salon-scheduler/internal/middleware"
	"github.com/salonsuite/salon-scheduler/internal/models"
	ucAvailability "github.com/salonsuite/salon-scheduler/internal/usecase/availability"
	ucBooking "github.com/salonsuite/salon-scheduler/internal/usecase/booking"
	ucCalendar "github.com/salonsuite/salon-scheduler/internal/usecase/calendar"
	ucLeave "github.com/salonsuite/salon-scheduler/internal/usecase/leave"
	ucReschedule "github.com/salonsuite/salon-scheduler/internal/usecase/reschedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, store *cache.Cache) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	clk := clock.Real{}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — AVAILABILITY
	// ======================================================
	checker := ucAvailability.NewChecker(scheduleRepo, clk)
	freeSlotsUC := ucAvailability.NewListFreeSlots(scheduleRepo, clk)

	// ======================================================
	// USE CASES — BOOKING LIFECYCLE
	// ======================================================
	createAppointmentUC := ucBooking.NewCreateAppointment(scheduleRepo, checker, auditDispatcher)
	updateStatusUC := ucBooking.NewUpdateStatus(scheduleRepo, clk, auditDispatcher)
	reassignStaffUC := ucBooking.NewReassignStaff(scheduleRepo, checker, auditDispatcher)
	rescheduleUC := ucBooking.NewReschedule(scheduleRepo, checker, auditDispatcher)
	cancelAppointmentUC := ucBooking.NewCancelAppointment(scheduleRepo, clk, auditDispatcher)
	listByDateUC := ucBooking.NewListByDate(scheduleRepo)
	listByMonthUC := ucBooking.NewListByMonth(scheduleRepo)

	// ======================================================
	// USE CASES — CALENDAR / LEAVE / RESCHEDULE
	// ======================================================
	setBusinessHoursUC := ucCalendar.NewSetBusinessHours(scheduleRepo, auditDispatcher)
	submitLeaveUC := ucLeave.NewSubmitRequest(scheduleRepo, auditDispatcher)
	decideLeaveUC := ucLeave.NewDecideRequest(scheduleRepo, clk, auditDispatcher)
	proposeRescheduleUC := ucReschedule.NewPropose(scheduleRepo, auditDispatcher)
	decideRescheduleUC := ucReschedule.NewDecide(scheduleRepo, rescheduleUC, clk, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	branchHandler := handlers.NewBranchHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	staffHandler := handlers.NewStaffHandler(db)
	holidayHandler := handlers.NewHolidayHandler(db, auditDispatcher)
	businessHoursHandler := handlers.NewBusinessHoursHandler(scheduleRepo, setBusinessHoursUC)

	availabilityHandler := handlers.NewAvailabilityHandler(scheduleRepo, checker, freeSlotsUC, store)

	appointmentHandler := handlers.NewAppointmentHandler(
		scheduleRepo,
		createAppointmentUC,
		updateStatusUC,
		reassignStaffUC,
		rescheduleUC,
		cancelAppointmentUC,
		listByDateUC,
		listByMonthUC,
	)

	leaveHandler := handlers.NewLeaveRequestHandler(db, submitLeaveUC, decideLeaveUC)
	rescheduleHandler := handlers.NewRescheduleHandler(db, proposeRescheduleUC, decideRescheduleUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	manageRoles := []string{models.RoleOwner, models.RoleManager, models.RoleReceptionist}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/branches/:branchId/availability", availabilityHandler.Check)
			publicAPI.GET("/branches/:branchId/slots", availabilityHandler.Slots)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/branch", branchHandler.GetMeBranch)
			secured.PATCH("/me/branch",
				middleware.RequireRoles(models.RoleOwner, models.RoleManager),
				branchHandler.UpdateMeBranch)

			// ------------------------------
			// CALENDAR RULES
			// ------------------------------
			secured.GET("/me/business-hours", businessHoursHandler.List)
			secured.PUT("/me/business-hours",
				middleware.RequireRoles(models.RoleOwner, models.RoleManager),
				businessHoursHandler.Set)

			secured.GET("/me/holidays", holidayHandler.List)
			secured.POST("/me/holidays",
				middleware.RequireRoles(models.RoleOwner, models.RoleManager),
				holidayHandler.Create)
			secured.DELETE("/me/holidays/:id",
				middleware.RequireRoles(models.RoleOwner, models.RoleManager),
				holidayHandler.Delete)

			// ------------------------------
			// CATALOG / STAFF
			// ------------------------------
			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services",
				middleware.RequireRoles(models.RoleOwner, models.RoleManager),
				serviceHandler.Create)
			secured.PATCH("/me/services/:id",
				middleware.RequireRoles(models.RoleOwner, models.RoleManager),
				serviceHandler.Update)
			secured.DELETE("/me/services/:id",
				middleware.RequireRoles(models.RoleOwner, models.RoleManager),
				serviceHandler.Delete)

			secured.GET("/me/staff", staffHandler.List)
			secured.POST("/me/staff",
				middleware.RequireRoles(models.RoleOwner, models.RoleManager),
				staffHandler.Create)
			secured.PATCH("/me/staff/:id",
				middleware.RequireRoles(models.RoleOwner, models.RoleManager),
				staffHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDay)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/me/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/me/appointments/:id",
				middleware.RequireRoles(manageRoles...),
				appointmentHandler.Update)
			secured.PATCH("/me/appointments/:id/status",
				middleware.RequireRoles(models.RoleOwner, models.RoleManager, models.RoleReceptionist, models.RoleStaff),
				appointmentHandler.UpdateStatus)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.POST("/me/appointments/:id/reschedule-requests", rescheduleHandler.Propose)

			// ------------------------------
			// LEAVE / RESCHEDULE WORKFLOWS
			// ------------------------------
			secured.POST("/me/leave-requests", leaveHandler.Submit)
			secured.GET("/me/leave-requests",
				middleware.RequireRoles(models.RoleOwner, models.RoleManager),
				leaveHandler.List)
			secured.PATCH("/me/leave-requests/:id",
				middleware.RequireRoles(models.RoleOwner, models.RoleManager),
				leaveHandler.Decide)

			secured.GET("/me/reschedule-requests",
				middleware.RequireRoles(manageRoles...),
				rescheduleHandler.List)
			secured.PATCH("/me/reschedule-requests/:id",
				middleware.RequireRoles(models.RoleOwner, models.RoleManager),
				rescheduleHandler.Decide)

			secured.GET("/me/audit-logs",
				middleware.RequireRoles(models.RoleOwner, models.RoleManager),
				auditLogsHandler.List)
		}
	}
}
