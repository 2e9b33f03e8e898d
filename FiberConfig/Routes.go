package FiberConfig

import (
	"log"
	"os"

	"Mydailylogs/Controllers"
	"Mydailylogs/Models"
	"Mydailylogs/Scheduler"
	"Mydailylogs/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, engine *Scheduler.Engine) {
	// Initialize handlers
	authController := Controllers.NewAuthController(db)
	templateController := Controllers.NewTemplateController(db)
	assignmentController := Controllers.NewAssignmentController(db)
	checklistController := Controllers.NewChecklistController(db)
	scheduleController := Controllers.NewScheduleController(db)
	notificationController := Controllers.NewNotificationController(db)
	reportController := Controllers.NewReportController(db)
	subscriptionController := Controllers.NewSubscriptionController(db)
	staffController := Controllers.NewStaffController(db)
	cronController := Controllers.NewCronController(engine)

	api := app.Group("/api")

	// Auth
	api.Post("/register", authController.Register)
	api.Post("/login", authController.Login)
	api.Post("/logout", authController.Logout)
	api.Get("/me", middleware.Verify(""), authController.Me)
	api.Post("/me/device", middleware.Verify(""), authController.RegisterDevice)

	// External scheduler trigger; authenticated by shared secret, not a session
	api.Post("/cron/daily", cronController.TriggerDaily)

	// Templates (admin)
	templates := api.Group("/templates", middleware.Verify(Models.RoleAdmin))
	templates.Get("/", templateController.GetTemplates)
	templates.Post("/", templateController.CreateTemplate)
	templates.Get("/:id", templateController.GetTemplate)
	templates.Put("/:id", templateController.UpdateTemplate)
	templates.Patch("/:id/active", templateController.SetActive)
	templates.Delete("/:id", templateController.DeleteTemplate)
	templates.Put("/:template_id/exclusion", scheduleController.PutExclusion)
	templates.Get("/:template_id/assignments", assignmentController.GetAssignmentsByTemplate)

	// Assignments
	assignments := api.Group("/assignments")
	assignments.Post("/", middleware.Verify(Models.RoleAdmin), assignmentController.CreateAssignment)
	assignments.Get("/mine", middleware.Verify(""), assignmentController.GetMyAssignments)
	assignments.Patch("/:id/cancel", middleware.Verify(Models.RoleAdmin), assignmentController.CancelAssignment)

	// Checklists (staff)
	checklists := api.Group("/checklists", middleware.Verify(""))
	checklists.Get("/mine", checklistController.GetMyChecklists)
	checklists.Patch("/:id/start", checklistController.StartChecklist)
	checklists.Patch("/:id/complete", checklistController.CompleteChecklist)

	// Scheduling records (admin)
	schedule := api.Group("/schedule", middleware.Verify(Models.RoleAdmin))
	schedule.Get("/holidays", scheduleController.GetHolidays)
	schedule.Post("/holidays", scheduleController.CreateHoliday)
	schedule.Delete("/holidays/:id", scheduleController.DeleteHoliday)
	schedule.Get("/unavailability", scheduleController.GetUnavailability)
	schedule.Post("/unavailability", scheduleController.CreateUnavailability)
	schedule.Delete("/unavailability/:id", scheduleController.DeleteUnavailability)
	schedule.Get("/business-hours", scheduleController.GetBusinessHours)
	schedule.Put("/business-hours", scheduleController.PutBusinessHours)

	// Notifications
	notifications := api.Group("/notifications", middleware.Verify(""))
	notifications.Get("/", notificationController.GetNotifications)
	notifications.Get("/unread-count", notificationController.GetUnreadCount)
	notifications.Patch("/:id/read", notificationController.MarkRead)
	notifications.Patch("/read-all", notificationController.MarkAllRead)

	// Reports
	api.Get("/reports/shared/:token", reportController.GetReportByToken)
	reports := api.Group("/reports", middleware.Verify(Models.RoleAdmin))
	reports.Get("/", reportController.GetReports)
	reports.Get("/export", reportController.ExportReports)

	// Staff and billing (admin)
	staff := api.Group("/staff", middleware.Verify(Models.RoleAdmin))
	staff.Get("/", staffController.GetStaff)
	staff.Post("/", staffController.CreateStaff)
	staff.Patch("/:id/active", staffController.SetStaffActive)
	api.Get("/subscription", middleware.Verify(Models.RoleAdmin), subscriptionController.GetSubscription)
}

func FiberConfig(engine *Scheduler.Engine) {
	log.Println("Server Up...")
	app := fiber.New()

	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Cron-Secret",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupRoutes(app, Models.DB, engine)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
