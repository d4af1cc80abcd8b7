package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"quotedesk-backend/config"
	"quotedesk-backend/controllers"
	"quotedesk-backend/services"
	"quotedesk-backend/utils"
)

// SetupRouter wires middleware and routes. reminders may be nil when no
// message provider is configured.
func SetupRouter(cfg *config.Config, logger zerolog.Logger, reminders *services.ReminderService) (*gin.Engine, error) {
	controllers.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(utils.RequestID(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", utils.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", utils.RequestIDHeader},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger(cfg.App.SlowRequest))

	r.GET("/health", controllers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authController, err := controllers.NewAuthController(cfg.Auth, cfg.App.IsProd())
	if err != nil {
		return nil, err
	}
	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	api := r.Group("/api")
	if cfg.Auth.Enabled() {
		api.Use(utils.AuthMiddleware(cfg.Auth.JWTSecret))
	}
	{
		// Quote routes
		quotes := api.Group("/quotes")
		{
			reportController := controllers.ReportController{}
			quotes.POST("", controllers.CreateQuote)
			quotes.GET("", controllers.GetQuotes)
			quotes.DELETE("", controllers.ClearQuotes)
			quotes.GET("/export", reportController.ExportQuotes)
			quotes.GET("/:id", controllers.GetQuote)
			quotes.PUT("/:id", controllers.UpdateQuote)
			quotes.DELETE("/:id", controllers.DeleteQuote)
		}

		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Service routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/customer/:id", controllers.GetCustomerAppointments)
			appointments.GET("/next/:id", controllers.GetNextAppointment)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PUT("/:id", controllers.UpdateAppointment)
			appointments.DELETE("/:id", controllers.DeleteAppointment)
		}

		// Reminder routes
		reminderController := controllers.NewReminderController(reminders)
		api.GET("/reminders", reminderController.GetReminderLogs)
		api.POST("/reminders/run", reminderController.RunReminders)

		//Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReport)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.RespondWithError(c, http.StatusNotFound, "Route not found")
	})

	return r, nil
}
