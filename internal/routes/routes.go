package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"nutri-agenda-server/internal/booking"
	"nutri-agenda-server/internal/config"
	"nutri-agenda-server/internal/handlers"
	"nutri-agenda-server/internal/middleware"
	"nutri-agenda-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	bookingService := booking.NewService(db, cfg.Location)

	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	nutritionistHandler := handlers.NewNutritionistHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(bookingService, cfg.Location)
	appointmentHandler := handlers.NewAppointmentHandler(db, bookingService, cfg.Location)
	mealPlanHandler := handlers.NewMealPlanHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// Admin user management and moderation
		userRoutes := private.Group("/users")
		userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			userRoutes.POST("", userHandler.CreateUser)
			userRoutes.GET("", userHandler.GetUsers)
			userRoutes.GET("/:id", userHandler.GetUserByID)
			userRoutes.PATCH("/nutritionists/:id/approval", userHandler.ApproveNutritionist)
		}

		// Nutritionist discovery and self-service profile
		nutritionistRoutes := private.Group("/nutritionists")
		{
			nutritionistRoutes.GET("", nutritionistHandler.GetNutritionists)

			me := nutritionistRoutes.Group("/me")
			me.Use(middleware.RoleAuthMiddleware(models.RoleNutritionist))
			{
				me.PUT("", nutritionistHandler.UpsertMyProfile)
				me.GET("/schedule", nutritionistHandler.GetMySchedule)
				me.PUT("/schedule", nutritionistHandler.UpdateMySchedule)
			}

			nutritionistRoutes.GET("/:id", nutritionistHandler.GetNutritionistByID)
		}

		// Client self-service profile
		clientRoutes := private.Group("/clients")
		clientRoutes.Use(middleware.RoleAuthMiddleware(models.RoleClient))
		{
			clientRoutes.GET("/me", clientHandler.GetMyProfile)
			clientRoutes.PUT("/me", clientHandler.UpsertMyProfile)
		}

		// Slot listing
		private.GET("/availability", availabilityHandler.GetAvailability)

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleClient), appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus) // Authorization inside handler
		}

		// Meal plan routes
		mealPlanRoutes := private.Group("/meal-plans")
		{
			mealPlanRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleNutritionist), mealPlanHandler.CreateMealPlan)
			mealPlanRoutes.GET("", mealPlanHandler.GetMealPlansForUser)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
