package api

import (
	"net/http"

	authDelivery "lifeos-backend/internal/auth/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.authHandler.Register)
			auth.POST("/login", h.authHandler.Login)
			auth.POST("/google", h.authHandler.GoogleSignIn)
			auth.POST("/refresh", h.authHandler.RefreshToken)
			auth.POST("/logout", h.authHandler.Logout)
			auth.GET("/me", authDelivery.AuthMiddleware(h.authUsecase), h.authHandler.Me)
			auth.POST("/connect-calendar", authDelivery.AuthMiddleware(h.authUsecase), h.authHandler.ConnectCalendar)
		}

		// FCM routes (protected)
		fcm := api.Group("/fcm")
		fcm.Use(authDelivery.AuthMiddleware(h.authUsecase))
		{
			fcm.POST("/register", h.authHandler.RegisterFCMToken)
			fcm.DELETE("/:token", h.authHandler.UnregisterFCMToken)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(authDelivery.AuthMiddleware(h.authUsecase))
		{
			tasks.GET("", h.taskHandler.GetTasks)
			tasks.POST("", h.taskHandler.CreateTask)
			tasks.GET("/matrix", h.taskHandler.GetMatrix)
			tasks.GET("/:id", h.taskHandler.GetTaskByID)
			tasks.PUT("/:id", h.taskHandler.UpdateTask)
			tasks.DELETE("/:id", h.taskHandler.DeleteTask)
			tasks.PATCH("/:id/complete", h.taskHandler.ToggleTask)
		}

		// Search routes (protected)
		search := api.Group("/search")
		search.Use(authDelivery.AuthMiddleware(h.authUsecase))
		{
			search.POST("/semantic", h.taskHandler.SemanticSearch)
		}

		// Goal routes (protected)
		goals := api.Group("/goals")
		goals.Use(authDelivery.AuthMiddleware(h.authUsecase))
		{
			goals.GET("", h.goalHandler.GetGoals)
			goals.POST("", h.goalHandler.CreateGoal)
			goals.GET("/:id", h.goalHandler.GetGoalByID)
			goals.PUT("/:id", h.goalHandler.UpdateGoal)
			goals.DELETE("/:id", h.goalHandler.DeleteGoal)
		}

		// Calendar event routes (protected)
		events := api.Group("/events")
		events.Use(authDelivery.AuthMiddleware(h.authUsecase))
		{
			events.GET("", h.eventHandler.GetEvents)
			events.POST("", h.eventHandler.CreateEvent)
			events.GET("/:id", h.eventHandler.GetEventByID)
			events.PUT("/:id", h.eventHandler.UpdateEvent)
			events.DELETE("/:id", h.eventHandler.DeleteEvent)
		}

		// Habit routes (protected)
		habits := api.Group("/habits")
		habits.Use(authDelivery.AuthMiddleware(h.authUsecase))
		{
			habits.GET("", h.habitHandler.GetHabits)
			habits.POST("", h.habitHandler.CreateHabit)
			habits.PUT("/:id", h.habitHandler.UpdateHabit)
			habits.DELETE("/:id", h.habitHandler.DeleteHabit)
			habits.POST("/:id/logs", h.habitHandler.ToggleLog)
			habits.GET("/:id/streak", h.habitHandler.GetStreak)
		}

		// Workout routes (protected)
		workouts := api.Group("/workouts")
		workouts.Use(authDelivery.AuthMiddleware(h.authUsecase))
		{
			workouts.GET("", h.workoutHandler.GetWorkouts)
			workouts.POST("", h.workoutHandler.CreateWorkout)
			workouts.GET("/:id", h.workoutHandler.GetWorkoutByID)
			workouts.PUT("/:id", h.workoutHandler.UpdateWorkout)
			workouts.DELETE("/:id", h.workoutHandler.DeleteWorkout)
		}

		// Profile and gamification routes (protected)
		profile := api.Group("/profile")
		profile.Use(authDelivery.AuthMiddleware(h.authUsecase))
		{
			profile.GET("", h.profileHandler.GetProfile)
			profile.POST("/focus", h.profileHandler.RecordFocusSession)
		}

		// Assistant chat (protected, token stream)
		if h.chatHandler != nil {
			api.POST("/chat", authDelivery.AuthMiddleware(h.authUsecase), h.chatHandler.Chat)
		}
	}
}
