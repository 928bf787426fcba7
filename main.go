package main

import (
	"log"

	api "lifeos-backend/cmd/api"
	authdomain "lifeos-backend/internal/auth/domain"
	authRepo "lifeos-backend/internal/auth/repository"
	authUsecase "lifeos-backend/internal/auth/usecase"
	eventdomain "lifeos-backend/internal/event/domain"
	eventRepo "lifeos-backend/internal/event/repository"
	eventUsecase "lifeos-backend/internal/event/usecase"
	goaldomain "lifeos-backend/internal/goal/domain"
	goalRepo "lifeos-backend/internal/goal/repository"
	goalUsecase "lifeos-backend/internal/goal/usecase"
	habitdomain "lifeos-backend/internal/habit/domain"
	habitRepo "lifeos-backend/internal/habit/repository"
	habitUsecase "lifeos-backend/internal/habit/usecase"
	profiledomain "lifeos-backend/internal/profile/domain"
	profileRepo "lifeos-backend/internal/profile/repository"
	profileUsecase "lifeos-backend/internal/profile/usecase"
	taskdomain "lifeos-backend/internal/task/domain"
	taskRepo "lifeos-backend/internal/task/repository"
	"lifeos-backend/internal/task/scheduler"
	taskUsecase "lifeos-backend/internal/task/usecase"
	workoutdomain "lifeos-backend/internal/workout/domain"
	workoutRepo "lifeos-backend/internal/workout/repository"
	workoutUsecase "lifeos-backend/internal/workout/usecase"
	"lifeos-backend/pkg/config"
	"lifeos-backend/pkg/database"
	"lifeos-backend/pkg/fcm"
	"lifeos-backend/pkg/gcal"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize repositories. Without a database the server runs in
	// guest mode on in-memory stores; data lives for the process only.
	var (
		userRepo     authRepo.UserRepository
		fcmTokenRepo authRepo.FCMTokenRepository
		taskStore    taskRepo.TaskStore
		goalStore    goalRepo.GoalStore
		eventStore   eventRepo.EventStore
		habitStore   habitRepo.HabitStore
		workoutStore workoutRepo.WorkoutStore
		profileStore profileRepo.ProfileStore
	)

	if cfg.DatabaseURL != "" {
		db, err := database.NewPostgresConnection(cfg)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		// Auto-migrate database schemas
		if err := db.AutoMigrate(
			&authdomain.User{}, &authdomain.RefreshToken{}, &authdomain.FCMToken{},
			&taskdomain.Task{}, &goaldomain.Goal{}, &eventdomain.CalendarEvent{},
			&habitdomain.Habit{}, &habitdomain.HabitLog{},
			&workoutdomain.Workout{},
			&profiledomain.UserProfile{}, &profiledomain.UnlockedAchievement{},
		); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		userRepo = authRepo.NewUserRepository(db)
		fcmTokenRepo = authRepo.NewFCMTokenRepository(db)
		taskStore = taskRepo.NewGormTaskStore(db)
		goalStore = goalRepo.NewGormGoalStore(db)
		eventStore = eventRepo.NewGormEventStore(db)
		habitStore = habitRepo.NewGormHabitStore(db)
		workoutStore = workoutRepo.NewGormWorkoutStore(db)
		profileStore = profileRepo.NewGormProfileStore(db)
	} else {
		log.Println("[WARN] DATABASE_URL not set, running in guest mode with in-memory stores")

		userRepo = authRepo.NewMemoryUserRepository()
		fcmTokenRepo = authRepo.NewMemoryFCMTokenRepository()
		taskStore = taskRepo.NewMemoryTaskStore()
		goalStore = goalRepo.NewMemoryGoalStore()
		eventStore = eventRepo.NewMemoryEventStore()
		habitStore = habitRepo.NewMemoryHabitStore()
		workoutStore = workoutRepo.NewMemoryWorkoutStore()
		profileStore = profileRepo.NewMemoryProfileStore()
	}

	// Initialize Google Calendar service for event mirroring
	var calendarProvider eventdomain.CalendarProvider
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		calendarProvider = gcal.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)
	} else {
		log.Println("[WARN] Google OAuth not configured, calendar mirroring disabled")
	}

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, fcmTokenRepo, cfg)
	taskUsecaseInstance := taskUsecase.NewTaskUsecase(taskStore)
	goalUsecaseInstance := goalUsecase.NewGoalUsecase(goalStore, taskStore)
	eventUsecaseInstance := eventUsecase.NewEventUsecase(eventStore, userRepo, calendarProvider)
	habitUsecaseInstance := habitUsecase.NewHabitUsecase(habitStore)
	workoutUsecaseInstance := workoutUsecase.NewWorkoutUsecase(workoutStore)
	profileUsecaseInstance := profileUsecase.NewProfileUsecase(profileStore)

	// Completing a task awards XP; toggling back never claws it back.
	taskUsecaseInstance.SetCompletionListener(func(task *taskdomain.Task) {
		if err := profileUsecaseInstance.AwardTaskXP(task); err != nil {
			log.Printf("[ERROR] Failed to award task XP for task %s: %v", task.ID, err)
		}
	})

	// Linking, completing, or deleting a task refreshes the parent goal's
	// cached progress.
	taskUsecaseInstance.SetGoalChangeListener(goalUsecaseInstance.Recompute)

	// Logged workouts credit XP like focus time, scaled by duration.
	workoutUsecaseInstance.SetLogListener(func(userID string, durationMinutes int) {
		if _, err := profileUsecaseInstance.RecordFocusSession(userID, durationMinutes); err != nil {
			log.Printf("[ERROR] Failed to credit workout XP for user %s: %v", userID, err)
		}
	})

	// Initialize FCM client and the due-task reminder scheduler
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		var err error
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		}
	} else {
		log.Println("[WARN] No Firebase credentials configured, FCM disabled")
	}

	reminderScheduler := scheduler.NewTaskReminderScheduler(taskStore, fcmTokenRepo, fcmClient)
	reminderScheduler.Start()

	// Initialize HTTP handler
	handler := api.NewHandler(
		authUsecaseInstance,
		taskUsecaseInstance,
		goalUsecaseInstance,
		eventUsecaseInstance,
		habitUsecaseInstance,
		workoutUsecaseInstance,
		profileUsecaseInstance,
		cfg,
	)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
