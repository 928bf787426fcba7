package api

import (
	"log"

	authDelivery "lifeos-backend/internal/auth/delivery"
	authUsecasePkg "lifeos-backend/internal/auth/usecase"
	chatDelivery "lifeos-backend/internal/chat/delivery"
	chatUsecasePkg "lifeos-backend/internal/chat/usecase"
	eventDelivery "lifeos-backend/internal/event/delivery"
	eventUsecasePkg "lifeos-backend/internal/event/usecase"
	goalDelivery "lifeos-backend/internal/goal/delivery"
	goalUsecasePkg "lifeos-backend/internal/goal/usecase"
	habitDelivery "lifeos-backend/internal/habit/delivery"
	habitUsecasePkg "lifeos-backend/internal/habit/usecase"
	profileDelivery "lifeos-backend/internal/profile/delivery"
	profileUsecasePkg "lifeos-backend/internal/profile/usecase"
	taskDelivery "lifeos-backend/internal/task/delivery"
	taskUsecasePkg "lifeos-backend/internal/task/usecase"
	workoutDelivery "lifeos-backend/internal/workout/delivery"
	workoutUsecasePkg "lifeos-backend/internal/workout/usecase"
	"lifeos-backend/pkg/ai"
	"lifeos-backend/pkg/chroma"
	"lifeos-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase authUsecasePkg.AuthUsecase
	config      *config.Config

	authHandler    *authDelivery.AuthHandler
	taskHandler    *taskDelivery.TaskHandler
	goalHandler    *goalDelivery.GoalHandler
	eventHandler   *eventDelivery.EventHandler
	habitHandler   *habitDelivery.HabitHandler
	workoutHandler *workoutDelivery.WorkoutHandler
	profileHandler *profileDelivery.ProfileHandler
	chatHandler    *chatDelivery.ChatHandler
}

func NewHandler(
	authUc authUsecasePkg.AuthUsecase,
	taskUc taskUsecasePkg.TaskUsecase,
	goalUc goalUsecasePkg.GoalUsecase,
	eventUc eventUsecasePkg.EventUsecase,
	habitUc habitUsecasePkg.HabitUsecase,
	workoutUc workoutUsecasePkg.WorkoutUsecase,
	profileUc profileUsecasePkg.ProfileUsecase,
	cfg *config.Config,
) *Handler {
	// Initialize Chroma client for semantic task search
	if cfg.ChromaAPIKey != "" {
		chromaClient, err := chroma.NewChromaClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Chroma client: %v. Semantic search will not be available.", err)
		} else {
			taskUc.SetVectorIndexer(chromaClient)
			log.Println("Chroma client initialized successfully")
		}
	} else {
		log.Println("Warning: CHROMA_API_KEY not set. Semantic search will not be available.")
	}

	// Initialize the streaming chat service for the assistant
	var chatHandler *chatDelivery.ChatHandler
	chatService, err := ai.NewChatService(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiApiKey,
		GeminiModel:   cfg.GeminiModel,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize AI chat service: %v. Assistant chat will not be available.", err)
	} else {
		chatUc := chatUsecasePkg.NewChatUsecase(chatService, eventUc)
		chatHandler = chatDelivery.NewChatHandler(chatUc)
		log.Printf("AI chat service initialized with provider: %s", cfg.AIProvider)
	}

	return &Handler{
		authUsecase:    authUc,
		config:         cfg,
		authHandler:    authDelivery.NewAuthHandler(authUc),
		taskHandler:    taskDelivery.NewTaskHandler(taskUc),
		goalHandler:    goalDelivery.NewGoalHandler(goalUc),
		eventHandler:   eventDelivery.NewEventHandler(eventUc),
		habitHandler:   habitDelivery.NewHabitHandler(habitUc),
		workoutHandler: workoutDelivery.NewWorkoutHandler(workoutUc),
		profileHandler: profileDelivery.NewProfileHandler(profileUc),
		chatHandler:    chatHandler,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h)

	return r.Run(addr)
}
