package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/deepanshu-striker/inter-chat/internal/config"
	"github.com/deepanshu-striker/inter-chat/internal/core"
	"github.com/deepanshu-striker/inter-chat/internal/db"
	"github.com/deepanshu-striker/inter-chat/internal/middleware"
	"github.com/deepanshu-striker/inter-chat/internal/speech"
)

// SetupRoutes configures all application routes. Global middleware (logging,
// recovery, CORS) is applied to the router before this is called, in main.
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	quotaService core.QuotaService,
	chatService core.ChatService,
	transcriptionService core.TranscriptionService,
	synthesizer speech.Synthesizer,
) {
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("Firebase Auth client is not initialized; routes cannot be set up")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient, logger)

	userHandler := NewUserHandler(quotaService)
	chatHandler := NewChatHandler(chatService)
	speechHandler := NewSpeechHandler(
		transcriptionService,
		synthesizer,
		quotaService,
		appConfig.MeterTranscription,
		logger,
	)

	// Account endpoints. register_or_login takes the external UID in the
	// body; the frontend calls it right after Firebase sign-in.
	router.POST("/register_or_login", userHandler.RegisterOrLogin)
	router.GET("/user/:userId/status", userHandler.GetStatus)
	router.POST("/user/:userId/select_plan", userHandler.SelectPlan)

	// Voice pipeline.
	router.POST("/chat", chatHandler.Chat)
	router.POST("/transcribe", authMW.VerifyToken(), speechHandler.Transcribe)
	router.POST("/synthesize", speechHandler.Synthesize)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	logger.Info("API routes configured")
}
