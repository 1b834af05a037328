package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/deepanshu-striker/inter-chat/internal/agent"
	"github.com/deepanshu-striker/inter-chat/internal/api"
	"github.com/deepanshu-striker/inter-chat/internal/config"
	"github.com/deepanshu-striker/inter-chat/internal/core"
	"github.com/deepanshu-striker/inter-chat/internal/db"
	"github.com/deepanshu-striker/inter-chat/internal/middleware"
	"github.com/deepanshu-striker/inter-chat/internal/speech"
)

func main() {
	// A .env file is optional; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load application configuration: %v", err)
	}

	var zapLogger *zap.Logger
	if strings.ToLower(appConfig.GinMode) == "release" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("configuration loaded",
		zap.String("port", appConfig.Port),
		zap.Bool("useGroq", appConfig.UseGroq),
		zap.Bool("meterTranscription", appConfig.MeterTranscription))

	// Firebase Admin SDK: Firestore for user records, Auth for ID tokens.
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirestore(initCtx, appConfig, zapLogger); err != nil {
		zapLogger.Fatal("failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	firestoreClient := db.GetFirestoreClient()
	defer firestoreClient.Close()
	zapLogger.Info("Firebase Admin SDK initialized")

	userRepo := db.NewFirestoreUserRepository(firestoreClient)

	// Provider clients are constructed once and reused for the process
	// lifetime.
	timeout := appConfig.ExternalTimeout()
	agentClient := agent.NewClient(agent.Config{
		BaseURL:      appConfig.AgentBaseURL,
		APIKey:       appConfig.AgentAPIKey,
		Model:        appConfig.AgentModel,
		SystemPrompt: appConfig.AgentSystemPrompt,
		Timeout:      timeout,
	})
	groq := speech.NewGroqTranscriber(appConfig.GroqAPIKey, timeout)
	whisper := speech.NewWhisperTranscriber(appConfig.OpenAIAPIKey, timeout)
	synthesizer := speech.NewElevenLabsSynthesizer(appConfig.ElevenLabsAPIKey, timeout)

	// USE_GROQ only flips which backend gets the first attempt; the other
	// stays as the fallback.
	var primary, secondary speech.Transcriber
	if appConfig.UseGroq {
		primary, secondary = groq, whisper
	} else {
		primary, secondary = whisper, groq
	}

	quotaService := core.NewQuotaService(userRepo)
	chatService := core.NewChatService(quotaService, agentClient, zapLogger)
	transcriptionService := core.NewTranscriptionService(primary, secondary, zapLogger)
	zapLogger.Info("core services initialized",
		zap.String("primaryTranscriber", primary.Name()),
		zap.String("secondaryTranscriber", secondary.Name()))

	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS middleware skipped: CLIENT_URL is not configured")
	}

	api.SetupRoutes(
		router,
		appConfig,
		zapLogger,
		quotaService,
		chatService,
		transcriptionService,
		synthesizer,
	)

	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
		// Audio uploads and synthesis responses can be slow; keep these
		// above the external-call timeout.
		ReadTimeout:  timeout + 15*time.Second,
		WriteTimeout: 2*timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zapLogger.Info("starting HTTP server",
		zap.String("address", serverAddr),
		zap.String("ginMode", gin.Mode()))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server exiting gracefully")
}
