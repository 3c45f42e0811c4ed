package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/teleconsult/teleconsult/internal/config"
	"github.com/teleconsult/teleconsult/internal/domain/ai"
	"github.com/teleconsult/teleconsult/internal/domain/appointment"
	"github.com/teleconsult/teleconsult/internal/domain/chat"
	"github.com/teleconsult/teleconsult/internal/platform/auth"
	"github.com/teleconsult/teleconsult/internal/platform/chatkit"
	"github.com/teleconsult/teleconsult/internal/platform/middleware"
	"github.com/teleconsult/teleconsult/internal/platform/notification"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "consult-server",
		Short: "Telehealth consultation API server",
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the consultation API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Messaging provider client
	ck := chatkit.New(chatkit.Config{
		APIEndpoint:  cfg.ChatKitAPIEndpoint,
		ChatEndpoint: cfg.ChatKitChatEndpoint,
		AppID:        cfg.ChatKitAppID,
		AuthKey:      cfg.ChatKitAuthKey,
		AuthSecret:   cfg.ChatKitAuthSecret,
	})

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Authenticated API group
	api := e.Group("/api/v1")
	api.Use(auth.Middleware(auth.Config{
		APIKeys:       cfg.APIKeys,
		SessionSecret: []byte(cfg.ChatKitAuthSecret),
	}))

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api.Use(middleware.RateLimit(rateLimitCfg))

	// Notification fan-out over the provider's chat transport
	notifier := notification.New(
		func(ctx context.Context, userID, token string) (notification.SystemMessenger, error) {
			return ck.ConnectChat(ctx, userID, token)
		},
		ck.UserJID,
		logger,
	)

	// Appointments
	apptRepo := appointment.NewChatKitRepo(ck)
	apptSvc := appointment.NewService(apptRepo, apptRepo, apptRepo, cfg.ChatKitAdminID, logger)
	appointment.NewHandler(apptSvc, notifier).RegisterRoutes(api)

	// Chat message history
	chatRepo := chat.NewChatKitRepo(ck)
	assistFlags := chat.AssistFlags{
		Translate:   cfg.AIEnabled() && cfg.AITranslate,
		QuickAnswer: cfg.AIEnabled() && cfg.AIQuickAnswer,
	}
	chat.NewHandler(chatRepo, chatRepo.AttachmentURL, assistFlags).RegisterRoutes(api)

	// AI assist
	if cfg.AIEnabled() {
		completer := ai.NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		aiSvc := ai.NewService(chatRepo, completer)
		ai.NewHandler(aiSvc).RegisterRoutes(api, cfg.AITranslate, cfg.AIQuickAnswer)
	}

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
