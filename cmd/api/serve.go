package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/api"
	"github.com/pageza/pantrychef/backend/internal/database"
	"github.com/pageza/pantrychef/backend/internal/llm"
	"github.com/pageza/pantrychef/backend/internal/logging"
	"github.com/pageza/pantrychef/backend/internal/router"
	"github.com/pageza/pantrychef/backend/internal/server"
	"github.com/pageza/pantrychef/backend/internal/service"
)

const assistantInstructions = "Please be concise."

var shutdownTimeout time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		logger, err := logging.New(config.GetEnvironment(), cfg.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		return serve(cmd.Context(), cfg, logger)
	},
}

func init() {
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "time allowed for in-flight requests on shutdown")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	var denylist service.TokenDenylist
	if database.RedisConfigured(cfg) {
		var rdb *redis.Client
		if rdb, err = database.NewRedisClient(cfg, logger); err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		denylist = service.NewRedisTokenDenylist(rdb)
	} else {
		logger.Warn("redis not configured, logout will not revoke tokens")
	}

	recipes := service.NewRecipeService(db, logger)
	kitchen := service.NewKitchenService(db, logger)
	users := service.NewUserService(db, logger)
	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL, denylist, logger)
	generation := newGenerationService(cfg, logger)

	engine := router.SetupRouter(router.Handlers{
		Auth:       api.NewAuthHandler(auth),
		Recipes:    api.NewRecipeHandler(recipes),
		Generation: api.NewGenerationHandler(generation),
		Users:      api.NewUserHandler(users, recipes),
		Kitchen:    api.NewKitchenHandler(kitchen),
		Health: api.HealthCheck(func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		}),
	}, auth, cfg.CORSOrigins, logger)

	srv := server.New(cfg, engine, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func openDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	if cfg.DBDriver == config.DriverPostgres {
		if err := database.MigrateUp(cfg.PostgresURL()); err != nil {
			return nil, err
		}
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.DBDriver == config.DriverSQLite {
		if err := database.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	}
	return db, nil
}

// newGenerationService wires the generation gateways. Without an assistant id
// the corresponding feature falls back to plain chat completions.
func newGenerationService(cfg *config.Config, logger *zap.Logger) *service.GenerationService {
	client := llm.ClientConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Logger:  logger.Named("llm"),
	}
	chat := llm.NewChatClient(client, cfg.OpenAIModel)

	assistant := func(id string) llm.Generator {
		if id == "" {
			return chat
		}
		return llm.NewAssistantClient(llm.AssistantConfig{
			ClientConfig: client,
			AssistantID:  id,
			Instructions: assistantInstructions,
			PollInterval: cfg.GenerationPollInterval,
			Timeout:      cfg.GenerationTimeout,
		})
	}

	return service.NewGenerationService(
		assistant(cfg.OpenAIAssistantID),
		assistant(cfg.OpenAINamedAssistantID),
		chat,
		logger,
	)
}
