package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/arturoeanton/go-bedrock-rag/internal/adapter/ai"
	"github.com/arturoeanton/go-bedrock-rag/internal/adapter/storage"
	"github.com/arturoeanton/go-bedrock-rag/internal/adapter/store"
	"github.com/arturoeanton/go-bedrock-rag/internal/handler"
	"github.com/arturoeanton/go-bedrock-rag/internal/mcp"
	"github.com/arturoeanton/go-bedrock-rag/internal/service"
	"github.com/arturoeanton/go-bedrock-rag/pkg/config"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	_ "github.com/lib/pq"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	slog.Info("🚀 Starting AWS RAG Chatbot API",
		"port", cfg.Port,
		"region", cfg.AWSRegion,
		"embed_model", cfg.EmbedModel,
		"text_model", cfg.TextModel,
		"mcp_enabled", cfg.MCPEnabled,
	)

	// ── Database ─────────────────────────────────────────────────────────
	docStore, err := store.NewDocumentStore(cfg.DSN())
	if err != nil {
		slog.Error("failed to open document store", "error", err)
		os.Exit(1)
	}
	defer docStore.Close()

	// ── AWS Clients ──────────────────────────────────────────────────────
	awsOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKey != "" && cfg.AWSSecretKey != "" {
		awsOpts = append(awsOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsOpts...)
	if err != nil {
		slog.Error("failed to load AWS configuration", "error", err)
		os.Exit(1)
	}

	bedrockAI := ai.NewBedrockProvider(
		bedrockruntime.NewFromConfig(awsCfg),
		cfg.EmbedModel,
		cfg.TextModel,
		ai.GenerationConfig{
			MaxTokenCount: cfg.GenMaxTokens,
			Temperature:   cfg.GenTemperature,
			TopP:          cfg.GenTopP,
		},
	)
	bucketStore := storage.NewBucketStore(s3.NewFromConfig(awsCfg), cfg.AWSBucket)

	// ── Services ─────────────────────────────────────────────────────────
	ranker := service.NewRanker(cfg.TopK, cfg.SimilarityThreshold)
	chatService := service.NewChatService(bedrockAI, docStore, ranker)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: handler.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
	}))

	// ── Routes ───────────────────────────────────────────────────────────
	chatHandler := handler.NewChatHandler(chatService)
	chatHandler.Register(app)

	healthHandler := handler.NewHealthHandler()
	healthHandler.Register(app)

	documentsHandler := handler.NewDocumentsHandler(bucketStore)
	documentsHandler.Register(app)

	// ── MCP Server (separate port) ───────────────────────────────────────
	if cfg.MCPEnabled {
		mcpServer := mcp.NewServer(chatService, cfg.MCPPort)
		go func() {
			if err := mcpServer.Start(); err != nil {
				slog.Error("MCP server failed", "error", err)
			}
		}()
	}

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("🌐 Fiber listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
