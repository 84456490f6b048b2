package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/valora-ai/valora/internal/brapi"
	"github.com/valora-ai/valora/internal/common"
	"github.com/valora-ai/valora/internal/handlers"
	"github.com/valora-ai/valora/internal/interfaces"
	"github.com/valora-ai/valora/internal/services/chat"
	"github.com/valora-ai/valora/internal/services/llm"
	"github.com/valora-ai/valora/internal/services/pdf"
	"github.com/valora-ai/valora/internal/services/quotes"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Domain services
	QuoteService  interfaces.QuoteService
	PDFExtractor  interfaces.PDFExtractor
	ReportService interfaces.PDFService
	LLMService    interfaces.LLMService
	ChatService   interfaces.ChatService

	// HTTP handlers
	APIHandler    *handlers.APIHandler
	StockHandler  *handlers.StockHandler
	UploadHandler *handlers.UploadHandler
	ChatHandler   *handlers.ChatHandler
	ReportHandler *handlers.ReportHandler
}

// New wires the application: provider clients first, then the pipeline
// services, then the handlers on top.
func New(ctx context.Context, cfg *common.Config) (*App, error) {
	logger := common.GetLogger()

	a := &App{
		Config: cfg,
		Logger: logger,
	}

	// Quote provider client and normalizer
	brapiOpts := []brapi.ClientOption{
		brapi.WithLogger(logger),
	}
	if cfg.Brapi.BaseURL != "" {
		brapiOpts = append(brapiOpts, brapi.WithBaseURL(cfg.Brapi.BaseURL))
	}
	if cfg.Brapi.RateLimit > 0 {
		brapiOpts = append(brapiOpts, brapi.WithRateLimit(cfg.Brapi.RateLimit))
	}
	if cfg.Brapi.Timeout != "" {
		timeout, err := time.ParseDuration(cfg.Brapi.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid brapi timeout '%s': %w", cfg.Brapi.Timeout, err)
		}
		brapiOpts = append(brapiOpts, brapi.WithTimeout(timeout))
	}
	brapiClient := brapi.NewClient(cfg.Brapi.Token, brapiOpts...)
	a.QuoteService = quotes.NewService(brapiClient, logger)

	// Document extraction and report rendering
	a.PDFExtractor = pdf.NewExtractor(logger, cfg.Upload.MaxExtractLen)
	a.ReportService = pdf.NewReportService(logger)

	// LLM provider and chat pipeline
	llmService, err := llm.NewLLMService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM service: %w", err)
	}
	a.LLMService = llmService
	a.ChatService = chat.NewChatService(llmService, logger)

	// HTTP handlers
	a.APIHandler = handlers.NewAPIHandler(a.ChatService)
	a.StockHandler = handlers.NewStockHandler(a.QuoteService)
	a.UploadHandler = handlers.NewUploadHandler(a.PDFExtractor, cfg.Upload.MaxSizeBytes)
	a.ChatHandler = handlers.NewChatHandler(a.ChatService)
	a.ReportHandler = handlers.NewReportHandler(a.ReportService)

	logger.Info().
		Str("environment", cfg.Environment).
		Str("llm_provider", string(cfg.LLM.DefaultProvider)).
		Msg("Application initialized")

	return a, nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.LLMService != nil {
		if err := a.LLMService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
			return err
		}
	}
	return nil
}
