package main

import (
	"context"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-assistant/internal/config"
	"github.com/spec-kit/triage-assistant/internal/events"
	"github.com/spec-kit/triage-assistant/internal/mcp"
	"github.com/spec-kit/triage-assistant/internal/observability"
	"github.com/spec-kit/triage-assistant/internal/repository"
	"github.com/spec-kit/triage-assistant/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dispatcher := events.NewInMemoryDispatcher()

	recorder := observability.NewActivityRecorder(cfg.Activity.Capacity, logger)
	recorder.RegisterHandlers(dispatcher)

	ticketRepo := repository.NewInMemoryTicketRepository()
	knowledgeRepo := repository.NewStaticKnowledgeRepository(repository.DefaultKnowledgeArticles())

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	knowledgeService := service.NewKnowledgeService(knowledgeRepo, dispatcher, logger)

	if cfg.App.SeedDemoData {
		if err := service.SeedDemoTickets(ctx, ticketRepo, dispatcher); err != nil {
			logger.Fatal("failed to seed demo tickets", zap.Error(err))
		}
	}

	srv := mcp.New(mcp.Dependencies{
		Tickets:    ticketService,
		Knowledge:  knowledgeService,
		Activity:   recorder,
		Logger:     logger,
		Version:    cfg.App.Version,
		RecentLogs: cfg.Activity.Recent,
	})

	health := ticketService.Health(ctx)
	logger.Info("triage assistant starting",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.Int("tickets", health.TotalTickets),
		zap.Int("open_tickets", health.OpenTickets),
	)

	switch strings.ToLower(cfg.MCP.Transport) {
	case "stdio", "":
		err = srv.ServeStdio(ctx)
	case "http":
		err = srv.ServeHTTP(ctx, cfg.MCP.Listen)
	default:
		logger.Fatal("unknown MCP transport", zap.String("transport", cfg.MCP.Transport))
	}
	if err != nil {
		logger.Fatal("mcp server", zap.Error(err))
	}

	logger.Info("shutdown complete")
}
