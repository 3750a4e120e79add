package mcp

// In this file: MCP resource definitions and handler implementations.

import (
	"context"
	"encoding/json"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
)

const (
	uriHealth      = "system://health"
	uriTicketQueue = "system://ticket_queue"
	uriLogs        = "system://logs"
)

// serverResource pairs a resource definition with its handler.
type serverResource struct {
	resource mcplib.Resource
	handler  mcpsrv.ResourceHandlerFunc
}

// resources returns all MCP resources that this server exposes.
func (s *Server) resources() []serverResource {
	return []serverResource{
		{
			resource: mcplib.NewResource(
				uriHealth,
				"System Health",
				mcplib.WithResourceDescription("Current operational health of the triage assistant, including ticket counts by status."),
				mcplib.WithMIMEType("application/json"),
			),
			handler: s.handleHealthResource,
		},
		{
			resource: mcplib.NewResource(
				uriTicketQueue,
				"Ticket Queue",
				mcplib.WithResourceDescription("All open tickets as JSON. Referenced by the triage_expert prompt."),
				mcplib.WithMIMEType("application/json"),
			),
			handler: s.handleTicketQueueResource,
		},
		{
			resource: mcplib.NewResource(
				uriLogs,
				"Activity Logs",
				mcplib.WithResourceDescription("The most recent server activity lines."),
				mcplib.WithMIMEType("application/json"),
			),
			handler: s.handleLogsResource,
		},
	}
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleHealthResource(ctx context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	return jsonResource(uriHealth, s.tickets.Health(ctx))
}

func (s *Server) handleTicketQueueResource(ctx context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	tickets, err := s.tickets.ListOpenTickets(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(uriTicketQueue, map[string]any{
		"tickets":      tickets,
		"count":        len(tickets),
		"retrieved_at": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleLogsResource(ctx context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	logs := s.activity.Recent(s.recent)
	return jsonResource(uriLogs, map[string]any{
		"logs":         logs,
		"total_logs":   s.activity.Len(),
		"showing_last": len(logs),
	})
}
