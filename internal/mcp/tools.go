package mcp

// In this file: MCP tool definitions and handler implementations.

import (
	"context"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-assistant/internal/domain"
	"github.com/spec-kit/triage-assistant/internal/service"
	"github.com/spec-kit/triage-assistant/pkg/util"
)

// ─── create_ticket ────────────────────────────────────────────────────────────

func (s *Server) toolCreateTicket() mcpsrv.ServerTool {
	tool := mcplib.NewTool("create_ticket",
		mcplib.WithDescription(`Create a new support ticket and add it to the queue.

The ticket starts in the OPEN status with a freshly assigned sequential ID.`),
		mcplib.WithString("title",
			mcplib.Description("The ticket title (1-200 characters, required)."),
			mcplib.Required(),
		),
		mcplib.WithString("priority",
			mcplib.Description("The priority level: LOW, MEDIUM, HIGH, or CRITICAL."),
			mcplib.Required(),
		),
		mcplib.WithString("description",
			mcplib.Description("Optional detailed description of the issue (up to 1000 characters)."),
		),
		mcplib.WithString("assigned_to",
			mcplib.Description("Optional team or person the ticket is assigned to."),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleCreateTicket}
}

func (s *Server) handleCreateTicket(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	title, _ := stringArg(req, "title")
	priority, ok := stringArg(req, "priority")
	if !ok || priority == "" {
		return failureResult(util.NewValidationError("priority is required", map[string]any{"field": "priority"})), nil
	}
	description, _ := stringArg(req, "description")

	input := service.TicketCreateInput{
		Title:       title,
		Description: description,
		Priority:    domain.TicketPriority(priority),
	}
	if assignedTo, ok := stringArg(req, "assigned_to"); ok && assignedTo != "" {
		input.AssignedTo = &assignedTo
	}

	ticket, err := s.tickets.CreateTicket(ctx, input)
	if err != nil {
		return failureResult(err), nil
	}

	s.logger.Info("mcp: create_ticket", zap.Int64("ticket_id", ticket.ID), zap.String("priority", string(ticket.Priority)))
	result, err := resultJSON(map[string]any{
		"success": true,
		"message": fmt.Sprintf("Ticket #%d created successfully", ticket.ID),
		"ticket":  ticket,
	})
	if err != nil {
		return failureResult(fmt.Errorf("create_ticket: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── update_ticket_status ─────────────────────────────────────────────────────

func (s *Server) toolUpdateTicketStatus() mcpsrv.ServerTool {
	tool := mcplib.NewTool("update_ticket_status",
		mcplib.WithDescription("Update the status of an existing ticket. Any transition among the four statuses is allowed."),
		mcplib.WithNumber("ticket_id",
			mcplib.Description("The ID of the ticket to update."),
			mcplib.Required(),
		),
		mcplib.WithString("status",
			mcplib.Description("The new status: OPEN, IN_PROGRESS, RESOLVED, or CLOSED."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleUpdateTicketStatus}
}

func (s *Server) handleUpdateTicketStatus(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := int64Arg(req, "ticket_id")
	if !ok {
		return failureResult(util.NewValidationError("ticket_id is required", map[string]any{"field": "ticket_id"})), nil
	}
	status, ok := stringArg(req, "status")
	if !ok || status == "" {
		return failureResult(util.NewValidationError("status is required", map[string]any{"field": "status"})), nil
	}

	ticket, err := s.tickets.UpdateTicketStatus(ctx, id, domain.TicketStatus(status))
	if err != nil {
		return failureResult(err), nil
	}

	s.logger.Info("mcp: update_ticket_status", zap.Int64("ticket_id", ticket.ID), zap.String("status", string(ticket.Status)))
	result, err := resultJSON(map[string]any{
		"success": true,
		"message": fmt.Sprintf("Ticket #%d status updated to %s", ticket.ID, ticket.Status),
		"ticket":  ticket,
	})
	if err != nil {
		return failureResult(fmt.Errorf("update_ticket_status: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── search_knowledge_base ────────────────────────────────────────────────────

func (s *Server) toolSearchKnowledgeBase() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_knowledge_base",
		mcplib.WithDescription(`Search the knowledge base for relevant support articles.

Matching is a case-insensitive substring match against article titles, tags,
and categories. An empty query returns the full article list.`),
		mcplib.WithString("query",
			mcplib.Description("The search query string."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchKnowledgeBase}
}

func (s *Server) handleSearchKnowledgeBase(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	query, _ := stringArg(req, "query")

	articles, err := s.knowledge.Search(ctx, query)
	if err != nil {
		return failureResult(err), nil
	}

	s.logger.Info("mcp: search_knowledge_base", zap.String("query", query), zap.Int("results", len(articles)))
	result, err := resultJSON(map[string]any{
		"query":         query,
		"results_count": len(articles),
		"articles":      articles,
	})
	if err != nil {
		return failureResult(fmt.Errorf("search_knowledge_base: serialise: %w", err)), nil
	}
	return result, nil
}
