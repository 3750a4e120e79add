package mcp

// In this file: MCP server construction and transport management.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-assistant/internal/observability"
	"github.com/spec-kit/triage-assistant/internal/service"
	"github.com/spec-kit/triage-assistant/pkg/util"
)

const serverName = "triage-assistant"

// Server wraps an MCP server and the ticket services behind it.
type Server struct {
	mcp       *mcpsrv.MCPServer
	tickets   *service.TicketService
	knowledge *service.KnowledgeService
	activity  *observability.ActivityRecorder
	logger    *zap.Logger
	recent    int
}

// Dependencies bundles collaborators for the MCP facade.
type Dependencies struct {
	Tickets   *service.TicketService
	Knowledge *service.KnowledgeService
	Activity  *observability.ActivityRecorder
	Logger    *zap.Logger
	Version   string
	// RecentLogs bounds the system://logs resource; defaults to 5.
	RecentLogs int
}

// New creates a new MCP server exposing the triage tools, resources, and
// prompts. The server does not start listening until one of the Serve*
// methods is called.
func New(deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	recent := deps.RecentLogs
	if recent <= 0 {
		recent = 5
	}

	s := &Server{
		tickets:   deps.Tickets,
		knowledge: deps.Knowledge,
		activity:  deps.Activity,
		logger:    logger,
		recent:    recent,
	}

	mcpServer := mcpsrv.NewMCPServer(
		serverName,
		version,
		mcpsrv.WithToolCapabilities(true),
		mcpsrv.WithResourceCapabilities(false, true),
		mcpsrv.WithPromptCapabilities(true),
		mcpsrv.WithRecovery(),
		mcpsrv.WithInstructions(instructions()),
	)

	for _, t := range s.tools() {
		mcpServer.AddTool(t.Tool, t.Handler)
	}
	for _, r := range s.resources() {
		mcpServer.AddResource(r.resource, r.handler)
	}
	for _, p := range s.prompts() {
		mcpServer.AddPrompt(p.prompt, p.handler)
	}

	s.mcp = mcpServer
	return s
}

// instructions describes the service to the connecting agent.
func instructions() string {
	return `You are connected to the Enterprise Triage Assistant MCP server.

It maintains an in-memory support-ticket queue and a small knowledge base.

Available tools:
- create_ticket: file a new support ticket
- update_ticket_status: move a ticket between OPEN, IN_PROGRESS, RESOLVED, CLOSED
- search_knowledge_base: keyword search over support articles

Available resources:
- system://health: operational health and ticket counts
- system://ticket_queue: all open tickets as JSON
- system://logs: the most recent server activity lines

The triage_expert prompt provides a triage workflow for the ticket queue.
Ticket state is process-local and is discarded when the server exits.`
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	s.logger.Info("mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// ServeHTTP runs the MCP server as a Streamable HTTP server on addr until
// ctx is cancelled. addr should be a host:port string such as "127.0.0.1:8487".
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpSrv := &http.Server{Addr: addr}
	streamSrv := mcpsrv.NewStreamableHTTPServer(s.mcp,
		mcpsrv.WithStreamableHTTPServer(httpSrv),
	)

	s.logger.Info("mcp server listening on http", zap.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := streamSrv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("mcp server shutting down")
		if err := streamSrv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// tools returns all MCP tools that this server exposes.
func (s *Server) tools() []mcpsrv.ServerTool {
	return []mcpsrv.ServerTool{
		s.toolCreateTicket(),
		s.toolUpdateTicketStatus(),
		s.toolSearchKnowledgeBase(),
	}
}

// resultText is a helper that wraps text in a successful CallToolResult.
func resultText(text string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(text)
}

// resultJSON serialises v to indented JSON and returns it as a text result.
func resultJSON(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return resultText(string(data)), nil
}

// failureResult converts an error into a structured failure response with
// IsError=true. Domain errors keep their kind; anything else is reported as
// an internal error. Internal faults never escape as protocol faults.
func failureResult(err error) *mcplib.CallToolResult {
	domainErr := util.ToDomainError(err)
	body, marshalErr := json.MarshalIndent(map[string]any{
		"success":    false,
		"error_kind": domainErr.Code,
		"error":      domainErr.Message,
	}, "", "  ")
	if marshalErr != nil {
		body = []byte(domainErr.Error())
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(body))},
		IsError: true,
	}
}

// stringArg extracts a named string argument from a tool call request.
// Returns ("", false) if the argument is absent or not a string.
func stringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// int64Arg extracts a named integer argument from a tool call request. The
// MCP protocol serialises numbers as float64, so we convert accordingly.
func int64Arg(req mcplib.CallToolRequest, name string) (int64, bool) {
	args := req.GetArguments()
	if args == nil {
		return 0, false
	}
	v, ok := args[name]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}
