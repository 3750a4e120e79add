package mcp

import (
	"errors"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/triage-assistant/internal/events"
	"github.com/spec-kit/triage-assistant/internal/observability"
	"github.com/spec-kit/triage-assistant/internal/repository"
	"github.com/spec-kit/triage-assistant/internal/service"
	"github.com/spec-kit/triage-assistant/pkg/util"
)

// newTestServer wires a Server over a fresh in-memory store. Demo seeding is
// off so each test controls its own data.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	dispatcher := events.NewInMemoryDispatcher()
	recorder := observability.NewActivityRecorder(50, nil)
	recorder.RegisterHandlers(dispatcher)

	ticketRepo := repository.NewInMemoryTicketRepository()
	knowledgeRepo := repository.NewStaticKnowledgeRepository(repository.DefaultKnowledgeArticles())

	srv := New(Dependencies{
		Tickets: service.NewTicketService(service.TicketDependencies{
			TicketRepo: ticketRepo,
			Dispatcher: dispatcher,
		}),
		Knowledge: service.NewKnowledgeService(knowledgeRepo, dispatcher, nil),
		Activity:  recorder,
		Version:   "test",
	})
	require.NotNil(t, srv)
	return srv
}

// toolReq builds a CallToolRequest with the given argument map.
func toolReq(args map[string]any) mcplib.CallToolRequest {
	req := mcplib.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// firstText returns the text of the first TextContent in the result.
func firstText(t *testing.T, r *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, r.Content, "result has no content")
	txt, ok := r.Content[0].(mcplib.TextContent)
	require.True(t, ok, "first content item is not TextContent")
	return txt.Text
}

func TestNew(t *testing.T) {
	srv := newTestServer(t)
	assert.NotNil(t, srv.mcp)
	assert.NotNil(t, srv.tickets)
	assert.NotNil(t, srv.knowledge)
	assert.NotNil(t, srv.activity)
	assert.NotNil(t, srv.logger)
	assert.Equal(t, 5, srv.recent)
}

func TestInstructions(t *testing.T) {
	got := instructions()
	assert.Contains(t, got, "create_ticket")
	assert.Contains(t, got, "update_ticket_status")
	assert.Contains(t, got, "search_knowledge_base")
	assert.Contains(t, got, "system://ticket_queue")
}

func TestStringArg(t *testing.T) {
	req := toolReq(map[string]any{"title": "hello", "count": 3})

	v, ok := stringArg(req, "title")
	assert.True(t, ok)
	assert.Equal(t, "hello", v)

	_, ok = stringArg(req, "count")
	assert.False(t, ok)

	_, ok = stringArg(req, "missing")
	assert.False(t, ok)

	_, ok = stringArg(mcplib.CallToolRequest{}, "title")
	assert.False(t, ok)
}

func TestInt64Arg(t *testing.T) {
	// JSON numbers arrive as float64.
	req := toolReq(map[string]any{"ticket_id": float64(12), "name": "x"})

	v, ok := int64Arg(req, "ticket_id")
	assert.True(t, ok)
	assert.Equal(t, int64(12), v)

	_, ok = int64Arg(req, "name")
	assert.False(t, ok)

	_, ok = int64Arg(req, "missing")
	assert.False(t, ok)
}

func TestFailureResult(t *testing.T) {
	t.Run("domain error keeps its kind", func(t *testing.T) {
		result := failureResult(util.NewValidationError("title cannot be empty", map[string]any{"field": "title"}))
		require.True(t, result.IsError)
		text := firstText(t, result)
		assert.Contains(t, text, "VALIDATION_FAILED")
		assert.Contains(t, text, "title cannot be empty")
		assert.Contains(t, text, `"success": false`)
	})

	t.Run("generic error maps to internal", func(t *testing.T) {
		result := failureResult(errors.New("boom"))
		require.True(t, result.IsError)
		assert.Contains(t, firstText(t, result), "INTERNAL_ERROR")
	})
}
