package mcp

import (
	"encoding/json"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resourceText returns the text of the first TextResourceContents entry.
func resourceText(t *testing.T, contents []mcplib.ResourceContents) string {
	t.Helper()
	require.NotEmpty(t, contents)
	text, ok := contents[0].(mcplib.TextResourceContents)
	require.True(t, ok, "first content item is not TextResourceContents")
	assert.Equal(t, "application/json", text.MIMEType)
	return text.Text
}

func TestHandleHealthResource(t *testing.T) {
	srv := newTestServer(t)
	createTicket(t, srv, "one", "LOW")
	createTicket(t, srv, "two", "HIGH")

	contents, err := srv.handleHealthResource(t.Context(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)

	var health struct {
		Status       string         `json:"status"`
		TotalTickets int            `json:"total_tickets"`
		OpenTickets  int            `json:"open_tickets"`
		ByStatus     map[string]int `json:"by_status"`
	}
	require.NoError(t, json.Unmarshal([]byte(resourceText(t, contents)), &health))
	assert.Equal(t, "OPERATIONAL", health.Status)
	assert.Equal(t, 2, health.TotalTickets)
	assert.Equal(t, 2, health.OpenTickets)
	assert.Equal(t, 2, health.ByStatus["OPEN"])
	assert.Equal(t, 0, health.ByStatus["CLOSED"])
}

func TestHandleTicketQueueResource(t *testing.T) {
	srv := newTestServer(t)
	first := createTicket(t, srv, "first", "HIGH")
	second := createTicket(t, srv, "second", "LOW")

	// Move the first ticket out of the queue.
	result, err := srv.handleUpdateTicketStatus(t.Context(), toolReq(map[string]any{
		"ticket_id": float64(first),
		"status":    "IN_PROGRESS",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	contents, err := srv.handleTicketQueueResource(t.Context(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)

	var queue struct {
		Tickets []struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
		} `json:"tickets"`
		Count       int    `json:"count"`
		RetrievedAt string `json:"retrieved_at"`
	}
	require.NoError(t, json.Unmarshal([]byte(resourceText(t, contents)), &queue))
	require.Equal(t, 1, queue.Count)
	require.Len(t, queue.Tickets, 1)
	assert.Equal(t, second, queue.Tickets[0].ID)
	assert.Equal(t, "OPEN", queue.Tickets[0].Status)
	assert.NotEmpty(t, queue.RetrievedAt)
}

func TestHandleLogsResource(t *testing.T) {
	srv := newTestServer(t)

	// Seven mutations; only the last five lines should surface.
	for range 7 {
		createTicket(t, srv, "noise", "LOW")
	}

	contents, err := srv.handleLogsResource(t.Context(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)

	var logs struct {
		Logs        []string `json:"logs"`
		TotalLogs   int      `json:"total_logs"`
		ShowingLast int      `json:"showing_last"`
	}
	require.NoError(t, json.Unmarshal([]byte(resourceText(t, contents)), &logs))
	assert.Equal(t, 7, logs.TotalLogs)
	assert.Equal(t, 5, logs.ShowingLast)
	require.Len(t, logs.Logs, 5)
	// Chronological: the last line is the newest mutation.
	assert.Contains(t, logs.Logs[0], "Created ticket #3")
	assert.Contains(t, logs.Logs[4], "Created ticket #7")
}

func TestHandleLogsResource_empty(t *testing.T) {
	srv := newTestServer(t)

	contents, err := srv.handleLogsResource(t.Context(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)

	var logs struct {
		Logs        []string `json:"logs"`
		TotalLogs   int      `json:"total_logs"`
		ShowingLast int      `json:"showing_last"`
	}
	require.NoError(t, json.Unmarshal([]byte(resourceText(t, contents)), &logs))
	assert.Zero(t, logs.TotalLogs)
	assert.Empty(t, logs.Logs)
}

func TestHandleTriageExpertPrompt(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleTriageExpertPrompt(t.Context(), mcplib.GetPromptRequest{})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Messages, 1)

	content, ok := result.Messages[0].Content.(mcplib.TextContent)
	require.True(t, ok)
	assert.Contains(t, content.Text, "Senior Support Engineer")
	assert.Contains(t, content.Text, "system://ticket_queue")
	assert.Contains(t, content.Text, "search_knowledge_base")
}
