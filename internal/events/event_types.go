package events

import (
	"time"

	"github.com/spec-kit/triage-assistant/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSystemStarted       EventType = "system_started"
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventKnowledgeSearched   EventType = "knowledge_searched"
)

// EventTypes lists all event identifiers a subscriber may register for.
func EventTypes() []EventType {
	return []EventType{
		EventSystemStarted,
		EventTicketCreated,
		EventTicketStatusChanged,
		EventKnowledgeSearched,
	}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SystemStartedPayload payload.
type SystemStartedPayload struct {
	Message string `json:"message"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title    string                `json:"title"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// KnowledgeSearchedPayload payload.
type KnowledgeSearchedPayload struct {
	Query   string `json:"query"`
	Results int    `json:"results"`
}
