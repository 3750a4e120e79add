package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/triage-assistant/pkg/util"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// TicketStatuses lists valid statuses in declaration order.
func TicketStatuses() []TicketStatus {
	return []TicketStatus{
		TicketStatusOpen,
		TicketStatusInProgress,
		TicketStatusResolved,
		TicketStatusClosed,
	}
}

// ParseTicketStatus validates a raw status value.
func ParseTicketStatus(raw string) (TicketStatus, error) {
	status := TicketStatus(strings.ToUpper(strings.TrimSpace(raw)))
	for _, s := range TicketStatuses() {
		if status == s {
			return status, nil
		}
	}
	return "", util.NewValidationError(
		fmt.Sprintf("invalid status %q", raw),
		map[string]any{"field": "status", "allowed": TicketStatuses()},
	)
}

// TicketPriority enumerates triage urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "LOW"
	TicketPriorityMedium   TicketPriority = "MEDIUM"
	TicketPriorityHigh     TicketPriority = "HIGH"
	TicketPriorityCritical TicketPriority = "CRITICAL"
)

// TicketPriorities lists valid priorities in declaration order.
func TicketPriorities() []TicketPriority {
	return []TicketPriority{
		TicketPriorityLow,
		TicketPriorityMedium,
		TicketPriorityHigh,
		TicketPriorityCritical,
	}
}

// ParseTicketPriority validates a raw priority value.
func ParseTicketPriority(raw string) (TicketPriority, error) {
	priority := TicketPriority(strings.ToUpper(strings.TrimSpace(raw)))
	for _, p := range TicketPriorities() {
		if priority == p {
			return priority, nil
		}
	}
	return "", util.NewValidationError(
		fmt.Sprintf("invalid priority %q", raw),
		map[string]any{"field": "priority", "allowed": TicketPriorities()},
	)
}

const (
	maxTitleLength       = 200
	maxDescriptionLength = 1000
)

// Ticket is the aggregate for support requests. The ID is assigned by the
// repository at insert time and never changes afterwards.
type Ticket struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    TicketPriority `json:"priority"`
	Status      TicketStatus   `json:"status"`
	AssignedTo  *string        `json:"assigned_to,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewTicket builds a ticket in the OPEN state with both timestamps set to now.
func NewTicket(title, description string, priority TicketPriority, assignedTo *string) (*Ticket, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, util.NewValidationError(
			"title cannot be empty or whitespace only",
			map[string]any{"field": "title"},
		)
	}
	if len(title) > maxTitleLength {
		return nil, util.NewValidationError(
			fmt.Sprintf("title exceeds %d characters", maxTitleLength),
			map[string]any{"field": "title"},
		)
	}
	description = strings.TrimSpace(description)
	if len(description) > maxDescriptionLength {
		return nil, util.NewValidationError(
			fmt.Sprintf("description exceeds %d characters", maxDescriptionLength),
			map[string]any{"field": "description"},
		)
	}
	priority, err := ParseTicketPriority(string(priority))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Ticket{
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      TicketStatusOpen,
		AssignedTo:  assignedTo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
