package service

import (
	"context"
	"fmt"

	"github.com/spec-kit/triage-assistant/internal/domain"
	"github.com/spec-kit/triage-assistant/internal/events"
	"github.com/spec-kit/triage-assistant/internal/repository"
)

func strPtr(s string) *string { return &s }

// SeedDemoTickets pre-populates the repository with sample tickets. Seeding
// writes a single activity line rather than one per ticket, so the feed
// starts in a known state.
func SeedDemoTickets(ctx context.Context, tickets repository.TicketRepository, dispatcher events.Dispatcher) error {
	seeds := []struct {
		title       string
		description string
		priority    domain.TicketPriority
		status      domain.TicketStatus
		assignedTo  *string
	}{
		{
			title:       "System Outage - Payment Processing Down",
			description: "Users cannot complete payments. Error 500 on checkout endpoint.",
			priority:    domain.TicketPriorityHigh,
			status:      domain.TicketStatusOpen,
			assignedTo:  strPtr("SRE Team"),
		},
		{
			title:       "Feature Request: Dark Mode",
			description: "Users have requested a dark mode theme for the application.",
			priority:    domain.TicketPriorityLow,
			status:      domain.TicketStatusOpen,
		},
		{
			title:       "Login Page Loading Slowly",
			description: "Users report 5-10 second load times on the login page.",
			priority:    domain.TicketPriorityMedium,
			status:      domain.TicketStatusInProgress,
			assignedTo:  strPtr("App Support"),
		},
	}

	for _, seed := range seeds {
		ticket, err := domain.NewTicket(seed.title, seed.description, seed.priority, seed.assignedTo)
		if err != nil {
			return fmt.Errorf("seed ticket %q: %w", seed.title, err)
		}
		ticket.Status = seed.status
		if err := tickets.Insert(ctx, ticket); err != nil {
			return fmt.Errorf("seed ticket %q: %w", seed.title, err)
		}
	}

	if dispatcher != nil {
		if err := dispatcher.Publish(ctx, events.Event{
			Type: events.EventSystemStarted,
			Payload: events.SystemStartedPayload{
				Message: fmt.Sprintf("Database initialized with %d pre-populated tickets", len(seeds)),
			},
		}); err != nil {
			return err
		}
	}
	return nil
}
