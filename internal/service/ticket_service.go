package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-assistant/internal/domain"
	"github.com/spec-kit/triage-assistant/internal/events"
	"github.com/spec-kit/triage-assistant/internal/repository"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	AssignedTo  *string
}

// HealthSnapshot reports the operational state of the ticket store.
type HealthSnapshot struct {
	Status       string                      `json:"status"`
	TotalTickets int                         `json:"total_tickets"`
	OpenTickets  int                         `json:"open_tickets"`
	ByStatus     map[domain.TicketStatus]int `json:"by_status"`
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateTicket validates the input and stores a new OPEN ticket. On a
// validation failure the collection is left untouched.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	ticket, err := domain.NewTicket(input.Title, input.Description, input.Priority, input.AssignedTo)
	if err != nil {
		s.logger.Warn("create ticket rejected", zap.Error(err))
		return nil, err
	}
	if err := s.tickets.Insert(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// UpdateTicketStatus moves an existing ticket to newStatus. Any transition
// among the four statuses is allowed; UpdatedAt is refreshed on every change.
func (s *TicketService) UpdateTicketStatus(ctx context.Context, id int64, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	status, err := domain.ParseTicketStatus(string(newStatus))
	if err != nil {
		s.logger.Warn("status update rejected", zap.Int64("ticket_id", id), zap.Error(err))
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn("status update failed", zap.Int64("ticket_id", id), zap.Error(err))
		return nil, err
	}

	oldStatus := ticket.Status
	ticket.Status = status
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return ticket, nil
}

// ListOpenTickets returns all OPEN tickets in ascending ID order.
func (s *TicketService) ListOpenTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Statuses: []domain.TicketStatus{domain.TicketStatusOpen},
	})
}

// GetTicket fetches a single ticket by ID.
func (s *TicketService) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

// Health returns a snapshot of ticket counts. The open count follows the
// dashboard convention of "anything not closed".
func (s *TicketService) Health(ctx context.Context) HealthSnapshot {
	byStatus := s.tickets.CountByStatus(ctx)
	total := s.tickets.Count(ctx)
	return HealthSnapshot{
		Status:       "OPERATIONAL",
		TotalTickets: total,
		OpenTickets:  total - byStatus[domain.TicketStatusClosed],
		ByStatus:     byStatus,
	}
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
