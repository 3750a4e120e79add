package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spec-kit/triage-assistant/internal/domain"
	"github.com/spec-kit/triage-assistant/pkg/util"
)

// TicketFilter captures listing parameters.
type TicketFilter struct {
	Statuses []domain.TicketStatus
	Limit    int
}

// TicketRepository encapsulates ticket storage. The collection lives for the
// process lifetime only; identifiers are assigned sequentially at insert and
// never reused.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	Count(ctx context.Context) int
	CountByStatus(ctx context.Context) map[domain.TicketStatus]int
}

type inMemoryTicketRepository struct {
	mu      sync.RWMutex
	tickets []domain.Ticket // insertion order, ascending ID
	byID    map[int64]int   // ID -> index into tickets
	nextID  int64
}

// NewInMemoryTicketRepository instantiates an empty repository.
func NewInMemoryTicketRepository() TicketRepository {
	return &inMemoryTicketRepository{
		byID:   make(map[int64]int),
		nextID: 1,
	}
}

// Insert stores the ticket and assigns it the next sequential identifier.
func (r *inMemoryTicketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket.ID = r.nextID
	r.nextID++
	r.byID[ticket.ID] = len(r.tickets)
	r.tickets = append(r.tickets, *ticket)
	return nil
}

// Update replaces the stored record and refreshes its UpdatedAt timestamp.
func (r *inMemoryTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byID[ticket.ID]
	if !ok {
		return util.NewNotFound("ticket", map[string]any{"ticket_id": ticket.ID})
	}
	ticket.UpdatedAt = time.Now()
	r.tickets[idx] = *ticket
	return nil
}

func (r *inMemoryTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, util.NewNotFound(fmt.Sprintf("ticket #%d", id), map[string]any{"ticket_id": id})
	}
	ticket := r.tickets[idx]
	return &ticket, nil
}

// ListWithFilter returns tickets matching the filter in ascending ID order.
// An empty status filter matches every ticket.
func (r *inMemoryTicketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		if !matchesStatus(ticket.Status, filter.Statuses) {
			continue
		}
		out = append(out, ticket)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *inMemoryTicketRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tickets)
}

func (r *inMemoryTicketRepository) CountByStatus(ctx context.Context) map[domain.TicketStatus]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[domain.TicketStatus]int, len(domain.TicketStatuses()))
	for _, status := range domain.TicketStatuses() {
		counts[status] = 0
	}
	for _, ticket := range r.tickets {
		counts[ticket.Status]++
	}
	return counts
}

func matchesStatus(status domain.TicketStatus, wanted []domain.TicketStatus) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, s := range wanted {
		if status == s {
			return true
		}
	}
	return false
}
