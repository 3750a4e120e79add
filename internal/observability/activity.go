package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-assistant/internal/events"
)

const activityTimeFormat = "2006-01-02 15:04:05"

// ActivityRecorder keeps a bounded in-memory feed of recent activity lines.
// It subscribes to the event dispatcher so every mutating operation leaves a
// trace readable through the logs resource. Lines are rendered as
// "[timestamp] message".
type ActivityRecorder struct {
	mu       sync.Mutex
	lines    []string
	capacity int
	logger   *zap.Logger
}

// NewActivityRecorder initializes the feed storage.
func NewActivityRecorder(capacity int, logger *zap.Logger) *ActivityRecorder {
	if capacity <= 0 {
		capacity = 50
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityRecorder{
		capacity: capacity,
		logger:   logger,
	}
}

// RegisterHandlers subscribes to all event types.
func (r *ActivityRecorder) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range events.EventTypes() {
		dispatcher.Subscribe(eventType, r.handleEvent)
	}
}

func (r *ActivityRecorder) handleEvent(ctx context.Context, event events.Event) error {
	message := describeEvent(event)
	if message == "" {
		return nil
	}
	r.Record(event.Timestamp, message)
	return nil
}

// Record appends a line to the feed, evicting the oldest entry once the
// retention capacity is exceeded.
func (r *ActivityRecorder) Record(ts time.Time, message string) {
	if ts.IsZero() {
		ts = time.Now()
	}
	line := fmt.Sprintf("[%s] %s", ts.Format(activityTimeFormat), message)

	r.mu.Lock()
	r.lines = append(r.lines, line)
	if len(r.lines) > r.capacity {
		r.lines = r.lines[1:]
	}
	r.mu.Unlock()

	r.logger.Info(message)
}

// Recent returns at most n lines in chronological order, newest last.
func (r *ActivityRecorder) Recent(n int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= 0 || n > len(r.lines) {
		n = len(r.lines)
	}
	out := make([]string, n)
	copy(out, r.lines[len(r.lines)-n:])
	return out
}

// Len returns the number of retained lines.
func (r *ActivityRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lines)
}

func describeEvent(event events.Event) string {
	switch payload := event.Payload.(type) {
	case events.SystemStartedPayload:
		return payload.Message
	case events.TicketCreatedPayload:
		return fmt.Sprintf("Created ticket #%d: %s (%s)", event.TicketID, payload.Title, payload.Priority)
	case events.TicketStatusChangedPayload:
		return fmt.Sprintf("Updated ticket #%d: %s -> %s", event.TicketID, payload.OldStatus, payload.NewStatus)
	case events.KnowledgeSearchedPayload:
		return fmt.Sprintf("Knowledge base search: %q -> %d results", payload.Query, payload.Results)
	default:
		return ""
	}
}
