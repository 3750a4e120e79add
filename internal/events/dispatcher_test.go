package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishFillsMetadata(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got Event
	d.Subscribe(EventTicketCreated, func(_ context.Context, event Event) error {
		got = event
		return nil
	})

	err := d.Publish(t.Context(), Event{Type: EventTicketCreated, TicketID: 7})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.Timestamp.IsZero())
	assert.Equal(t, int64(7), got.TicketID)
}

func TestDispatcher_DeliversOnlyToMatchingType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var created, searched int
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		created++
		return nil
	})
	d.Subscribe(EventKnowledgeSearched, func(context.Context, Event) error {
		searched++
		return nil
	})

	require.NoError(t, d.Publish(t.Context(), Event{Type: EventTicketCreated}))
	require.NoError(t, d.Publish(t.Context(), Event{Type: EventTicketCreated}))
	assert.Equal(t, 2, created)
	assert.Zero(t, searched)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var reached bool
	d.Subscribe(EventSystemStarted, func(context.Context, Event) error {
		return errors.New("handler failure")
	})
	d.Subscribe(EventSystemStarted, func(context.Context, Event) error {
		reached = true
		return nil
	})

	require.NoError(t, d.Publish(t.Context(), Event{Type: EventSystemStarted}))
	assert.True(t, reached)
}
