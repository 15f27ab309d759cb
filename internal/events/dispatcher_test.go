package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var got []Event
	dispatcher.Subscribe(EventCatalogChanged, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	event := Event{ID: "1", Type: EventCatalogChanged, Payload: CatalogChangedPayload{Entity: "category", Action: "created"}}
	require.NoError(t, dispatcher.Publish(context.Background(), event))
	require.Len(t, got, 1)
	require.Equal(t, "1", got[0].ID)
}

func TestDispatcherIgnoresOtherEventTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	calls := 0
	dispatcher.Subscribe(EventEnquiryReceived, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventCatalogChanged}))
	require.Zero(t, calls)
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	second := false
	dispatcher.Subscribe(EventEnquiryReceived, func(context.Context, Event) error {
		return errors.New("handler failed")
	})
	dispatcher.Subscribe(EventEnquiryReceived, func(context.Context, Event) error {
		second = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventEnquiryReceived}))
	require.True(t, second)
}
