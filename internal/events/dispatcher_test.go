package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishReachesSubscribersOfType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var banned, deleted int
	d.Subscribe(EventUserBanned, func(context.Context, Event) error { banned++; return nil })
	d.Subscribe(EventUserDeleted, func(context.Context, Event) error { deleted++; return nil })

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserBanned, UserID: "u1"}))
	assert.Equal(t, 1, banned)
	assert.Zero(t, deleted)
}

func TestDispatcher_FailingHandlerDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")

	var calls int
	d.Subscribe(EventUserPatched, func(context.Context, Event) error { calls++; return boom })
	d.Subscribe(EventUserPatched, func(context.Context, Event) error { calls++; return nil })

	err := d.Publish(context.Background(), Event{Type: EventUserPatched})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestDispatcher_NoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventUserUnbanned}))
}
