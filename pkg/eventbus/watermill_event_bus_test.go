package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowdeck/flowdeck/pkg/channels/gochannel"
	"github.com/flowdeck/flowdeck/pkg/events"
	"github.com/flowdeck/flowdeck/pkg/models"
)

func TestWatermillEventBusPublishSubscribe(t *testing.T) {
	pub, sub, err := gochannel.CreateTestChannel(watermill.NewStdLogger(false, false))
	require.NoError(t, err)

	bus := NewWatermillEventBus(pub, sub)
	defer bus.Close()

	received := make(chan any, 1)

	require.NoError(t, bus.Handle(events.WorkflowStatusAppliedEvent, func(_ context.Context, event any) error {
		received <- event

		return nil
	}))
	require.NoError(t, bus.Subscribe(t.Context()))

	event := events.WorkflowStatusApplied{
		BaseEvent: events.BaseEvent{
			ID:         bus.GenerateID(),
			Type:       events.WorkflowStatusAppliedEvent,
			Timestamp:  time.Now().UTC(),
			WorkflowID: "wf-1",
			UserID:     "user-1",
		},
		PreviousStatus: models.WorkflowStatusActive,
		NewStatus:      models.WorkflowStatusPaused,
	}

	require.NoError(t, bus.Publish(t.Context(), "wf-1", event))

	select {
	case got := <-received:
		applied, ok := got.(*events.WorkflowStatusApplied)
		require.True(t, ok)
		assert.Equal(t, "wf-1", applied.WorkflowID)
		assert.Equal(t, models.WorkflowStatusPaused, applied.NewStatus)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestWatermillEventBusGenerateID(t *testing.T) {
	pub, sub, err := gochannel.CreateTestChannel(watermill.NewStdLogger(false, false))
	require.NoError(t, err)

	bus := NewWatermillEventBus(pub, sub)
	defer bus.Close()

	assert.NotEmpty(t, bus.GenerateID())
	assert.NotEqual(t, bus.GenerateID(), bus.GenerateID())
}
