package messaging

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"sponza/internal/shared/events"
)

func newTestBus() *Bus {
	return NewBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBusDeliversToSubscriber(t *testing.T) {
	bus := newTestBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan events.Envelope, 1)
	err := bus.Subscribe(ctx, "campaign.archived", "test-cg", func(_ context.Context, event events.Envelope) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	want := events.Envelope{
		EventID:   "evt-1",
		EventType: "campaign.archived",
		EntityID:  "cmp-expired-run",
	}
	if err := bus.Publish(ctx, "campaign.archived", want); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case got := <-received:
		if got.EventID != want.EventID || got.EntityID != want.EntityID {
			t.Fatalf("unexpected event delivered: %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive event")
	}
}

func TestBusPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := newTestBus()

	err := bus.Publish(context.Background(), "campaign.archived", events.Envelope{EventID: "evt-2"})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
}

func TestBusTopicsAreIsolated(t *testing.T) {
	bus := newTestBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan events.Envelope, 1)
	err := bus.Subscribe(ctx, "campaign.archived", "test-cg", func(_ context.Context, event events.Envelope) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := bus.Publish(ctx, "campaign.published", events.Envelope{EventID: "evt-3"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case got := <-received:
		t.Fatalf("subscriber received event from foreign topic: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}
