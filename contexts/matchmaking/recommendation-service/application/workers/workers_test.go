package workers

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"sponza/contexts/matchmaking/recommendation-service/adapters/memory"
	"sponza/contexts/matchmaking/recommendation-service/domain/entities"
	"sponza/contexts/matchmaking/recommendation-service/ports"
)

type capturingPublisher struct {
	topics []string
	events []ports.EventEnvelope
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCampaignExpirerArchivesPastEndDate(t *testing.T) {
	store := memory.NewStore()
	expirer := CampaignExpirer{
		Campaigns: store,
		Clock:     store,
		BatchSize: 10,
		Logger:    discardLogger(),
	}

	if err := expirer.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	archived, err := store.GetCampaign(context.Background(), "cmp-expired-run")
	if err != nil {
		t.Fatalf("GetCampaign: %v", err)
	}
	if archived.Status != entities.CampaignStatusArchived {
		t.Fatalf("expected archived status, got %s", archived.Status)
	}

	// Open campaigns are untouched.
	open, err := store.GetCampaign(context.Background(), "cmp-gadget-launch")
	if err != nil {
		t.Fatalf("GetCampaign: %v", err)
	}
	if open.Status != entities.CampaignStatusPublished {
		t.Fatalf("expected published status, got %s", open.Status)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListPendingOutbox: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 outbox row, got %d", len(pending))
	}
	if pending[0].EventType != "campaign.archived" {
		t.Fatalf("unexpected outbox event type %q", pending[0].EventType)
	}
}

func TestCampaignExpirerIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	expirer := CampaignExpirer{
		Campaigns: store,
		Clock:     store,
		Logger:    discardLogger(),
	}

	if err := expirer.RunOnce(context.Background()); err != nil {
		t.Fatalf("first RunOnce: %v", err)
	}
	if err := expirer.RunOnce(context.Background()); err != nil {
		t.Fatalf("second RunOnce: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListPendingOutbox: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("repeat sweep should not duplicate outbox rows, got %d", len(pending))
	}
}

func TestOutboxRelayPublishesAndDrains(t *testing.T) {
	store := memory.NewStore()
	expirer := CampaignExpirer{
		Campaigns: store,
		Clock:     store,
		Logger:    discardLogger(),
	}
	if err := expirer.RunOnce(context.Background()); err != nil {
		t.Fatalf("expirer RunOnce: %v", err)
	}

	publisher := &capturingPublisher{}
	relay := OutboxRelay{
		Outbox:    store,
		Publisher: publisher,
		Clock:     store,
		Logger:    discardLogger(),
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay RunOnce: %v", err)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.events))
	}
	if publisher.topics[0] != "campaign.archived" {
		t.Fatalf("unexpected topic %q", publisher.topics[0])
	}
	event := publisher.events[0]
	if event.EntityID != "cmp-expired-run" || event.EntityType != "campaign" {
		t.Fatalf("unexpected event entity: %s/%s", event.EntityType, event.EntityID)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListPendingOutbox: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected drained outbox, got %d rows", len(pending))
	}
}

func TestOutboxRelayNoopOnEmptyOutbox(t *testing.T) {
	store := memory.NewStore()
	publisher := &capturingPublisher{}
	relay := OutboxRelay{
		Outbox:    store,
		Publisher: publisher,
		Clock:     store,
		Logger:    discardLogger(),
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if len(publisher.events) != 0 {
		t.Fatalf("expected no publishes, got %d", len(publisher.events))
	}
}
