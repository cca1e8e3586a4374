package unit

import (
	"context"
	"testing"
	"time"

	"agora/contexts/governance/poll-service/application/workers"
	httptransport "agora/contexts/governance/poll-service/transport/http"
	"agora/internal/shared/events"
)

type capturingPublisher struct {
	published []events.Envelope
}

func (p *capturingPublisher) Publish(_ context.Context, _ string, event events.Envelope) error {
	p.published = append(p.published, event)
	return nil
}

func TestOutboxRelayPublishesVoteEvents(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module := newPollModule(t, now)
	module.Store.SeedVoter("voter-1")
	session := openSession(t, module)

	vote, err := module.Handler.CastVoteHandler(context.Background(), httptransport.CastVoteRequest{
		VoterID:   "voter-1",
		SessionID: session.SessionID,
		Option:    "YES",
	})
	if err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}
	if _, err := module.Handler.ChangeVoteHandler(context.Background(), vote.VoteID, httptransport.ChangeVoteRequest{Option: "NO"}); err != nil {
		t.Fatalf("change vote failed: %v", err)
	}

	publisher := &capturingPublisher{}
	relay := workers.OutboxRelay{
		Outbox:    module.Store,
		Publisher: publisher,
		Clock:     module.Store,
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.published) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.published))
	}
	types := map[string]bool{}
	for _, event := range publisher.published {
		types[event.EventType] = true
		if event.EntityID != vote.VoteID {
			t.Fatalf("expected entity id %s, got %s", vote.VoteID, event.EntityID)
		}
	}
	if !types["vote.cast"] || !types["vote.changed"] {
		t.Fatalf("expected vote.cast and vote.changed, got %v", types)
	}

	// A second run finds nothing pending.
	publisher.published = nil
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second relay run failed: %v", err)
	}
	if len(publisher.published) != 0 {
		t.Fatalf("expected no republished events, got %d", len(publisher.published))
	}
}
