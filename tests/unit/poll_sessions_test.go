package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	pollservice "agora/contexts/governance/poll-service"
	domainerrors "agora/contexts/governance/poll-service/domain/errors"
	httptransport "agora/contexts/governance/poll-service/transport/http"
)

func newPollModule(t *testing.T, now time.Time) pollservice.Module {
	t.Helper()
	module := pollservice.NewInMemoryModule(nil)
	module.Store.SetNow(now)
	return module
}

func createTopic(t *testing.T, module pollservice.Module, title string) httptransport.TopicResponse {
	t.Helper()
	topic, err := module.Handler.CreateTopicHandler(context.Background(), httptransport.CreateTopicRequest{Title: title})
	if err != nil {
		t.Fatalf("create topic failed: %v", err)
	}
	return topic
}

func TestCreateSessionDefaultsToOneMinuteFromNow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module := newPollModule(t, now)
	topic := createTopic(t, module, "Budget approval")

	session, err := module.Handler.CreateSessionHandler(context.Background(), httptransport.CreateSessionRequest{
		TopicID: topic.TopicID,
	})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	if !session.StartTime.Equal(now) {
		t.Fatalf("expected start %v, got %v", now, session.StartTime)
	}
	if !session.EndTime.Equal(now.Add(time.Minute)) {
		t.Fatalf("expected end %v, got %v", now.Add(time.Minute), session.EndTime)
	}
	if session.State != "open" {
		t.Fatalf("expected a session starting now to be open, got %q", session.State)
	}
}

func TestCreateSessionRejectsZeroDuration(t *testing.T) {
	module := newPollModule(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	topic := createTopic(t, module, "Budget approval")

	zero := 0
	_, err := module.Handler.CreateSessionHandler(context.Background(), httptransport.CreateSessionRequest{
		TopicID:         topic.TopicID,
		DurationMinutes: &zero,
	})
	if !errors.Is(err, domainerrors.ErrInvalidSessionInput) {
		t.Fatalf("expected invalid session input, got %v", err)
	}
}

func TestCreateSessionUnknownTopic(t *testing.T) {
	module := newPollModule(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	_, err := module.Handler.CreateSessionHandler(context.Background(), httptransport.CreateSessionRequest{
		TopicID: "missing-topic",
	})
	if !errors.Is(err, domainerrors.ErrTopicNotFound) {
		t.Fatalf("expected topic not found, got %v", err)
	}
}

func TestUpdateSessionOnlyWhileScheduled(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module := newPollModule(t, now)
	topic := createTopic(t, module, "Budget approval")

	start := now.Add(time.Hour)
	session, err := module.Handler.CreateSessionHandler(context.Background(), httptransport.CreateSessionRequest{
		TopicID:   topic.TopicID,
		StartTime: &start,
	})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}

	newStart := now.Add(2 * time.Hour)
	ten := 10
	updated, err := module.Handler.UpdateSessionHandler(context.Background(), session.SessionID, httptransport.UpdateSessionRequest{
		StartTime:       &newStart,
		DurationMinutes: &ten,
	})
	if err != nil {
		t.Fatalf("update of a scheduled session should succeed: %v", err)
	}
	if !updated.EndTime.Equal(newStart.Add(10 * time.Minute)) {
		t.Fatalf("expected end %v, got %v", newStart.Add(10*time.Minute), updated.EndTime)
	}

	// Move the clock inside the window; the session is now open.
	module.Store.SetNow(newStart.Add(time.Minute))
	_, err = module.Handler.UpdateSessionHandler(context.Background(), session.SessionID, httptransport.UpdateSessionRequest{
		DurationMinutes: &ten,
	})
	if !errors.Is(err, domainerrors.ErrSessionOpen) {
		t.Fatalf("expected session open rejection, got %v", err)
	}

	// And past the window; the session is closed.
	module.Store.SetNow(newStart.Add(time.Hour))
	_, err = module.Handler.UpdateSessionHandler(context.Background(), session.SessionID, httptransport.UpdateSessionRequest{
		DurationMinutes: &ten,
	})
	if !errors.Is(err, domainerrors.ErrSessionClosed) {
		t.Fatalf("expected session closed rejection, got %v", err)
	}
}

func TestSessionStateIsDerivedOnRead(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module := newPollModule(t, now)
	topic := createTopic(t, module, "Budget approval")

	start := now.Add(time.Hour)
	session, err := module.Handler.CreateSessionHandler(context.Background(), httptransport.CreateSessionRequest{
		TopicID:   topic.TopicID,
		StartTime: &start,
	})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	if session.State != "scheduled" {
		t.Fatalf("expected scheduled before the window, got %q", session.State)
	}

	module.Store.SetNow(start)
	got, err := module.Handler.GetSessionHandler(context.Background(), session.SessionID)
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if got.State != "open" {
		t.Fatalf("expected open at the exact start instant, got %q", got.State)
	}

	module.Store.SetNow(start.Add(time.Minute).Add(time.Second))
	got, err = module.Handler.GetSessionHandler(context.Background(), session.SessionID)
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if got.State != "closed" {
		t.Fatalf("expected closed after the window, got %q", got.State)
	}
}

func TestListSessionsByUnknownTopic(t *testing.T) {
	module := newPollModule(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	_, err := module.Handler.ListSessionsByTopicHandler(context.Background(), "missing-topic", paginationRequest(0, 20))
	if !errors.Is(err, domainerrors.ErrTopicNotFound) {
		t.Fatalf("expected topic not found, got %v", err)
	}
}
