package unit

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	pollservice "agora/contexts/governance/poll-service"
	domainerrors "agora/contexts/governance/poll-service/domain/errors"
	httptransport "agora/contexts/governance/poll-service/transport/http"
)

func castVotes(t *testing.T, module pollservice.Module, sessionID string, yes, no int) {
	t.Helper()
	for i := 0; i < yes+no; i++ {
		voterID := "voter-" + strconv.Itoa(i)
		module.Store.SeedVoter(voterID)
		option := "YES"
		if i >= yes {
			option = "NO"
		}
		_, err := module.Handler.CastVoteHandler(context.Background(), httptransport.CastVoteRequest{
			VoterID:   voterID,
			SessionID: sessionID,
			Option:    option,
		})
		if err != nil {
			t.Fatalf("cast vote %d failed: %v", i, err)
		}
	}
}

func TestTopicResultsRoundsHalfUp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module := newPollModule(t, now)
	session := openSession(t, module)

	// 2 yes / 1 no is 66.66..%, which rounds up to 67.
	castVotes(t, module, session.SessionID, 2, 1)

	results, err := module.Handler.TopicResultsHandler(context.Background(), session.TopicID)
	if err != nil {
		t.Fatalf("topic results failed: %v", err)
	}
	if results.SessionsCount != 1 {
		t.Fatalf("expected 1 session, got %d", results.SessionsCount)
	}
	if results.YesCount != 2 || results.NoCount != 1 {
		t.Fatalf("expected 2 yes / 1 no, got %d / %d", results.YesCount, results.NoCount)
	}
	if results.YesPercentage != 67 {
		t.Fatalf("expected 67%%, got %d%%", results.YesPercentage)
	}
}

func TestTopicResultsSingleYesVote(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module := newPollModule(t, now)
	session := openSession(t, module)

	castVotes(t, module, session.SessionID, 1, 0)

	results, err := module.Handler.TopicResultsHandler(context.Background(), session.TopicID)
	if err != nil {
		t.Fatalf("topic results failed: %v", err)
	}
	if results.YesPercentage != 100 {
		t.Fatalf("expected 100%%, got %d%%", results.YesPercentage)
	}
}

func TestTopicResultsNoVotes(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module := newPollModule(t, now)
	topic := createTopic(t, module, "Budget approval")

	results, err := module.Handler.TopicResultsHandler(context.Background(), topic.TopicID)
	if err != nil {
		t.Fatalf("topic results failed: %v", err)
	}
	if results.SessionsCount != 0 || results.YesCount != 0 || results.NoCount != 0 {
		t.Fatalf("expected empty tally, got %+v", results)
	}
	if results.YesPercentage != 0 {
		t.Fatalf("expected 0%% with no votes, got %d%%", results.YesPercentage)
	}
}

func TestTopicResultsUnknownTopic(t *testing.T) {
	module := newPollModule(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	_, err := module.Handler.TopicResultsHandler(context.Background(), "missing-topic")
	if !errors.Is(err, domainerrors.ErrTopicNotFound) {
		t.Fatalf("expected topic not found, got %v", err)
	}
}

func TestDeleteTopicCascades(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module := newPollModule(t, now)
	session := openSession(t, module)
	castVotes(t, module, session.SessionID, 1, 1)

	votes, err := module.Handler.ListVotesBySessionHandler(context.Background(), session.SessionID, paginationRequest(0, 20))
	if err != nil {
		t.Fatalf("list votes failed: %v", err)
	}
	if len(votes.Items) != 2 {
		t.Fatalf("expected 2 votes before delete, got %d", len(votes.Items))
	}

	if err := module.Handler.DeleteTopicHandler(context.Background(), session.TopicID); err != nil {
		t.Fatalf("delete topic failed: %v", err)
	}

	if _, err := module.Handler.GetTopicHandler(context.Background(), session.TopicID); !errors.Is(err, domainerrors.ErrTopicNotFound) {
		t.Fatalf("expected topic gone, got %v", err)
	}
	if _, err := module.Handler.GetSessionHandler(context.Background(), session.SessionID); !errors.Is(err, domainerrors.ErrSessionNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
	if _, err := module.Handler.GetVoteHandler(context.Background(), votes.Items[0].VoteID); !errors.Is(err, domainerrors.ErrVoteNotFound) {
		t.Fatalf("expected vote gone, got %v", err)
	}
}

func TestDeleteSessionCascadesVotesOnly(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module := newPollModule(t, now)
	session := openSession(t, module)
	castVotes(t, module, session.SessionID, 1, 0)

	votes, err := module.Handler.ListVotesBySessionHandler(context.Background(), session.SessionID, paginationRequest(0, 20))
	if err != nil {
		t.Fatalf("list votes failed: %v", err)
	}

	if err := module.Handler.DeleteSessionHandler(context.Background(), session.SessionID); err != nil {
		t.Fatalf("delete session failed: %v", err)
	}

	if _, err := module.Handler.GetSessionHandler(context.Background(), session.SessionID); !errors.Is(err, domainerrors.ErrSessionNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
	if _, err := module.Handler.GetVoteHandler(context.Background(), votes.Items[0].VoteID); !errors.Is(err, domainerrors.ErrVoteNotFound) {
		t.Fatalf("expected vote gone, got %v", err)
	}
	if _, err := module.Handler.GetTopicHandler(context.Background(), session.TopicID); err != nil {
		t.Fatalf("topic should survive a session delete: %v", err)
	}
}

func TestDeleteTopicCascadeUnknownTopic(t *testing.T) {
	module := newPollModule(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	err := module.Handler.DeleteTopicHandler(context.Background(), "missing-topic")
	if !errors.Is(err, domainerrors.ErrTopicNotFound) {
		t.Fatalf("expected topic not found, got %v", err)
	}
}
