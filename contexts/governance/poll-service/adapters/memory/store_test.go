package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"agora/contexts/governance/poll-service/domain/entities"
	domainerrors "agora/contexts/governance/poll-service/domain/errors"
	"agora/contexts/governance/poll-service/ports"
)

func seedTopicSessionVote(t *testing.T, store *Store) (entities.Topic, entities.Session, entities.Vote) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	topic := entities.Topic{TopicID: "topic-1", Title: "T", CreatedAt: now}
	session := entities.Session{
		SessionID: "session-1",
		TopicID:   topic.TopicID,
		StartTime: now,
		EndTime:   now.Add(time.Minute),
		CreatedAt: now,
	}
	vote := entities.Vote{
		VoteID:    "vote-1",
		VoterID:   "voter-1",
		SessionID: session.SessionID,
		Option:    entities.VoteOptionYes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.SaveTopic(ctx, topic); err != nil {
		t.Fatalf("save topic: %v", err)
	}
	if err := store.SaveSession(ctx, session); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if err := store.InsertVote(ctx, vote); err != nil {
		t.Fatalf("insert vote: %v", err)
	}
	return topic, session, vote
}

func TestInsertVoteDuplicateVoterAndSession(t *testing.T) {
	store := NewStore()
	_, session, _ := seedTopicSessionVote(t, store)

	err := store.InsertVote(context.Background(), entities.Vote{
		VoteID:    "vote-2",
		VoterID:   "voter-1",
		SessionID: session.SessionID,
		Option:    entities.VoteOptionNo,
	})
	if !errors.Is(err, domainerrors.ErrVoteAlreadyCast) {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}

	// Same voter in a different session is fine.
	other := entities.Session{SessionID: "session-2", TopicID: "topic-1"}
	if err := store.SaveSession(context.Background(), other); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if err := store.InsertVote(context.Background(), entities.Vote{
		VoteID:    "vote-3",
		VoterID:   "voter-1",
		SessionID: other.SessionID,
		Option:    entities.VoteOptionNo,
	}); err != nil {
		t.Fatalf("vote in another session should succeed: %v", err)
	}
}

func TestCountVotesIgnoresOrphans(t *testing.T) {
	store := NewStore()
	topic, session, _ := seedTopicSessionVote(t, store)
	ctx := context.Background()

	count, err := store.CountVotesByTopicAndOption(ctx, topic.TopicID, entities.VoteOptionYes)
	if err != nil {
		t.Fatalf("count votes: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 yes vote, got %d", count)
	}

	// A vote whose session is gone must not be counted.
	if err := store.DeleteSession(ctx, session.SessionID); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	count, err = store.CountVotesByTopicAndOption(ctx, topic.TopicID, entities.VoteOptionYes)
	if err != nil {
		t.Fatalf("count votes: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected orphaned vote excluded, got %d", count)
	}
}

func TestInTxRestoresSnapshotOnError(t *testing.T) {
	store := NewStore()
	topic, session, vote := seedTopicSessionVote(t, store)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.InTx(ctx, func(tx ports.RepositorySet) error {
		if err := tx.Votes.DeleteVotesByTopic(ctx, topic.TopicID); err != nil {
			return err
		}
		if err := tx.Sessions.DeleteSessionsByTopic(ctx, topic.TopicID); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the inner error, got %v", err)
	}

	if _, err := store.GetSession(ctx, session.SessionID); err != nil {
		t.Fatalf("session should be restored after rollback: %v", err)
	}
	if _, err := store.GetVote(ctx, vote.VoteID); err != nil {
		t.Fatalf("vote should be restored after rollback: %v", err)
	}
}

func TestInTxCommitsOnSuccess(t *testing.T) {
	store := NewStore()
	topic, session, vote := seedTopicSessionVote(t, store)
	ctx := context.Background()

	err := store.InTx(ctx, func(tx ports.RepositorySet) error {
		if err := tx.Votes.DeleteVotesByTopic(ctx, topic.TopicID); err != nil {
			return err
		}
		if err := tx.Sessions.DeleteSessionsByTopic(ctx, topic.TopicID); err != nil {
			return err
		}
		return tx.Topics.DeleteTopic(ctx, topic.TopicID)
	})
	if err != nil {
		t.Fatalf("cascade should succeed: %v", err)
	}

	if _, err := store.GetTopic(ctx, topic.TopicID); !errors.Is(err, domainerrors.ErrTopicNotFound) {
		t.Fatalf("expected topic gone, got %v", err)
	}
	if _, err := store.GetSession(ctx, session.SessionID); !errors.Is(err, domainerrors.ErrSessionNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
	if _, err := store.GetVote(ctx, vote.VoteID); !errors.Is(err, domainerrors.ErrVoteNotFound) {
		t.Fatalf("expected vote gone, got %v", err)
	}
}
