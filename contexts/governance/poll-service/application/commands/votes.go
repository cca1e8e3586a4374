package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "agora/contexts/governance/poll-service/application"
	"agora/contexts/governance/poll-service/domain/entities"
	domainerrors "agora/contexts/governance/poll-service/domain/errors"
	"agora/contexts/governance/poll-service/ports"
)

// CastVoteCommand records one voter's choice for a session.
type CastVoteCommand struct {
	VoterID   string
	SessionID string
	Option    entities.VoteOption
}

// ChangeVoteCommand replaces the option of an existing vote. The session
// binding is immutable.
type ChangeVoteCommand struct {
	VoteID string
	Option entities.VoteOption
}

// VoteUseCase owns the vote write path. The (voter, session) uniqueness is
// ultimately settled by the storage constraint behind InsertVote; this layer
// only sequences the eligibility checks around it.
type VoteUseCase struct {
	Votes    ports.VoteRepository
	Sessions ports.SessionRepository
	Topics   ports.TopicRepository
	Voters   ports.VoterDirectory
	Outbox   ports.OutboxWriter
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc VoteUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (entities.Vote, error) {
	logger := application.ResolveLogger(uc.Logger)

	if cmd.Option != entities.VoteOptionYes && cmd.Option != entities.VoteOptionNo {
		logger.Warn("vote cast validation failed",
			"event", "poll_vote_cast_validation_failed",
			"module", "governance/poll-service",
			"layer", "application",
			"voter_id", strings.TrimSpace(cmd.VoterID),
			"session_id", strings.TrimSpace(cmd.SessionID),
		)
		return entities.Vote{}, domainerrors.ErrInvalidVoteInput
	}

	session, err := uc.Sessions.GetSession(ctx, strings.TrimSpace(cmd.SessionID))
	if err != nil {
		return entities.Vote{}, err
	}

	now := uc.now()
	if !session.IsOpenAt(now) {
		logger.Warn("vote cast rejected outside open window",
			"event", "poll_vote_cast_window_rejected",
			"module", "governance/poll-service",
			"layer", "application",
			"session_id", session.SessionID,
			"state", string(session.StateAt(now)),
		)
		return entities.Vote{}, domainerrors.ErrVotingNotAllowed
	}

	exists, err := uc.Voters.VoterExists(ctx, strings.TrimSpace(cmd.VoterID))
	if err != nil {
		return entities.Vote{}, err
	}
	if !exists {
		return entities.Vote{}, domainerrors.ErrVoterNotFound
	}

	voteID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Vote{}, err
	}
	vote := entities.Vote{
		VoteID:    voteID,
		VoterID:   strings.TrimSpace(cmd.VoterID),
		SessionID: session.SessionID,
		Option:    cmd.Option,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.Votes.InsertVote(ctx, vote); err != nil {
		// The constrained insert is the authoritative uniqueness check; a
		// concurrent duplicate loses here, not at a pre-check.
		return entities.Vote{}, err
	}
	if err := uc.appendVoteEvent(ctx, "vote.cast", vote, now); err != nil {
		return entities.Vote{}, err
	}

	logger.Info("vote cast",
		"event", "poll_vote_cast",
		"module", "governance/poll-service",
		"layer", "application",
		"vote_id", vote.VoteID,
		"session_id", vote.SessionID,
		"voter_id", vote.VoterID,
	)
	return vote, nil
}

func (uc VoteUseCase) ChangeVote(ctx context.Context, cmd ChangeVoteCommand) (entities.Vote, error) {
	logger := application.ResolveLogger(uc.Logger)

	if cmd.Option != entities.VoteOptionYes && cmd.Option != entities.VoteOptionNo {
		return entities.Vote{}, domainerrors.ErrInvalidVoteInput
	}

	vote, err := uc.Votes.GetVote(ctx, strings.TrimSpace(cmd.VoteID))
	if err != nil {
		return entities.Vote{}, err
	}
	session, err := uc.Sessions.GetSession(ctx, vote.SessionID)
	if err != nil {
		return entities.Vote{}, err
	}

	now := uc.now()
	if !session.IsOpenAt(now) {
		logger.Warn("vote change rejected outside open window",
			"event", "poll_vote_change_window_rejected",
			"module", "governance/poll-service",
			"layer", "application",
			"vote_id", vote.VoteID,
			"session_id", session.SessionID,
			"state", string(session.StateAt(now)),
		)
		return entities.Vote{}, domainerrors.ErrVotingNotAllowed
	}

	vote.Option = cmd.Option
	vote.UpdatedAt = now
	if err := uc.Votes.UpdateVote(ctx, vote); err != nil {
		return entities.Vote{}, err
	}
	if err := uc.appendVoteEvent(ctx, "vote.changed", vote, now); err != nil {
		return entities.Vote{}, err
	}

	logger.Info("vote changed",
		"event", "poll_vote_changed",
		"module", "governance/poll-service",
		"layer", "application",
		"vote_id", vote.VoteID,
		"session_id", vote.SessionID,
	)
	return vote, nil
}

func (uc VoteUseCase) DeleteVote(ctx context.Context, voteID string) error {
	logger := application.ResolveLogger(uc.Logger)

	if _, err := uc.Votes.GetVote(ctx, strings.TrimSpace(voteID)); err != nil {
		return err
	}
	if err := uc.Votes.DeleteVote(ctx, strings.TrimSpace(voteID)); err != nil {
		return err
	}

	logger.Info("vote deleted",
		"event", "poll_vote_deleted",
		"module", "governance/poll-service",
		"layer", "application",
		"vote_id", strings.TrimSpace(voteID),
	)
	return nil
}

func (uc VoteUseCase) DeleteVotesByTopic(ctx context.Context, topicID string) error {
	logger := application.ResolveLogger(uc.Logger)

	if _, err := uc.Topics.GetTopic(ctx, strings.TrimSpace(topicID)); err != nil {
		return err
	}
	if err := uc.Votes.DeleteVotesByTopic(ctx, strings.TrimSpace(topicID)); err != nil {
		return err
	}

	logger.Info("votes deleted by topic",
		"event", "poll_votes_deleted_by_topic",
		"module", "governance/poll-service",
		"layer", "application",
		"topic_id", strings.TrimSpace(topicID),
	)
	return nil
}

func (uc VoteUseCase) DeleteVotesBySession(ctx context.Context, sessionID string) error {
	logger := application.ResolveLogger(uc.Logger)

	if _, err := uc.Sessions.GetSession(ctx, strings.TrimSpace(sessionID)); err != nil {
		return err
	}
	if err := uc.Votes.DeleteVotesBySession(ctx, strings.TrimSpace(sessionID)); err != nil {
		return err
	}

	logger.Info("votes deleted by session",
		"event", "poll_votes_deleted_by_session",
		"module", "governance/poll-service",
		"layer", "application",
		"session_id", strings.TrimSpace(sessionID),
	)
	return nil
}

func (uc VoteUseCase) appendVoteEvent(ctx context.Context, eventType string, vote entities.Vote, occurredAt time.Time) error {
	// Outbox is optional for pure read/test wiring, so nil is treated as no-op.
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, newPollEnvelope(eventID, eventType, "vote", vote.VoteID, occurredAt, map[string]any{
		"vote_id":     vote.VoteID,
		"session_id":  vote.SessionID,
		"voter_id":    vote.VoterID,
		"option":      string(vote.Option),
		"occurred_at": occurredAt.Format(time.RFC3339),
	}))
}

func (uc VoteUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
