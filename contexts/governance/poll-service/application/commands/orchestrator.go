package commands

import (
	"context"
	"log/slog"
	"strings"

	application "agora/contexts/governance/poll-service/application"
	"agora/contexts/governance/poll-service/application/queries"
	"agora/contexts/governance/poll-service/domain/entities"
	"agora/contexts/governance/poll-service/ports"
)

// OrchestratorUseCase composes cross-entity lifecycle operations. Cascading
// deletes run children-first inside a single unit of work so an observer
// never sees a topic without its sessions or votes half-removed.
type OrchestratorUseCase struct {
	UoW     ports.UnitOfWork
	Results queries.ResultsQueries
	Logger  *slog.Logger
}

// DeleteTopicCascade removes votes, then sessions, then the topic itself.
// The first failing step aborts the transaction.
func (uc OrchestratorUseCase) DeleteTopicCascade(ctx context.Context, topicID string) error {
	logger := application.ResolveLogger(uc.Logger)
	id := strings.TrimSpace(topicID)

	err := uc.UoW.InTx(ctx, func(tx ports.RepositorySet) error {
		if _, err := tx.Topics.GetTopic(ctx, id); err != nil {
			return err
		}
		if err := tx.Votes.DeleteVotesByTopic(ctx, id); err != nil {
			return err
		}
		if err := tx.Sessions.DeleteSessionsByTopic(ctx, id); err != nil {
			return err
		}
		return tx.Topics.DeleteTopic(ctx, id)
	})
	if err != nil {
		logger.Warn("topic cascade delete failed",
			"event", "poll_topic_cascade_failed",
			"module", "governance/poll-service",
			"layer", "application",
			"topic_id", id,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("topic cascade deleted",
		"event", "poll_topic_cascade_deleted",
		"module", "governance/poll-service",
		"layer", "application",
		"topic_id", id,
	)
	return nil
}

// DeleteSessionCascade removes the session's votes and then the session.
func (uc OrchestratorUseCase) DeleteSessionCascade(ctx context.Context, sessionID string) error {
	logger := application.ResolveLogger(uc.Logger)
	id := strings.TrimSpace(sessionID)

	err := uc.UoW.InTx(ctx, func(tx ports.RepositorySet) error {
		if _, err := tx.Sessions.GetSession(ctx, id); err != nil {
			return err
		}
		if err := tx.Votes.DeleteVotesBySession(ctx, id); err != nil {
			return err
		}
		return tx.Sessions.DeleteSession(ctx, id)
	})
	if err != nil {
		logger.Warn("session cascade delete failed",
			"event", "poll_session_cascade_failed",
			"module", "governance/poll-service",
			"layer", "application",
			"session_id", id,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("session cascade deleted",
		"event", "poll_session_cascade_deleted",
		"module", "governance/poll-service",
		"layer", "application",
		"session_id", id,
	)
	return nil
}

// TopicResults is the orchestrator boundary for the cross-entity read; it
// delegates to the results aggregation query.
func (uc OrchestratorUseCase) TopicResults(ctx context.Context, topicID string) (entities.TopicResults, error) {
	return uc.Results.TopicResults(ctx, topicID)
}
