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

const defaultSessionDurationMinutes = 1

// CreateSessionCommand opens a new voting window under a topic.
// A nil StartTime means "now"; a nil DurationMinutes means one minute.
type CreateSessionCommand struct {
	TopicID         string
	StartTime       *time.Time
	DurationMinutes *int
}

// UpdateSessionCommand reschedules a session that has not opened yet.
// Nil fields keep the current value.
type UpdateSessionCommand struct {
	SessionID       string
	StartTime       *time.Time
	DurationMinutes *int
}

// SessionUseCase owns session write operations. State checks always derive
// from the Clock at call time; no state is ever cached.
type SessionUseCase struct {
	Sessions ports.SessionRepository
	Topics   ports.TopicRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc SessionUseCase) CreateSession(ctx context.Context, cmd CreateSessionCommand) (entities.Session, error) {
	logger := application.ResolveLogger(uc.Logger)

	topic, err := uc.Topics.GetTopic(ctx, strings.TrimSpace(cmd.TopicID))
	if err != nil {
		return entities.Session{}, err
	}

	duration := defaultSessionDurationMinutes
	if cmd.DurationMinutes != nil {
		duration = *cmd.DurationMinutes
	}
	if duration < 1 {
		logger.Warn("session create validation failed",
			"event", "poll_session_create_validation_failed",
			"module", "governance/poll-service",
			"layer", "application",
			"topic_id", topic.TopicID,
			"duration_minutes", duration,
		)
		return entities.Session{}, domainerrors.ErrInvalidSessionInput
	}

	now := uc.now()
	start := now
	if cmd.StartTime != nil {
		start = cmd.StartTime.UTC()
	}

	sessionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Session{}, err
	}
	session := entities.Session{
		SessionID: sessionID,
		TopicID:   topic.TopicID,
		StartTime: start,
		EndTime:   start.Add(time.Duration(duration) * time.Minute),
		CreatedAt: now,
	}
	if err := uc.Sessions.SaveSession(ctx, session); err != nil {
		return entities.Session{}, err
	}

	logger.Info("session created",
		"event", "poll_session_created",
		"module", "governance/poll-service",
		"layer", "application",
		"session_id", session.SessionID,
		"topic_id", session.TopicID,
		"start_time", session.StartTime,
		"end_time", session.EndTime,
	)
	return session, nil
}

func (uc SessionUseCase) UpdateSession(ctx context.Context, cmd UpdateSessionCommand) (entities.Session, error) {
	logger := application.ResolveLogger(uc.Logger)

	session, err := uc.Sessions.GetSession(ctx, strings.TrimSpace(cmd.SessionID))
	if err != nil {
		return entities.Session{}, err
	}

	switch state := session.StateAt(uc.now()); state {
	case entities.SessionStateOpen:
		logger.Warn("session update rejected",
			"event", "poll_session_update_rejected",
			"module", "governance/poll-service",
			"layer", "application",
			"session_id", session.SessionID,
			"state", string(state),
		)
		return entities.Session{}, domainerrors.ErrSessionOpen
	case entities.SessionStateClosed:
		logger.Warn("session update rejected",
			"event", "poll_session_update_rejected",
			"module", "governance/poll-service",
			"layer", "application",
			"session_id", session.SessionID,
			"state", string(state),
		)
		return entities.Session{}, domainerrors.ErrSessionClosed
	}

	duration := int(session.EndTime.Sub(session.StartTime) / time.Minute)
	if cmd.DurationMinutes != nil {
		duration = *cmd.DurationMinutes
	}
	if duration < 1 {
		return entities.Session{}, domainerrors.ErrInvalidSessionInput
	}
	if cmd.StartTime != nil {
		session.StartTime = cmd.StartTime.UTC()
	}
	session.EndTime = session.StartTime.Add(time.Duration(duration) * time.Minute)

	if err := uc.Sessions.SaveSession(ctx, session); err != nil {
		return entities.Session{}, err
	}

	logger.Info("session updated",
		"event", "poll_session_updated",
		"module", "governance/poll-service",
		"layer", "application",
		"session_id", session.SessionID,
		"start_time", session.StartTime,
		"end_time", session.EndTime,
	)
	return session, nil
}

func (uc SessionUseCase) DeleteSession(ctx context.Context, sessionID string) error {
	logger := application.ResolveLogger(uc.Logger)

	if _, err := uc.Sessions.GetSession(ctx, strings.TrimSpace(sessionID)); err != nil {
		return err
	}
	if err := uc.Sessions.DeleteSession(ctx, strings.TrimSpace(sessionID)); err != nil {
		return err
	}

	logger.Info("session deleted",
		"event", "poll_session_deleted",
		"module", "governance/poll-service",
		"layer", "application",
		"session_id", strings.TrimSpace(sessionID),
	)
	return nil
}

// DeleteSessionsByTopic removes every session of the topic. Vote cleanup is
// the orchestrator's responsibility.
func (uc SessionUseCase) DeleteSessionsByTopic(ctx context.Context, topicID string) error {
	logger := application.ResolveLogger(uc.Logger)

	if _, err := uc.Topics.GetTopic(ctx, strings.TrimSpace(topicID)); err != nil {
		return err
	}
	if err := uc.Sessions.DeleteSessionsByTopic(ctx, strings.TrimSpace(topicID)); err != nil {
		return err
	}

	logger.Info("sessions deleted by topic",
		"event", "poll_sessions_deleted_by_topic",
		"module", "governance/poll-service",
		"layer", "application",
		"topic_id", strings.TrimSpace(topicID),
	)
	return nil
}

func (uc SessionUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
