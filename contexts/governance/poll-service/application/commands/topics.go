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

const (
	maxTitleLength       = 255
	maxDescriptionLength = 4000
)

// CreateTopicCommand is the write-model input for topic creation.
// Description may be absent; it defaults to the empty string.
type CreateTopicCommand struct {
	Title       string
	Description *string
}

// UpdateTopicCommand replaces title and description of an existing topic.
type UpdateTopicCommand struct {
	TopicID     string
	Title       string
	Description *string
}

// TopicUseCase owns topic write operations.
type TopicUseCase struct {
	Topics ports.TopicRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc TopicUseCase) CreateTopic(ctx context.Context, cmd CreateTopicCommand) (entities.Topic, error) {
	logger := application.ResolveLogger(uc.Logger)

	title, description, err := normalizeTopicInput(cmd.Title, cmd.Description)
	if err != nil {
		logger.Warn("topic create validation failed",
			"event", "poll_topic_create_validation_failed",
			"module", "governance/poll-service",
			"layer", "application",
		)
		return entities.Topic{}, err
	}

	topicID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Topic{}, err
	}
	topic := entities.Topic{
		TopicID:     topicID,
		Title:       title,
		Description: description,
		CreatedAt:   uc.now(),
	}
	if err := uc.Topics.SaveTopic(ctx, topic); err != nil {
		return entities.Topic{}, err
	}

	logger.Info("topic created",
		"event", "poll_topic_created",
		"module", "governance/poll-service",
		"layer", "application",
		"topic_id", topic.TopicID,
	)
	return topic, nil
}

func (uc TopicUseCase) UpdateTopic(ctx context.Context, cmd UpdateTopicCommand) (entities.Topic, error) {
	logger := application.ResolveLogger(uc.Logger)

	title, description, err := normalizeTopicInput(cmd.Title, cmd.Description)
	if err != nil {
		logger.Warn("topic update validation failed",
			"event", "poll_topic_update_validation_failed",
			"module", "governance/poll-service",
			"layer", "application",
			"topic_id", strings.TrimSpace(cmd.TopicID),
		)
		return entities.Topic{}, err
	}

	topic, err := uc.Topics.GetTopic(ctx, strings.TrimSpace(cmd.TopicID))
	if err != nil {
		return entities.Topic{}, err
	}
	topic.Title = title
	topic.Description = description
	if err := uc.Topics.SaveTopic(ctx, topic); err != nil {
		return entities.Topic{}, err
	}

	logger.Info("topic updated",
		"event", "poll_topic_updated",
		"module", "governance/poll-service",
		"layer", "application",
		"topic_id", topic.TopicID,
	)
	return topic, nil
}

func (uc TopicUseCase) DeleteTopic(ctx context.Context, topicID string) error {
	logger := application.ResolveLogger(uc.Logger)

	if _, err := uc.Topics.GetTopic(ctx, strings.TrimSpace(topicID)); err != nil {
		return err
	}
	if err := uc.Topics.DeleteTopic(ctx, strings.TrimSpace(topicID)); err != nil {
		return err
	}

	logger.Info("topic deleted",
		"event", "poll_topic_deleted",
		"module", "governance/poll-service",
		"layer", "application",
		"topic_id", strings.TrimSpace(topicID),
	)
	return nil
}

func (uc TopicUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func normalizeTopicInput(title string, description *string) (string, string, error) {
	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle == "" || len(trimmedTitle) > maxTitleLength {
		return "", "", domainerrors.ErrInvalidTopicInput
	}
	normalizedDescription := ""
	if description != nil {
		normalizedDescription = *description
	}
	if len(normalizedDescription) > maxDescriptionLength {
		return "", "", domainerrors.ErrInvalidTopicInput
	}
	return trimmedTitle, normalizedDescription, nil
}
