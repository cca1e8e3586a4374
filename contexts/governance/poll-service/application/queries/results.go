package queries

import (
	"context"
	"math"
	"strings"

	"agora/contexts/governance/poll-service/domain/entities"
	"agora/contexts/governance/poll-service/ports"
)

// ResultsQueries aggregates per-topic tallies.
type ResultsQueries struct {
	Topics   ports.TopicRepository
	Sessions ports.SessionRepository
	Votes    ports.VoteRepository
}

// TopicResults computes the yes/no tally and rounded yes-percentage for one
// topic. The topic is resolved before any counting so a missing topic never
// produces a partial aggregate.
func (q ResultsQueries) TopicResults(ctx context.Context, topicID string) (entities.TopicResults, error) {
	topic, err := q.Topics.GetTopic(ctx, strings.TrimSpace(topicID))
	if err != nil {
		return entities.TopicResults{}, err
	}

	sessionsCount, err := q.Sessions.CountSessionsByTopic(ctx, topic.TopicID)
	if err != nil {
		return entities.TopicResults{}, err
	}
	yesCount, err := q.Votes.CountVotesByTopicAndOption(ctx, topic.TopicID, entities.VoteOptionYes)
	if err != nil {
		return entities.TopicResults{}, err
	}
	noCount, err := q.Votes.CountVotesByTopicAndOption(ctx, topic.TopicID, entities.VoteOptionNo)
	if err != nil {
		return entities.TopicResults{}, err
	}

	return entities.TopicResults{
		TopicID:       topic.TopicID,
		Title:         topic.Title,
		Description:   topic.Description,
		SessionsCount: sessionsCount,
		YesCount:      yesCount,
		NoCount:       noCount,
		YesPercentage: yesPercentage(yesCount, noCount),
	}, nil
}

// yesPercentage rounds half-up to the nearest integer; a zero total yields 0.
func yesPercentage(yesCount, noCount int) int {
	total := yesCount + noCount
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(yesCount)*100/float64(total) + 0.5))
}
