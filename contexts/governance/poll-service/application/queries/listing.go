package queries

import (
	"context"
	"strings"

	"agora/contexts/governance/poll-service/domain/entities"
	"agora/contexts/governance/poll-service/ports"
	"agora/internal/shared/pagination"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// TopicQueries serves single-entity and paginated topic reads.
type TopicQueries struct {
	Topics ports.TopicRepository
}

func (q TopicQueries) GetTopic(ctx context.Context, topicID string) (entities.Topic, error) {
	return q.Topics.GetTopic(ctx, strings.TrimSpace(topicID))
}

func (q TopicQueries) ListTopics(ctx context.Context, page pagination.Request) (pagination.Page[entities.Topic], error) {
	page = page.Normalize(defaultPageSize, maxPageSize)
	items, total, err := q.Topics.ListTopics(ctx, page)
	if err != nil {
		return pagination.Page[entities.Topic]{}, err
	}
	return pagination.New(items, page, total), nil
}

// SessionQueries serves session reads. Listing probes the topic first so a
// missing topic surfaces as not-found rather than an empty page.
type SessionQueries struct {
	Sessions ports.SessionRepository
	Topics   ports.TopicRepository
}

func (q SessionQueries) GetSession(ctx context.Context, sessionID string) (entities.Session, error) {
	return q.Sessions.GetSession(ctx, strings.TrimSpace(sessionID))
}

func (q SessionQueries) ListSessionsByTopic(ctx context.Context, topicID string, page pagination.Request) (pagination.Page[entities.Session], error) {
	id := strings.TrimSpace(topicID)
	if _, err := q.Topics.GetTopic(ctx, id); err != nil {
		return pagination.Page[entities.Session]{}, err
	}
	page = page.Normalize(defaultPageSize, maxPageSize)
	items, total, err := q.Sessions.ListSessionsByTopic(ctx, id, page)
	if err != nil {
		return pagination.Page[entities.Session]{}, err
	}
	return pagination.New(items, page, total), nil
}

func (q SessionQueries) CountSessionsByTopic(ctx context.Context, topicID string) (int, error) {
	return q.Sessions.CountSessionsByTopic(ctx, strings.TrimSpace(topicID))
}

// VoteQueries serves vote reads and option counts.
type VoteQueries struct {
	Votes    ports.VoteRepository
	Sessions ports.SessionRepository
}

func (q VoteQueries) GetVote(ctx context.Context, voteID string) (entities.Vote, error) {
	return q.Votes.GetVote(ctx, strings.TrimSpace(voteID))
}

func (q VoteQueries) ListVotesBySession(ctx context.Context, sessionID string, page pagination.Request) (pagination.Page[entities.Vote], error) {
	id := strings.TrimSpace(sessionID)
	if _, err := q.Sessions.GetSession(ctx, id); err != nil {
		return pagination.Page[entities.Vote]{}, err
	}
	page = page.Normalize(defaultPageSize, maxPageSize)
	items, total, err := q.Votes.ListVotesBySession(ctx, id, page)
	if err != nil {
		return pagination.Page[entities.Vote]{}, err
	}
	return pagination.New(items, page, total), nil
}

func (q VoteQueries) CountVotesByTopicAndOption(ctx context.Context, topicID string, option entities.VoteOption) (int, error) {
	return q.Votes.CountVotesByTopicAndOption(ctx, strings.TrimSpace(topicID), option)
}
