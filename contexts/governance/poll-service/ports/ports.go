package ports

import (
	"context"
	"time"

	"agora/contexts/governance/poll-service/domain/entities"
	"agora/internal/shared/events"
	"agora/internal/shared/outbox"
	"agora/internal/shared/pagination"
)

type TopicRepository interface {
	SaveTopic(ctx context.Context, topic entities.Topic) error
	GetTopic(ctx context.Context, topicID string) (entities.Topic, error)
	ListTopics(ctx context.Context, page pagination.Request) ([]entities.Topic, int64, error)
	DeleteTopic(ctx context.Context, topicID string) error
}

type SessionRepository interface {
	SaveSession(ctx context.Context, session entities.Session) error
	GetSession(ctx context.Context, sessionID string) (entities.Session, error)
	ListSessionsByTopic(ctx context.Context, topicID string, page pagination.Request) ([]entities.Session, int64, error)
	CountSessionsByTopic(ctx context.Context, topicID string) (int, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteSessionsByTopic(ctx context.Context, topicID string) error
}

type VoteRepository interface {
	// InsertVote relies on the storage-level (voter_id, session_id) unique
	// constraint. A conflicting insert surfaces ErrVoteAlreadyCast.
	InsertVote(ctx context.Context, vote entities.Vote) error
	UpdateVote(ctx context.Context, vote entities.Vote) error
	GetVote(ctx context.Context, voteID string) (entities.Vote, error)
	ListVotesBySession(ctx context.Context, sessionID string, page pagination.Request) ([]entities.Vote, int64, error)
	CountVotesByTopicAndOption(ctx context.Context, topicID string, option entities.VoteOption) (int, error)
	DeleteVote(ctx context.Context, voteID string) error
	DeleteVotesByTopic(ctx context.Context, topicID string) error
	DeleteVotesBySession(ctx context.Context, sessionID string) error
}

// VoterDirectory is the read-only view of the voter registry this module
// needs. Bootstrap backs it with the voter-registry repository.
type VoterDirectory interface {
	VoterExists(ctx context.Context, voterID string) (bool, error)
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, event events.Envelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// RepositorySet is the transactional view handed to a UnitOfWork callback.
// All repositories share one storage transaction.
type RepositorySet struct {
	Topics   TopicRepository
	Sessions SessionRepository
	Votes    VoteRepository
}

// UnitOfWork runs fn atomically: either every write in the callback commits
// or none does. Cascading deletes must go through it.
type UnitOfWork interface {
	InTx(ctx context.Context, fn func(tx RepositorySet) error) error
}
