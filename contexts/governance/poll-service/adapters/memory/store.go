package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"agora/contexts/governance/poll-service/domain/entities"
	domainerrors "agora/contexts/governance/poll-service/domain/errors"
	"agora/contexts/governance/poll-service/ports"
	"agora/internal/shared/events"
	"agora/internal/shared/outbox"
	"agora/internal/shared/pagination"

	"github.com/google/uuid"
)

// Store is the in-memory adapter behind every poll-service port. It doubles
// as Clock and IDGenerator so tests can pin time around window boundaries.
type Store struct {
	mu sync.RWMutex

	topics   map[string]entities.Topic
	sessions map[string]entities.Session
	votes    map[string]entities.Vote
	outbox   map[string]outbox.Message
	voters   map[string]struct{}

	now time.Time
}

func NewStore() *Store {
	return &Store{
		topics:   make(map[string]entities.Topic),
		sessions: make(map[string]entities.Session),
		votes:    make(map[string]entities.Vote),
		outbox:   make(map[string]outbox.Message),
		voters:   make(map[string]struct{}),
	}
}

// SetNow pins the clock; a zero time falls back to real wall-clock time.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SeedVoter marks a voter id as registered for VoterDirectory lookups.
func (s *Store) SeedVoter(voterID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[strings.TrimSpace(voterID)] = struct{}{}
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.now.IsZero() {
		return time.Now().UTC()
	}
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) VoterExists(_ context.Context, voterID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.voters[strings.TrimSpace(voterID)]
	return ok, nil
}

func (s *Store) SaveTopic(_ context.Context, topic entities.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics[strings.TrimSpace(topic.TopicID)] = topic
	return nil
}

func (s *Store) GetTopic(_ context.Context, topicID string) (entities.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	topic, ok := s.topics[strings.TrimSpace(topicID)]
	if !ok {
		return entities.Topic{}, domainerrors.ErrTopicNotFound
	}
	return topic, nil
}

func (s *Store) ListTopics(_ context.Context, page pagination.Request) ([]entities.Topic, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]entities.Topic, 0, len(s.topics))
	for _, topic := range s.topics {
		all = append(all, topic)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].TopicID < all[j].TopicID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return slicePage(all, page), int64(len(all)), nil
}

func (s *Store) DeleteTopic(_ context.Context, topicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(topicID)
	if _, ok := s.topics[id]; !ok {
		return domainerrors.ErrTopicNotFound
	}
	delete(s.topics, id)
	return nil
}

func (s *Store) SaveSession(_ context.Context, session entities.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[strings.TrimSpace(session.SessionID)] = session
	return nil
}

func (s *Store) GetSession(_ context.Context, sessionID string) (entities.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[strings.TrimSpace(sessionID)]
	if !ok {
		return entities.Session{}, domainerrors.ErrSessionNotFound
	}
	return session, nil
}

func (s *Store) ListSessionsByTopic(_ context.Context, topicID string, page pagination.Request) ([]entities.Session, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id := strings.TrimSpace(topicID)
	matched := make([]entities.Session, 0)
	for _, session := range s.sessions {
		if session.TopicID == id {
			matched = append(matched, session)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].SessionID < matched[j].SessionID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return slicePage(matched, page), int64(len(matched)), nil
}

func (s *Store) CountSessionsByTopic(_ context.Context, topicID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id := strings.TrimSpace(topicID)
	count := 0
	for _, session := range s.sessions {
		if session.TopicID == id {
			count++
		}
	}
	return count, nil
}

func (s *Store) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(sessionID)
	if _, ok := s.sessions[id]; !ok {
		return domainerrors.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *Store) DeleteSessionsByTopic(_ context.Context, topicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(topicID)
	for sessionID, session := range s.sessions {
		if session.TopicID == id {
			delete(s.sessions, sessionID)
		}
	}
	return nil
}

func (s *Store) InsertVote(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.votes {
		if existing.VoterID == vote.VoterID && existing.SessionID == vote.SessionID {
			return domainerrors.ErrVoteAlreadyCast
		}
	}
	s.votes[strings.TrimSpace(vote.VoteID)] = vote
	return nil
}

func (s *Store) UpdateVote(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(vote.VoteID)
	if _, ok := s.votes[id]; !ok {
		return domainerrors.ErrVoteNotFound
	}
	s.votes[id] = vote
	return nil
}

func (s *Store) GetVote(_ context.Context, voteID string) (entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vote, ok := s.votes[strings.TrimSpace(voteID)]
	if !ok {
		return entities.Vote{}, domainerrors.ErrVoteNotFound
	}
	return vote, nil
}

func (s *Store) ListVotesBySession(_ context.Context, sessionID string, page pagination.Request) ([]entities.Vote, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id := strings.TrimSpace(sessionID)
	matched := make([]entities.Vote, 0)
	for _, vote := range s.votes {
		if vote.SessionID == id {
			matched = append(matched, vote)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].VoteID < matched[j].VoteID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return slicePage(matched, page), int64(len(matched)), nil
}

func (s *Store) CountVotesByTopicAndOption(_ context.Context, topicID string, option entities.VoteOption) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id := strings.TrimSpace(topicID)
	count := 0
	for _, vote := range s.votes {
		session, ok := s.sessions[vote.SessionID]
		if !ok || session.TopicID != id {
			continue
		}
		if vote.Option == option {
			count++
		}
	}
	return count, nil
}

func (s *Store) DeleteVote(_ context.Context, voteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(voteID)
	if _, ok := s.votes[id]; !ok {
		return domainerrors.ErrVoteNotFound
	}
	delete(s.votes, id)
	return nil
}

func (s *Store) DeleteVotesByTopic(_ context.Context, topicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(topicID)
	for voteID, vote := range s.votes {
		session, ok := s.sessions[vote.SessionID]
		if ok && session.TopicID == id {
			delete(s.votes, voteID)
		}
	}
	return nil
}

func (s *Store) DeleteVotesBySession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(sessionID)
	for voteID, vote := range s.votes {
		if vote.SessionID == id {
			delete(s.votes, voteID)
		}
	}
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, event events.Envelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbox[event.EventID] = outbox.Message{
		ID:        event.EventID,
		EventType: event.EventType,
		Payload:   payload,
		Status:    "pending",
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]outbox.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := make([]outbox.Message, 0)
	for _, message := range s.outbox {
		if message.Status == "pending" {
			pending = append(pending, message)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	message, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return nil
	}
	message.Status = "published"
	s.outbox[strings.TrimSpace(outboxID)] = message
	return nil
}

// InTx runs fn against the live store and restores a snapshot on error, so
// failed cascades leave no partial state behind.
func (s *Store) InTx(_ context.Context, fn func(tx ports.RepositorySet) error) error {
	snapshot := s.snapshot()
	err := fn(ports.RepositorySet{Topics: s, Sessions: s, Votes: s})
	if err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

type storeSnapshot struct {
	topics   map[string]entities.Topic
	sessions map[string]entities.Session
	votes    map[string]entities.Vote
}

func (s *Store) snapshot() storeSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := storeSnapshot{
		topics:   make(map[string]entities.Topic, len(s.topics)),
		sessions: make(map[string]entities.Session, len(s.sessions)),
		votes:    make(map[string]entities.Vote, len(s.votes)),
	}
	for id, topic := range s.topics {
		snap.topics[id] = topic
	}
	for id, session := range s.sessions {
		snap.sessions[id] = session
	}
	for id, vote := range s.votes {
		snap.votes[id] = vote
	}
	return snap
}

func (s *Store) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = snap.topics
	s.sessions = snap.sessions
	s.votes = snap.votes
}

func slicePage[T any](items []T, page pagination.Request) []T {
	if page.Size <= 0 {
		return items
	}
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

var _ ports.TopicRepository = (*Store)(nil)
var _ ports.SessionRepository = (*Store)(nil)
var _ ports.VoteRepository = (*Store)(nil)
var _ ports.VoterDirectory = (*Store)(nil)
var _ ports.OutboxWriter = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.UnitOfWork = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
