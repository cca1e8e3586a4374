package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"agora/contexts/identity-access/voter-registry/domain/entities"
	domainerrors "agora/contexts/identity-access/voter-registry/domain/errors"
	"agora/contexts/identity-access/voter-registry/ports"

	"github.com/google/uuid"
)

// Store is the in-memory voter repository. It doubles as Clock and
// IDGenerator for test wiring.
type Store struct {
	mu     sync.RWMutex
	voters map[string]entities.Voter
	now    time.Time
}

func NewStore() *Store {
	return &Store{voters: make(map[string]entities.Voter)}
}

// SetNow pins the clock; a zero time falls back to real wall-clock time.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
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

func (s *Store) InsertVoter(_ context.Context, voter entities.Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.voters {
		if existing.Document == voter.Document {
			return domainerrors.ErrVoterAlreadyExists
		}
	}
	s.voters[strings.TrimSpace(voter.VoterID)] = voter
	return nil
}

func (s *Store) GetVoter(_ context.Context, voterID string) (entities.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voter, ok := s.voters[strings.TrimSpace(voterID)]
	if !ok {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	return voter, nil
}

func (s *Store) VoterExists(_ context.Context, voterID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.voters[strings.TrimSpace(voterID)]
	return ok, nil
}

func (s *Store) DeleteVoter(_ context.Context, voterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(voterID)
	if _, ok := s.voters[id]; !ok {
		return domainerrors.ErrVoterNotFound
	}
	delete(s.voters, id)
	return nil
}

var _ ports.VoterRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
