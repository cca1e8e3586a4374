package entities

import (
	"strings"
	"time"
)

// VoteOption is the yes/no choice recorded for a session.
type VoteOption string

const (
	VoteOptionYes VoteOption = "YES"
	VoteOptionNo  VoteOption = "NO"
)

// ParseVoteOption accepts case-insensitive YES/NO input.
func ParseVoteOption(raw string) (VoteOption, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(VoteOptionYes):
		return VoteOptionYes, true
	case string(VoteOptionNo):
		return VoteOptionNo, true
	default:
		return "", false
	}
}

// SessionState is derived from wall-clock time, never stored.
type SessionState string

const (
	SessionStateScheduled SessionState = "scheduled"
	SessionStateOpen      SessionState = "open"
	SessionStateClosed    SessionState = "closed"
)

// Topic is a poll subject owning zero or more voting sessions.
type Topic struct {
	TopicID     string
	Title       string
	Description string
	CreatedAt   time.Time
}

// Session is a time-boxed voting window bound to a topic.
// EndTime is always StartTime plus the requested duration.
type Session struct {
	SessionID string
	TopicID   string
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
}

// StateAt derives the session lifecycle state for the given instant.
// The open window is inclusive at both ends.
func (s Session) StateAt(now time.Time) SessionState {
	switch {
	case now.Before(s.StartTime):
		return SessionStateScheduled
	case now.After(s.EndTime):
		return SessionStateClosed
	default:
		return SessionStateOpen
	}
}

// IsOpenAt reports whether votes may be cast at the given instant.
func (s Session) IsOpenAt(now time.Time) bool {
	return s.StateAt(now) == SessionStateOpen
}

// IsClosedAt reports whether the voting window has ended. The exact end
// instant is still open.
func (s Session) IsClosedAt(now time.Time) bool {
	return now.After(s.EndTime)
}

// Vote is a single voter's choice for one session. The (VoterID, SessionID)
// pair is unique; the session binding never changes after creation.
type Vote struct {
	VoteID    string
	VoterID   string
	SessionID string
	Option    VoteOption
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TopicResults is the aggregated tally for one topic.
type TopicResults struct {
	TopicID       string
	Title         string
	Description   string
	SessionsCount int
	YesCount      int
	NoCount       int
	YesPercentage int
}
