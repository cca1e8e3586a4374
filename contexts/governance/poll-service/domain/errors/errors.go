package errors

import "errors"

var (
	ErrTopicNotFound   = errors.New("topic not found")
	ErrSessionNotFound = errors.New("voting session not found")
	ErrVoteNotFound    = errors.New("vote not found")
	ErrVoterNotFound   = errors.New("voter not found")

	ErrInvalidTopicInput   = errors.New("invalid topic input")
	ErrInvalidSessionInput = errors.New("invalid session input")
	ErrInvalidVoteInput    = errors.New("invalid vote input")

	// Structural session updates are allowed only before the window opens.
	ErrSessionOpen   = errors.New("voting session is open and cannot be updated")
	ErrSessionClosed = errors.New("voting session is closed and cannot be updated")

	ErrVoteAlreadyCast  = errors.New("voter already voted in this session")
	ErrVotingNotAllowed = errors.New("voting session is not open")
)
