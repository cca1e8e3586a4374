package errors

import "errors"

var (
	ErrVoterNotFound      = errors.New("voter not found")
	ErrVoterAlreadyExists = errors.New("voter document already registered")
	ErrInvalidVoterInput  = errors.New("invalid voter input")
	ErrNotEligible        = errors.New("document is not able to vote")
)
