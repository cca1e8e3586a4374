package entities

import "time"

// Voter is a registered identity keyed by its external document identifier
// (CPF-formatted, e.g. "123.456.789-00"). Voters are immutable once created.
type Voter struct {
	VoterID   string
	Document  string
	CreatedAt time.Time
}

// EligibilityStatus is the answer of the external document validation
// service.
type EligibilityStatus string

const (
	EligibilityAble   EligibilityStatus = "ABLE_TO_VOTE"
	EligibilityUnable EligibilityStatus = "UNABLE_TO_VOTE"
)
