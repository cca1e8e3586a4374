package ports

import (
	"context"
	"time"

	"agora/contexts/identity-access/voter-registry/domain/entities"
)

type VoterRepository interface {
	// InsertVoter relies on the storage-level unique constraint on the
	// document column. A duplicate surfaces ErrVoterAlreadyExists.
	InsertVoter(ctx context.Context, voter entities.Voter) error
	GetVoter(ctx context.Context, voterID string) (entities.Voter, error)
	VoterExists(ctx context.Context, voterID string) (bool, error)
	DeleteVoter(ctx context.Context, voterID string) error
}

// EligibilityClient is the external document-validation collaborator. The
// contract is one-way: the registry calls and receives a status.
type EligibilityClient interface {
	Validate(ctx context.Context, document string) (entities.EligibilityStatus, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
