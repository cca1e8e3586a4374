package queries

import (
	"context"
	"strings"

	"agora/contexts/identity-access/voter-registry/domain/entities"
	"agora/contexts/identity-access/voter-registry/ports"
)

// VoterQueries serves voter reads and eligibility checks.
type VoterQueries struct {
	Voters      ports.VoterRepository
	Eligibility ports.EligibilityClient
}

func (q VoterQueries) GetVoter(ctx context.Context, voterID string) (entities.Voter, error) {
	return q.Voters.GetVoter(ctx, strings.TrimSpace(voterID))
}

// CheckEligibility asks the external document validator for a status.
// A blank document is always UNABLE_TO_VOTE, short-circuited here so the
// stub never sees it.
func (q VoterQueries) CheckEligibility(ctx context.Context, document string) (entities.EligibilityStatus, error) {
	if strings.TrimSpace(document) == "" {
		return entities.EligibilityUnable, nil
	}
	return q.Eligibility.Validate(ctx, document)
}
