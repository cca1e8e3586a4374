package fake

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"agora/contexts/identity-access/voter-registry/domain/entities"
	"agora/contexts/identity-access/voter-registry/ports"
)

// EligibilityClient stands in for the external document-validation service.
// It answers randomly, like the upstream stub, except that a blank document
// is always unable to vote.
type EligibilityClient struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewEligibilityClient(seed int64) *EligibilityClient {
	return &EligibilityClient{rng: rand.New(rand.NewSource(seed))}
}

func (c *EligibilityClient) Validate(_ context.Context, document string) (entities.EligibilityStatus, error) {
	if strings.TrimSpace(document) == "" {
		return entities.EligibilityUnable, nil
	}
	c.mu.Lock()
	able := c.rng.Intn(2) == 0
	c.mu.Unlock()
	if able {
		return entities.EligibilityAble, nil
	}
	return entities.EligibilityUnable, nil
}

// AlwaysAbleClient approves every non-blank document. Used in development
// and test wiring where random answers would flake.
type AlwaysAbleClient struct{}

func (AlwaysAbleClient) Validate(_ context.Context, document string) (entities.EligibilityStatus, error) {
	if strings.TrimSpace(document) == "" {
		return entities.EligibilityUnable, nil
	}
	return entities.EligibilityAble, nil
}

var _ ports.EligibilityClient = (*EligibilityClient)(nil)
var _ ports.EligibilityClient = AlwaysAbleClient{}
