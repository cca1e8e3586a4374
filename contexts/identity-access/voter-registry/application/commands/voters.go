package commands

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	application "agora/contexts/identity-access/voter-registry/application"
	"agora/contexts/identity-access/voter-registry/domain/entities"
	domainerrors "agora/contexts/identity-access/voter-registry/domain/errors"
	"agora/contexts/identity-access/voter-registry/ports"
)

// documentPattern matches the CPF wire format, e.g. "123.456.789-00".
var documentPattern = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)

// RegisterVoterCommand registers a new voter by document identifier.
type RegisterVoterCommand struct {
	Document string
}

// VoterUseCase owns voter write operations. Document uniqueness is settled
// by the storage constraint behind InsertVoter, not by a pre-check.
type VoterUseCase struct {
	Voters ports.VoterRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc VoterUseCase) RegisterVoter(ctx context.Context, cmd RegisterVoterCommand) (entities.Voter, error) {
	logger := application.ResolveLogger(uc.Logger)

	document := strings.TrimSpace(cmd.Document)
	if !documentPattern.MatchString(document) {
		logger.Warn("voter registration validation failed",
			"event", "registry_voter_register_validation_failed",
			"module", "identity-access/voter-registry",
			"layer", "application",
		)
		return entities.Voter{}, domainerrors.ErrInvalidVoterInput
	}

	voterID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Voter{}, err
	}
	voter := entities.Voter{
		VoterID:   voterID,
		Document:  document,
		CreatedAt: uc.now(),
	}
	if err := uc.Voters.InsertVoter(ctx, voter); err != nil {
		return entities.Voter{}, err
	}

	logger.Info("voter registered",
		"event", "registry_voter_registered",
		"module", "identity-access/voter-registry",
		"layer", "application",
		"voter_id", voter.VoterID,
	)
	return voter, nil
}

func (uc VoterUseCase) DeleteVoter(ctx context.Context, voterID string) error {
	logger := application.ResolveLogger(uc.Logger)

	if _, err := uc.Voters.GetVoter(ctx, strings.TrimSpace(voterID)); err != nil {
		return err
	}
	if err := uc.Voters.DeleteVoter(ctx, strings.TrimSpace(voterID)); err != nil {
		return err
	}

	logger.Info("voter deleted",
		"event", "registry_voter_deleted",
		"module", "identity-access/voter-registry",
		"layer", "application",
		"voter_id", strings.TrimSpace(voterID),
	)
	return nil
}

func (uc VoterUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
