package httpadapter

import (
	"context"
	"log/slog"

	"agora/contexts/identity-access/voter-registry/application/commands"
	"agora/contexts/identity-access/voter-registry/application/queries"
	httptransport "agora/contexts/identity-access/voter-registry/transport/http"
)

// Handler bridges the HTTP platform layer to the registry use cases.
type Handler struct {
	Voters commands.VoterUseCase
	Reads  queries.VoterQueries
	Logger *slog.Logger
}

func (h Handler) RegisterVoterHandler(ctx context.Context, req httptransport.RegisterVoterRequest) (httptransport.VoterResponse, error) {
	voter, err := h.Voters.RegisterVoter(ctx, commands.RegisterVoterCommand{Document: req.Document})
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return httptransport.VoterResponse{
		VoterID:   voter.VoterID,
		Document:  voter.Document,
		CreatedAt: voter.CreatedAt,
	}, nil
}

func (h Handler) DeleteVoterHandler(ctx context.Context, voterID string) error {
	return h.Voters.DeleteVoter(ctx, voterID)
}

func (h Handler) GetVoterHandler(ctx context.Context, voterID string) (httptransport.VoterResponse, error) {
	voter, err := h.Reads.GetVoter(ctx, voterID)
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return httptransport.VoterResponse{
		VoterID:   voter.VoterID,
		Document:  voter.Document,
		CreatedAt: voter.CreatedAt,
	}, nil
}

func (h Handler) CheckEligibilityHandler(ctx context.Context, document string) (httptransport.EligibilityResponse, error) {
	status, err := h.Reads.CheckEligibility(ctx, document)
	if err != nil {
		return httptransport.EligibilityResponse{}, err
	}
	return httptransport.EligibilityResponse{Status: string(status)}, nil
}
