package unit

import (
	"context"
	"errors"
	"testing"

	voterregistry "agora/contexts/identity-access/voter-registry"
	"agora/contexts/identity-access/voter-registry/domain/entities"
	domainerrors "agora/contexts/identity-access/voter-registry/domain/errors"
	httptransport "agora/contexts/identity-access/voter-registry/transport/http"
)

func TestRegisterVoterHappyPath(t *testing.T) {
	module := voterregistry.NewInMemoryModule(nil)

	voter, err := module.Handler.RegisterVoterHandler(context.Background(), httptransport.RegisterVoterRequest{
		Document: "123.456.789-00",
	})
	if err != nil {
		t.Fatalf("register voter failed: %v", err)
	}
	if voter.VoterID == "" {
		t.Fatalf("expected generated voter id")
	}
	if voter.Document != "123.456.789-00" {
		t.Fatalf("expected document preserved, got %q", voter.Document)
	}

	got, err := module.Handler.GetVoterHandler(context.Background(), voter.VoterID)
	if err != nil {
		t.Fatalf("get voter failed: %v", err)
	}
	if got.Document != voter.Document {
		t.Fatalf("expected same document, got %q", got.Document)
	}
}

func TestRegisterVoterDuplicateDocument(t *testing.T) {
	module := voterregistry.NewInMemoryModule(nil)

	_, err := module.Handler.RegisterVoterHandler(context.Background(), httptransport.RegisterVoterRequest{
		Document: "123.456.789-00",
	})
	if err != nil {
		t.Fatalf("first registration should succeed: %v", err)
	}

	_, err = module.Handler.RegisterVoterHandler(context.Background(), httptransport.RegisterVoterRequest{
		Document: "123.456.789-00",
	})
	if !errors.Is(err, domainerrors.ErrVoterAlreadyExists) {
		t.Fatalf("expected duplicate document rejection, got %v", err)
	}
}

func TestRegisterVoterDocumentFormat(t *testing.T) {
	module := voterregistry.NewInMemoryModule(nil)

	for _, document := range []string{"", "12345678900", "123.456.789-0", "abc.def.ghi-jk", "123.456.78-900"} {
		_, err := module.Handler.RegisterVoterHandler(context.Background(), httptransport.RegisterVoterRequest{
			Document: document,
		})
		if !errors.Is(err, domainerrors.ErrInvalidVoterInput) {
			t.Fatalf("document %q: expected invalid voter input, got %v", document, err)
		}
	}
}

func TestDeleteVoter(t *testing.T) {
	module := voterregistry.NewInMemoryModule(nil)

	voter, err := module.Handler.RegisterVoterHandler(context.Background(), httptransport.RegisterVoterRequest{
		Document: "123.456.789-00",
	})
	if err != nil {
		t.Fatalf("register voter failed: %v", err)
	}

	if err := module.Handler.DeleteVoterHandler(context.Background(), voter.VoterID); err != nil {
		t.Fatalf("delete voter failed: %v", err)
	}
	if _, err := module.Handler.GetVoterHandler(context.Background(), voter.VoterID); !errors.Is(err, domainerrors.ErrVoterNotFound) {
		t.Fatalf("expected voter gone, got %v", err)
	}
	if err := module.Handler.DeleteVoterHandler(context.Background(), voter.VoterID); !errors.Is(err, domainerrors.ErrVoterNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestCheckEligibility(t *testing.T) {
	module := voterregistry.NewInMemoryModule(nil)

	resp, err := module.Handler.CheckEligibilityHandler(context.Background(), "123.456.789-00")
	if err != nil {
		t.Fatalf("eligibility check failed: %v", err)
	}
	if resp.Status != string(entities.EligibilityAble) {
		t.Fatalf("expected able status from the always-able stub, got %q", resp.Status)
	}
}

func TestCheckEligibilityBlankDocument(t *testing.T) {
	module := voterregistry.NewInMemoryModule(nil)

	resp, err := module.Handler.CheckEligibilityHandler(context.Background(), "   ")
	if err != nil {
		t.Fatalf("eligibility check failed: %v", err)
	}
	if resp.Status != string(entities.EligibilityUnable) {
		t.Fatalf("expected unable status for a blank document, got %q", resp.Status)
	}
}
