package httpserver

import (
	"encoding/json"
	"net/http"

	"agora/contexts/identity-access/voter-registry/domain/entities"
	registryhttp "agora/contexts/identity-access/voter-registry/transport/http"
)

func (s *Server) handleRegisterVoter(w http.ResponseWriter, r *http.Request) {
	var req registryhttp.RegisterVoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	resp, err := s.registry.Handler.RegisterVoterHandler(r.Context(), req)
	if err != nil {
		s.writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetVoter(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("voter_id")
	resp, err := s.registry.Handler.GetVoterHandler(r.Context(), voterID)
	if err != nil {
		s.writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteVoter(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("voter_id")
	if err := s.registry.Handler.DeleteVoterHandler(r.Context(), voterID); err != nil {
		s.writeRegistryDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCheckEligibility answers 404 for ineligible documents so that
// callers treat an unable voter the same as an unknown one.
func (s *Server) handleCheckEligibility(w http.ResponseWriter, r *http.Request) {
	document := r.PathValue("document")
	resp, err := s.registry.Handler.CheckEligibilityHandler(r.Context(), document)
	if err != nil {
		s.writeRegistryDomainError(w, err)
		return
	}
	if resp.Status == string(entities.EligibilityUnable) {
		writeJSON(w, http.StatusNotFound, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
