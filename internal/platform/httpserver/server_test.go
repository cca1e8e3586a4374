package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pollservice "agora/contexts/governance/poll-service"
	voterregistry "agora/contexts/identity-access/voter-registry"
)

func newTestServer() *Server {
	polls := pollservice.NewInMemoryModule(nil)
	registry := voterregistry.NewInMemoryModule(nil)
	return New(polls, registry, nil, ":0")
}

func doJSON(t *testing.T, server *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func decodeField(t *testing.T, rr *httptest.ResponseRecorder, field string) string {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	value, _ := payload[field].(string)
	return value
}

func TestTopicLifecycleOverHTTP(t *testing.T) {
	server := newTestServer()

	rr := doJSON(t, server, http.MethodPost, "/api/v1/topics", map[string]any{
		"title":       "Budget approval",
		"description": "Approve next year's budget",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	topicID := decodeField(t, rr, "topic_id")
	if topicID == "" {
		t.Fatalf("expected topic_id in response, body=%s", rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodGet, "/api/v1/topics/"+topicID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodDelete, "/api/v1/topics/"+topicID, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodGet, "/api/v1/topics/"+topicID, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rr.Code)
	}
	if code := decodeField(t, rr, "code"); code != "not_found" {
		t.Fatalf("expected not_found code, got %q", code)
	}
}

func TestCreateTopicRejectsMalformedJSON(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/topics", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := decodeField(t, rr, "code"); code != "invalid_body" {
		t.Fatalf("expected invalid_body code, got %q", code)
	}
}

func TestVoteStatusMappingOverHTTP(t *testing.T) {
	server := newTestServer()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	server.polls.Store.SetNow(now)
	server.polls.Store.SeedVoter("voter-1")

	rr := doJSON(t, server, http.MethodPost, "/api/v1/topics", map[string]any{"title": "Budget approval"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create topic: expected 201, got %d", rr.Code)
	}
	topicID := decodeField(t, rr, "topic_id")

	rr = doJSON(t, server, http.MethodPost, "/api/v1/sessions", map[string]any{"topic_id": topicID})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	sessionID := decodeField(t, rr, "session_id")

	rr = doJSON(t, server, http.MethodPost, "/api/v1/votes", map[string]any{
		"voter_id": "voter-1", "session_id": sessionID, "option": "yes",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("cast vote: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	// Duplicate vote maps to 409.
	rr = doJSON(t, server, http.MethodPost, "/api/v1/votes", map[string]any{
		"voter_id": "voter-1", "session_id": sessionID, "option": "no",
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("duplicate vote: expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := decodeField(t, rr, "code"); code != "already_exists" {
		t.Fatalf("expected already_exists code, got %q", code)
	}

	// Unregistered voter maps to 404.
	rr = doJSON(t, server, http.MethodPost, "/api/v1/votes", map[string]any{
		"voter_id": "stranger", "session_id": sessionID, "option": "yes",
	})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown voter: expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}

	// Voting after the window maps to 403.
	server.polls.Store.SetNow(now.Add(2 * time.Minute))
	server.polls.Store.SeedVoter("voter-2")
	rr = doJSON(t, server, http.MethodPost, "/api/v1/votes", map[string]any{
		"voter_id": "voter-2", "session_id": sessionID, "option": "yes",
	})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("closed session vote: expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := decodeField(t, rr, "code"); code != "voting_not_allowed" {
		t.Fatalf("expected voting_not_allowed code, got %q", code)
	}

	// Rescheduling a closed session maps to 409.
	rr = doJSON(t, server, http.MethodPut, "/api/v1/sessions/"+sessionID, map[string]any{
		"duration_minutes": 5,
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("closed session update: expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := decodeField(t, rr, "code"); code != "invalid_state" {
		t.Fatalf("expected invalid_state code, got %q", code)
	}
}

func TestEligibilityOverHTTP(t *testing.T) {
	server := newTestServer()

	rr := doJSON(t, server, http.MethodGet, "/api/v1/voters/123.456.789-00/eligibility", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if status := decodeField(t, rr, "status"); status != "ABLE_TO_VOTE" {
		t.Fatalf("expected ABLE_TO_VOTE, got %q", status)
	}
}

func TestRegisterVoterValidationOverHTTP(t *testing.T) {
	server := newTestServer()

	rr := doJSON(t, server, http.MethodPost, "/api/v1/voters", map[string]any{"document": "12345678900"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPost, "/api/v1/voters", map[string]any{"document": "123.456.789-00"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPost, "/api/v1/voters", map[string]any{"document": "123.456.789-00"})
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate document, got %d body=%s", rr.Code, rr.Body.String())
	}
}
