package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	pollservice "agora/contexts/governance/poll-service"
	pollerrors "agora/contexts/governance/poll-service/domain/errors"
	voterregistry "agora/contexts/identity-access/voter-registry"
	registryerrors "agora/contexts/identity-access/voter-registry/domain/errors"
	"agora/internal/shared/pagination"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "agora/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	polls    pollservice.Module
	registry voterregistry.Module
}

func New(
	polls pollservice.Module,
	registry voterregistry.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		polls:    polls,
		registry: registry,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/v1/topics", s.handleCreateTopic)
	s.mux.HandleFunc("GET /api/v1/topics", s.handleListTopics)
	s.mux.HandleFunc("GET /api/v1/topics/{topic_id}", s.handleGetTopic)
	s.mux.HandleFunc("PUT /api/v1/topics/{topic_id}", s.handleUpdateTopic)
	s.mux.HandleFunc("DELETE /api/v1/topics/{topic_id}", s.handleDeleteTopic)
	s.mux.HandleFunc("GET /api/v1/topics/{topic_id}/results", s.handleTopicResults)
	s.mux.HandleFunc("GET /api/v1/topics/{topic_id}/sessions", s.handleListSessionsByTopic)

	s.mux.HandleFunc("POST /api/v1/sessions", s.handleCreateSession)
	s.mux.HandleFunc("GET /api/v1/sessions/{session_id}", s.handleGetSession)
	s.mux.HandleFunc("PUT /api/v1/sessions/{session_id}", s.handleUpdateSession)
	s.mux.HandleFunc("DELETE /api/v1/sessions/{session_id}", s.handleDeleteSession)
	s.mux.HandleFunc("GET /api/v1/sessions/{session_id}/votes", s.handleListVotesBySession)

	s.mux.HandleFunc("POST /api/v1/votes", s.handleCastVote)
	s.mux.HandleFunc("GET /api/v1/votes/{vote_id}", s.handleGetVote)
	s.mux.HandleFunc("PUT /api/v1/votes/{vote_id}", s.handleChangeVote)
	s.mux.HandleFunc("DELETE /api/v1/votes/{vote_id}", s.handleDeleteVote)

	s.mux.HandleFunc("POST /api/v1/voters", s.handleRegisterVoter)
	s.mux.HandleFunc("GET /api/v1/voters/{voter_id}", s.handleGetVoter)
	s.mux.HandleFunc("DELETE /api/v1/voters/{voter_id}", s.handleDeleteVoter)
	s.mux.HandleFunc("GET /api/v1/voters/{document}/eligibility", s.handleCheckEligibility)
}

// pageRequest reads the opaque page/size query parameters. Bounds are
// enforced by the query layer, not here.
func pageRequest(r *http.Request) (pagination.Request, bool) {
	query := r.URL.Query()
	req := pagination.Request{}
	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return pagination.Request{}, false
		}
		req.Page = page
	}
	if raw := query.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return pagination.Request{}, false
		}
		req.Size = size
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}

// writePollDomainError maps poll-service error kinds onto status codes.
func (s *Server) writePollDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pollerrors.ErrTopicNotFound),
		errors.Is(err, pollerrors.ErrSessionNotFound),
		errors.Is(err, pollerrors.ErrVoteNotFound),
		errors.Is(err, pollerrors.ErrVoterNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, pollerrors.ErrVoteAlreadyCast):
		writeError(w, http.StatusConflict, "already_exists", err.Error())
	case errors.Is(err, pollerrors.ErrSessionOpen),
		errors.Is(err, pollerrors.ErrSessionClosed):
		writeError(w, http.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, pollerrors.ErrVotingNotAllowed):
		writeError(w, http.StatusForbidden, "voting_not_allowed", err.Error())
	case errors.Is(err, pollerrors.ErrInvalidTopicInput),
		errors.Is(err, pollerrors.ErrInvalidSessionInput),
		errors.Is(err, pollerrors.ErrInvalidVoteInput):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	default:
		s.logger.Error("unhandled poll domain error",
			"event", "http_poll_unhandled_error",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
	}
}

// writeRegistryDomainError maps voter-registry error kinds onto status codes.
func (s *Server) writeRegistryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registryerrors.ErrVoterNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, registryerrors.ErrVoterAlreadyExists):
		writeError(w, http.StatusConflict, "already_exists", err.Error())
	case errors.Is(err, registryerrors.ErrInvalidVoterInput):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	default:
		s.logger.Error("unhandled registry domain error",
			"event", "http_registry_unhandled_error",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
	}
}
