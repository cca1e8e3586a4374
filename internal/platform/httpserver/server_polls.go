package httpserver

import (
	"encoding/json"
	"net/http"

	pollhttp "agora/contexts/governance/poll-service/transport/http"
)

func (s *Server) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	var req pollhttp.CreateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	resp, err := s.polls.Handler.CreateTopicHandler(r.Context(), req)
	if err != nil {
		s.writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	page, ok := pageRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_page", "page and size must be integers")
		return
	}

	resp, err := s.polls.Handler.ListTopicsHandler(r.Context(), page)
	if err != nil {
		s.writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTopic(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topic_id")
	resp, err := s.polls.Handler.GetTopicHandler(r.Context(), topicID)
	if err != nil {
		s.writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateTopic(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topic_id")

	var req pollhttp.UpdateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	resp, err := s.polls.Handler.UpdateTopicHandler(r.Context(), topicID, req)
	if err != nil {
		s.writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteTopic(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topic_id")
	if err := s.polls.Handler.DeleteTopicHandler(r.Context(), topicID); err != nil {
		s.writePollDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTopicResults(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topic_id")
	resp, err := s.polls.Handler.TopicResultsHandler(r.Context(), topicID)
	if err != nil {
		s.writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSessionsByTopic(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topic_id")
	page, ok := pageRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_page", "page and size must be integers")
		return
	}

	resp, err := s.polls.Handler.ListSessionsByTopicHandler(r.Context(), topicID, page)
	if err != nil {
		s.writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req pollhttp.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	resp, err := s.polls.Handler.CreateSessionHandler(r.Context(), req)
	if err != nil {
		s.writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")
	resp, err := s.polls.Handler.GetSessionHandler(r.Context(), sessionID)
	if err != nil {
		s.writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")

	var req pollhttp.UpdateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	resp, err := s.polls.Handler.UpdateSessionHandler(r.Context(), sessionID, req)
	if err != nil {
		s.writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")
	if err := s.polls.Handler.DeleteSessionHandler(r.Context(), sessionID); err != nil {
		s.writePollDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListVotesBySession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")
	page, ok := pageRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_page", "page and size must be integers")
		return
	}

	resp, err := s.polls.Handler.ListVotesBySessionHandler(r.Context(), sessionID, page)
	if err != nil {
		s.writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req pollhttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	resp, err := s.polls.Handler.CastVoteHandler(r.Context(), req)
	if err != nil {
		s.writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetVote(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("vote_id")
	resp, err := s.polls.Handler.GetVoteHandler(r.Context(), voteID)
	if err != nil {
		s.writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChangeVote(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("vote_id")

	var req pollhttp.ChangeVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	resp, err := s.polls.Handler.ChangeVoteHandler(r.Context(), voteID, req)
	if err != nil {
		s.writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteVote(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("vote_id")
	if err := s.polls.Handler.DeleteVoteHandler(r.Context(), voteID); err != nil {
		s.writePollDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
