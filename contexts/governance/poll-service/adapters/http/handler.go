package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"agora/contexts/governance/poll-service/application/commands"
	"agora/contexts/governance/poll-service/application/queries"
	"agora/contexts/governance/poll-service/domain/entities"
	domainerrors "agora/contexts/governance/poll-service/domain/errors"
	"agora/contexts/governance/poll-service/ports"
	httptransport "agora/contexts/governance/poll-service/transport/http"
	"agora/internal/shared/pagination"
)

// Handler bridges the HTTP platform layer to the module's use cases.
type Handler struct {
	Topics       commands.TopicUseCase
	Sessions     commands.SessionUseCase
	Votes        commands.VoteUseCase
	Orchestrator commands.OrchestratorUseCase
	TopicReads   queries.TopicQueries
	SessionReads queries.SessionQueries
	VoteReads    queries.VoteQueries
	Clock        ports.Clock
	Logger       *slog.Logger
}

func (h Handler) CreateTopicHandler(ctx context.Context, req httptransport.CreateTopicRequest) (httptransport.TopicResponse, error) {
	topic, err := h.Topics.CreateTopic(ctx, commands.CreateTopicCommand{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return httptransport.TopicResponse{}, err
	}
	return mapTopic(topic), nil
}

func (h Handler) UpdateTopicHandler(ctx context.Context, topicID string, req httptransport.UpdateTopicRequest) (httptransport.TopicResponse, error) {
	topic, err := h.Topics.UpdateTopic(ctx, commands.UpdateTopicCommand{
		TopicID:     topicID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return httptransport.TopicResponse{}, err
	}
	return mapTopic(topic), nil
}

// DeleteTopicHandler removes the topic and everything under it.
func (h Handler) DeleteTopicHandler(ctx context.Context, topicID string) error {
	return h.Orchestrator.DeleteTopicCascade(ctx, topicID)
}

func (h Handler) GetTopicHandler(ctx context.Context, topicID string) (httptransport.TopicResponse, error) {
	topic, err := h.TopicReads.GetTopic(ctx, topicID)
	if err != nil {
		return httptransport.TopicResponse{}, err
	}
	return mapTopic(topic), nil
}

func (h Handler) ListTopicsHandler(ctx context.Context, page pagination.Request) (httptransport.TopicPageResponse, error) {
	result, err := h.TopicReads.ListTopics(ctx, page)
	if err != nil {
		return httptransport.TopicPageResponse{}, err
	}
	items := make([]httptransport.TopicResponse, 0, len(result.Items))
	for _, topic := range result.Items {
		items = append(items, mapTopic(topic))
	}
	return httptransport.TopicPageResponse{
		Items:      items,
		Page:       result.Page,
		Size:       result.Size,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	}, nil
}

func (h Handler) TopicResultsHandler(ctx context.Context, topicID string) (httptransport.TopicResultsResponse, error) {
	results, err := h.Orchestrator.TopicResults(ctx, topicID)
	if err != nil {
		return httptransport.TopicResultsResponse{}, err
	}
	return httptransport.TopicResultsResponse{
		TopicID:       results.TopicID,
		Title:         results.Title,
		Description:   results.Description,
		SessionsCount: results.SessionsCount,
		YesCount:      results.YesCount,
		NoCount:       results.NoCount,
		YesPercentage: results.YesPercentage,
	}, nil
}

func (h Handler) CreateSessionHandler(ctx context.Context, req httptransport.CreateSessionRequest) (httptransport.SessionResponse, error) {
	session, err := h.Sessions.CreateSession(ctx, commands.CreateSessionCommand{
		TopicID:         req.TopicID,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return h.mapSession(session), nil
}

func (h Handler) UpdateSessionHandler(ctx context.Context, sessionID string, req httptransport.UpdateSessionRequest) (httptransport.SessionResponse, error) {
	session, err := h.Sessions.UpdateSession(ctx, commands.UpdateSessionCommand{
		SessionID:       sessionID,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return h.mapSession(session), nil
}

// DeleteSessionHandler removes the session and its votes.
func (h Handler) DeleteSessionHandler(ctx context.Context, sessionID string) error {
	return h.Orchestrator.DeleteSessionCascade(ctx, sessionID)
}

func (h Handler) GetSessionHandler(ctx context.Context, sessionID string) (httptransport.SessionResponse, error) {
	session, err := h.SessionReads.GetSession(ctx, sessionID)
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return h.mapSession(session), nil
}

func (h Handler) ListSessionsByTopicHandler(ctx context.Context, topicID string, page pagination.Request) (httptransport.SessionPageResponse, error) {
	result, err := h.SessionReads.ListSessionsByTopic(ctx, topicID, page)
	if err != nil {
		return httptransport.SessionPageResponse{}, err
	}
	items := make([]httptransport.SessionResponse, 0, len(result.Items))
	for _, session := range result.Items {
		items = append(items, h.mapSession(session))
	}
	return httptransport.SessionPageResponse{
		Items:      items,
		Page:       result.Page,
		Size:       result.Size,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	}, nil
}

func (h Handler) CastVoteHandler(ctx context.Context, req httptransport.CastVoteRequest) (httptransport.VoteResponse, error) {
	option, ok := entities.ParseVoteOption(req.Option)
	if !ok {
		return httptransport.VoteResponse{}, domainerrors.ErrInvalidVoteInput
	}
	vote, err := h.Votes.CastVote(ctx, commands.CastVoteCommand{
		VoterID:   req.VoterID,
		SessionID: req.SessionID,
		Option:    option,
	})
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return mapVote(vote), nil
}

func (h Handler) ChangeVoteHandler(ctx context.Context, voteID string, req httptransport.ChangeVoteRequest) (httptransport.VoteResponse, error) {
	option, ok := entities.ParseVoteOption(req.Option)
	if !ok {
		return httptransport.VoteResponse{}, domainerrors.ErrInvalidVoteInput
	}
	vote, err := h.Votes.ChangeVote(ctx, commands.ChangeVoteCommand{
		VoteID: voteID,
		Option: option,
	})
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return mapVote(vote), nil
}

func (h Handler) DeleteVoteHandler(ctx context.Context, voteID string) error {
	return h.Votes.DeleteVote(ctx, voteID)
}

func (h Handler) GetVoteHandler(ctx context.Context, voteID string) (httptransport.VoteResponse, error) {
	vote, err := h.VoteReads.GetVote(ctx, voteID)
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return mapVote(vote), nil
}

func (h Handler) ListVotesBySessionHandler(ctx context.Context, sessionID string, page pagination.Request) (httptransport.VotePageResponse, error) {
	result, err := h.VoteReads.ListVotesBySession(ctx, sessionID, page)
	if err != nil {
		return httptransport.VotePageResponse{}, err
	}
	items := make([]httptransport.VoteResponse, 0, len(result.Items))
	for _, vote := range result.Items {
		items = append(items, mapVote(vote))
	}
	return httptransport.VotePageResponse{
		Items:      items,
		Page:       result.Page,
		Size:       result.Size,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	}, nil
}

func (h Handler) mapSession(session entities.Session) httptransport.SessionResponse {
	now := time.Now().UTC()
	if h.Clock != nil {
		now = h.Clock.Now().UTC()
	}
	return httptransport.SessionResponse{
		SessionID: session.SessionID,
		TopicID:   session.TopicID,
		StartTime: session.StartTime,
		EndTime:   session.EndTime,
		State:     string(session.StateAt(now)),
		CreatedAt: session.CreatedAt,
	}
}

func mapTopic(topic entities.Topic) httptransport.TopicResponse {
	return httptransport.TopicResponse{
		TopicID:     topic.TopicID,
		Title:       topic.Title,
		Description: topic.Description,
		CreatedAt:   topic.CreatedAt,
	}
}

func mapVote(vote entities.Vote) httptransport.VoteResponse {
	return httptransport.VoteResponse{
		VoteID:    vote.VoteID,
		SessionID: vote.SessionID,
		VoterID:   vote.VoterID,
		Option:    string(vote.Option),
		CreatedAt: vote.CreatedAt,
		UpdatedAt: vote.UpdatedAt,
	}
}
