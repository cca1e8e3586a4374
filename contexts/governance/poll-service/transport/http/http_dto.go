package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateTopicRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

type UpdateTopicRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

type TopicResponse struct {
	TopicID     string    `json:"topic_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type TopicPageResponse struct {
	Items      []TopicResponse `json:"items"`
	Page       int             `json:"page"`
	Size       int             `json:"size"`
	TotalItems int64           `json:"total_items"`
	TotalPages int             `json:"total_pages"`
}

type CreateSessionRequest struct {
	TopicID         string     `json:"topic_id"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
}

type UpdateSessionRequest struct {
	StartTime       *time.Time `json:"start_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
}

type SessionResponse struct {
	SessionID string    `json:"session_id"`
	TopicID   string    `json:"topic_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionPageResponse struct {
	Items      []SessionResponse `json:"items"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	TotalItems int64             `json:"total_items"`
	TotalPages int               `json:"total_pages"`
}

type CastVoteRequest struct {
	VoterID   string `json:"voter_id"`
	SessionID string `json:"session_id"`
	Option    string `json:"option"`
}

type ChangeVoteRequest struct {
	Option string `json:"option"`
}

type VoteResponse struct {
	VoteID    string    `json:"vote_id"`
	SessionID string    `json:"session_id"`
	VoterID   string    `json:"voter_id"`
	Option    string    `json:"option"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type VotePageResponse struct {
	Items      []VoteResponse `json:"items"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalItems int64          `json:"total_items"`
	TotalPages int            `json:"total_pages"`
}

type TopicResultsResponse struct {
	TopicID       string `json:"topic_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	SessionsCount int    `json:"sessions_count"`
	YesCount      int    `json:"yes_count"`
	NoCount       int    `json:"no_count"`
	YesPercentage int    `json:"yes_percentage"`
}
