package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterVoterRequest struct {
	Document string `json:"document"`
}

type VoterResponse struct {
	VoterID   string    `json:"voter_id"`
	Document  string    `json:"document"`
	CreatedAt time.Time `json:"created_at"`
}

type EligibilityResponse struct {
	Status string `json:"status"`
}
