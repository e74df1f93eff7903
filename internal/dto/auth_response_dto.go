package dto

import (
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
)

// LoginRequest carries the credentials posted to the JSON login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionResponse reports whether the caller is logged in.
type SessionResponse struct {
	LoggedIn bool   `json:"loggedIn"`
	Username string `json:"username,omitempty"`
}

// ToSessionResponse converts a session, which may be nil, to its response.
func ToSessionResponse(session *domain.Session) SessionResponse {
	if session == nil || !session.LoggedIn {
		return SessionResponse{}
	}
	return SessionResponse{LoggedIn: true, Username: session.Username}
}

// ErrorResponse is the body of every failed API request.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
