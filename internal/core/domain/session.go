package domain

import "time"

// Session is the authenticated browser state. A zero Session is anonymous.
type Session struct {
	LoggedIn  bool      `json:"loggedIn"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}
