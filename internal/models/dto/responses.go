package dto

import "time"

// TokenResponse is the OAuth2 bearer-token body returned by POST /token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MeResponse describes the authenticated caller.
type MeResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// VisitResponse is one row of the caller's received-visits feed.
type VisitResponse struct {
	Visitor   string    `json:"visitor"`
	Timestamp time.Time `json:"timestamp"`
}
