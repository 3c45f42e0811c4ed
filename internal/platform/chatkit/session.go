package chatkit

import (
	"context"
	"net/http"
)

// Session is the acting user's provider session: the id used to exclude self
// from notifications and the token that authenticates chat-side calls.
type Session struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type sessionKey struct{}

// NewContext returns a context carrying the session. All REST calls made with
// the returned context send the session token.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext extracts the session stored by NewContext.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

type createSessionRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type sessionEnvelope struct {
	Session Session `json:"session"`
}

// CreateSession authenticates a user against the provider and returns a fresh
// session.
func (c *Client) CreateSession(ctx context.Context, login, password string) (*Session, error) {
	var env sessionEnvelope
	err := c.do(ctx, http.MethodPost, "/session", createSessionRequest{Login: login, Password: password}, &env)
	if err != nil {
		return nil, err
	}
	return &env.Session, nil
}
