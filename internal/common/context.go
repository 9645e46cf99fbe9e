package common

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const SessionKey contextKey = "session"

// Session identifies the authenticated caller. TenantID is the effective
// owner id: the caller's own id for owners, the stored owner_uid for
// admins and drivers. It is resolved once per request by the session
// middleware and threaded through every service call.
type Session struct {
	UserID   uuid.UUID `json:"user_id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Role     string    `json:"role"`
}

// WithSession returns a context carrying the resolved session.
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}

// SessionFromContext extracts the session from the request context.
func SessionFromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(SessionKey).(Session)
	return sess, ok
}

// RequireSession extracts the session or fails with ErrNoSession.
func RequireSession(ctx context.Context) (Session, error) {
	sess, ok := SessionFromContext(ctx)
	if !ok {
		return Session{}, ErrNoSession
	}
	return sess, nil
}
