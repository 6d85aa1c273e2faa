package auth

import "context"

type contextKey string

const sessionKey contextKey = "fittrack-auth-session"

// ContextWithSession stores the resolved session on the context.
func ContextWithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromContext retrieves the session stored by ContextWithSession.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionKey).(*Session)
	return session, ok
}
