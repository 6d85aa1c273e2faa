package auth

import (
	"context"
	"errors"
	"time"
)

var ErrNoSession = errors.New("no session for given token")

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

// Session is the server-side view of a logged-in user,
// resolved from the session token sent with each request.
type Session struct {
	UserID    int
	IsAdmin   bool
	CreatedAt time.Time
}

type Checker interface {
	SessionFromToken(ctx context.Context, token string) (*Session, error)
}
