package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

func (c *LoginChecker) SessionFromToken(ctx context.Context, token string) (*Session, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := c.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, ErrNoSession
		}
		return nil, err
	}

	userID, isAdmin, createdAt, err := parseSessionValue(cmd.Val())
	if err != nil {
		return nil, err
	}

	if time.Since(createdAt) > c.ttl {
		return nil, ErrNoSession
	}

	return &Session{
		UserID:    userID,
		IsAdmin:   isAdmin,
		CreatedAt: createdAt,
	}, nil
}
