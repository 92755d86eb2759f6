package db

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis 키 접두사
const (
	refreshTokenPrefix = "refresh_token:"
	blacklistPrefix    = "blacklist:"
)

// SessionStore - 리프레시 토큰 보관소 + 액세스 토큰 블랙리스트
//
// 사용자당 리프레시 토큰은 정확히 하나: PutRefreshToken의 무조건 SET이
// 곧 로테이션이다 (마지막 쓰기가 이긴다). 블랙리스트 항목의 TTL은
// 로그아웃 시점의 토큰 잔여 수명과 같으므로 스스로 만료된다.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) PutRefreshToken(ctx context.Context, username, token string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshTokenPrefix+username, token, ttl).Err()
}

// GetRefreshToken returns the stored token, or "" when none is stored.
func (s *SessionStore) GetRefreshToken(ctx context.Context, username string) (string, error) {
	val, err := s.client.Get(ctx, refreshTokenPrefix+username).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *SessionStore) DeleteRefreshToken(ctx context.Context, username string) error {
	return s.client.Del(ctx, refreshTokenPrefix+username).Err()
}

// Blacklist marks an access token as revoked for its remaining lifetime.
// No-op when the token has already expired.
func (s *SessionStore) Blacklist(ctx context.Context, accessToken string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, blacklistPrefix+accessToken, "true", ttl).Err()
}

// IsBlacklisted reports blacklist membership. A store error is returned
// as-is so the caller can fail closed instead of treating the token as
// clean.
func (s *SessionStore) IsBlacklisted(ctx context.Context, accessToken string) (bool, error) {
	n, err := s.client.Exists(ctx, blacklistPrefix+accessToken).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
