package sessions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
)

// Storage keeps opaque session tokens in redis, mapped to user IDs with a
// TTL. Tokens never leave the server in any other form, so no signing is
// involved.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func key(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (s *Storage) Set(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	return s.redis.Set(ctx, key(token), strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

func (s *Storage) Get(ctx context.Context, token string) (uint, error) {
	value, err := s.redis.Get(ctx, key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, errorz.ErrSessionExpired
		}
		return 0, err
	}
	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errorz.ErrSessionExpired
	}
	return uint(userID), nil
}

func (s *Storage) Delete(ctx context.Context, token string) error {
	return s.redis.Del(ctx, key(token)).Err()
}
