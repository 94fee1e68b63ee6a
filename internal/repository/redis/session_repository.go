package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	appErrors "github.com/vogiaan1904/ticketbottle-nftmarket/internal/errors"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/repository"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/logger"
	pkgRedis "github.com/vogiaan1904/ticketbottle-nftmarket/pkg/redis"
)

type redisSessionRepository struct {
	cli *redis.Client
	ttl time.Duration
	l   logger.Logger
}

func NewRedisSessionRepository(cli *redis.Client, ttl time.Duration, l logger.Logger) repository.SessionRepository {
	return &redisSessionRepository{
		cli: cli,
		ttl: ttl,
		l:   l,
	}
}

func (r *redisSessionRepository) Create(ctx context.Context, ss *models.Session) error {
	data, err := json.Marshal(ss)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.cli.Set(ctx, sessionKey(ss.ID), data, r.ttl).Err(); err != nil {
		r.l.Errorf(ctx, "redisSessionRepository.Create: %v", err)
		return err
	}

	r.l.Debugf(ctx, "Session created - session_id: %s", ss.ID)

	return nil
}

func (r *redisSessionRepository) Get(ctx context.Context, ssID string) (*models.Session, error) {
	data, err := r.cli.Get(ctx, sessionKey(ssID)).Bytes()
	if err != nil {
		if pkgRedis.IsNil(err) {
			return nil, appErrors.ErrSessionNotFound
		}
		r.l.Errorf(ctx, "redisSessionRepository.Get: %v", err)
		return nil, err
	}

	var ss models.Session
	if err := json.Unmarshal(data, &ss); err != nil {
		r.l.Errorf(ctx, "redisSessionRepository.Get: %v", err)
		return nil, err
	}

	return &ss, nil
}

// Update overwrites an existing session and keeps its remaining TTL.
func (r *redisSessionRepository) Update(ctx context.Context, ss *models.Session) error {
	data, err := json.Marshal(ss)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ok, err := r.cli.SetXX(ctx, sessionKey(ss.ID), data, redis.KeepTTL).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisSessionRepository.Update: %v", err)
		return err
	}

	if !ok {
		return appErrors.ErrSessionNotFound
	}

	return nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, ssID string) error {
	if err := r.cli.Del(ctx, sessionKey(ssID)).Err(); err != nil {
		r.l.Errorf(ctx, "redisSessionRepository.Delete: %v", err)
		return err
	}

	r.l.Debugf(ctx, "Session deleted - session_id: %s", ssID)

	return nil
}

// PurgeExpired is a no-op: session keys carry a TTL and redis evicts them.
func (r *redisSessionRepository) PurgeExpired(ctx context.Context) ([]string, error) {
	return nil, nil
}
