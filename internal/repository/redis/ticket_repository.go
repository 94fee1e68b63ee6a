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

// markUsedScript flips a valid ticket to used and stamps ARGV[1] as used_at.
// Returns -1 for a missing ticket, 0 when the ticket is not valid, and the
// updated ticket otherwise.
const markUsedScript = `
local data = redis.call('GET', KEYS[1])
if not data then
	return -1
end

local t = cjson.decode(data)
if t['status'] ~= 'valid' then
	return 0
end

t['status'] = 'used'
t['used_at'] = ARGV[1]
local out = cjson.encode(t)
redis.call('SET', KEYS[1], out, 'KEEPTTL')
return out
`

type redisTicketRepository struct {
	cli *redis.Client
	ttl time.Duration
	l   logger.Logger
}

// NewRedisTicketRepository stores tickets for as long as the owning
// session lives; ttl should match the session TTL.
func NewRedisTicketRepository(cli *redis.Client, ttl time.Duration, l logger.Logger) repository.TicketRepository {
	return &redisTicketRepository{
		cli: cli,
		ttl: ttl,
		l:   l,
	}
}

func (r *redisTicketRepository) Add(ctx context.Context, t *models.PurchasedTicket) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket: %w", err)
	}

	listKey := sessionTicketsKey(t.SessionID)

	pipe := r.cli.Pipeline()
	pipe.Set(ctx, ticketKey(t.TicketID), data, r.ttl)
	pipe.RPush(ctx, listKey, t.TicketID)
	pipe.Expire(ctx, listKey, r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		r.l.Errorf(ctx, "redisTicketRepository.Add: %v", err)
		return err
	}

	r.l.Debugf(ctx, "Ticket stored - ticket_id: %s, session_id: %s", t.TicketID, t.SessionID)

	return nil
}

func (r *redisTicketRepository) Get(ctx context.Context, tID string) (*models.PurchasedTicket, error) {
	data, err := r.cli.Get(ctx, ticketKey(tID)).Bytes()
	if err != nil {
		if pkgRedis.IsNil(err) {
			return nil, appErrors.ErrTicketNotFound
		}
		r.l.Errorf(ctx, "redisTicketRepository.Get: %v", err)
		return nil, err
	}

	var t models.PurchasedTicket
	if err := json.Unmarshal(data, &t); err != nil {
		r.l.Errorf(ctx, "redisTicketRepository.Get: %v", err)
		return nil, err
	}

	return &t, nil
}

func (r *redisTicketRepository) ListBySession(ctx context.Context, ssID string) ([]models.PurchasedTicket, error) {
	ids, err := r.cli.LRange(ctx, sessionTicketsKey(ssID), 0, -1).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisTicketRepository.ListBySession: %v", err)
		return nil, err
	}

	tickets := make([]models.PurchasedTicket, 0, len(ids))
	if len(ids) == 0 {
		return tickets, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = ticketKey(id)
	}

	vals, err := r.cli.MGet(ctx, keys...).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisTicketRepository.ListBySession: %v", err)
		return nil, err
	}

	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			r.l.Warnf(ctx, "redisTicketRepository.ListBySession: ticket %s expired", ids[i])
			continue
		}

		var t models.PurchasedTicket
		if err := json.Unmarshal([]byte(s), &t); err != nil {
			r.l.Errorf(ctx, "redisTicketRepository.ListBySession: %v", err)
			return nil, err
		}
		tickets = append(tickets, t)
	}

	return tickets, nil
}

func (r *redisTicketRepository) MarkUsed(ctx context.Context, tID string, at time.Time) (*models.PurchasedTicket, error) {
	res, err := r.cli.Eval(ctx, markUsedScript, []string{ticketKey(tID)}, at.Format(time.RFC3339Nano)).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisTicketRepository.MarkUsed: %v", err)
		return nil, err
	}

	switch v := res.(type) {
	case int64:
		if v == -1 {
			return nil, appErrors.ErrTicketNotFound
		}
		return nil, appErrors.ErrTicketNotValid
	case string:
		var t models.PurchasedTicket
		if err := json.Unmarshal([]byte(v), &t); err != nil {
			r.l.Errorf(ctx, "redisTicketRepository.MarkUsed: %v", err)
			return nil, err
		}
		return &t, nil
	default:
		return nil, fmt.Errorf("unexpected mark used reply: %v", res)
	}
}

func (r *redisTicketRepository) DeleteBySession(ctx context.Context, ssID string) error {
	listKey := sessionTicketsKey(ssID)

	ids, err := r.cli.LRange(ctx, listKey, 0, -1).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisTicketRepository.DeleteBySession: %v", err)
		return err
	}

	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, listKey)
	for _, id := range ids {
		keys = append(keys, ticketKey(id))
	}

	if err := r.cli.Del(ctx, keys...).Err(); err != nil {
		r.l.Errorf(ctx, "redisTicketRepository.DeleteBySession: %v", err)
		return err
	}

	return nil
}
