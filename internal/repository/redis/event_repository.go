package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	appErrors "github.com/vogiaan1904/ticketbottle-nftmarket/internal/errors"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/repository"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/logger"
)

const (
	fieldMeta      = "meta"
	fieldAvailable = "available"
	fieldSold      = "sold"
	fieldBurnt     = "burnt"
	fieldTotal     = "total"
)

// settleScript moves one ticket from the available pool into the pool named
// by ARGV[1]. Returns -1 for a missing event and 0 when nothing is left.
const settleScript = `
local key = KEYS[1]
if redis.call('EXISTS', key) == 0 then
	return -1
end

local available = tonumber(redis.call('HGET', key, 'available'))
if available == nil or available <= 0 then
	return 0
end

redis.call('HINCRBY', key, 'available', -1)
redis.call('HINCRBY', key, ARGV[1], 1)
return 1
`

type redisEventRepository struct {
	cli *redis.Client
	l   logger.Logger
}

func NewRedisEventRepository(cli *redis.Client, l logger.Logger) repository.EventRepository {
	return &redisEventRepository{
		cli: cli,
		l:   l,
	}
}

func (r *redisEventRepository) Seed(ctx context.Context, events []models.Event) error {
	pipe := r.cli.TxPipeline()
	pipe.Del(ctx, eventsIndexKey())

	for i, ev := range events {
		meta, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", ev.ID, err)
		}

		pipe.HSet(ctx, eventKey(ev.ID),
			fieldMeta, string(meta),
			fieldAvailable, ev.AvailableTickets,
			fieldSold, ev.SoldTickets,
			fieldBurnt, ev.BurntTickets,
			fieldTotal, ev.TotalTickets,
		)
		pipe.ZAdd(ctx, eventsIndexKey(), redis.Z{Score: float64(i), Member: ev.ID})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		r.l.Errorf(ctx, "redisEventRepository.Seed: %v", err)
		return err
	}

	r.l.Debugf(ctx, "Seeded %d events", len(events))

	return nil
}

func (r *redisEventRepository) List(ctx context.Context) ([]models.Event, error) {
	ids, err := r.cli.ZRange(ctx, eventsIndexKey(), 0, -1).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisEventRepository.List: %v", err)
		return nil, err
	}

	if len(ids) == 0 {
		return []models.Event{}, nil
	}

	pipe := r.cli.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, eventKey(id))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		r.l.Errorf(ctx, "redisEventRepository.List: %v", err)
		return nil, err
	}

	events := make([]models.Event, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			r.l.Warnf(ctx, "redisEventRepository.List: indexed event %s has no data", ids[i])
			continue
		}

		ev, err := decodeEvent(fields)
		if err != nil {
			r.l.Errorf(ctx, "redisEventRepository.List: %v", err)
			return nil, err
		}
		events = append(events, *ev)
	}

	return events, nil
}

func (r *redisEventRepository) Get(ctx context.Context, eID string) (*models.Event, error) {
	fields, err := r.cli.HGetAll(ctx, eventKey(eID)).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisEventRepository.Get: %v", err)
		return nil, err
	}

	if len(fields) == 0 {
		return nil, appErrors.ErrEventNotFound
	}

	return decodeEvent(fields)
}

func (r *redisEventRepository) Settle(ctx context.Context, eID string, o models.Outcome) (*models.Event, error) {
	var field string
	switch o {
	case models.OutcomeSold:
		field = fieldSold
	case models.OutcomeBurnt:
		field = fieldBurnt
	default:
		return nil, fmt.Errorf("unknown outcome: %s", o)
	}

	res, err := r.cli.Eval(ctx, settleScript, []string{eventKey(eID)}, field).Int64()
	if err != nil {
		r.l.Errorf(ctx, "redisEventRepository.Settle: %v", err)
		return nil, err
	}

	switch res {
	case -1:
		return nil, appErrors.ErrEventNotFound
	case 0:
		return nil, appErrors.ErrSoldOut
	}

	r.l.Debugf(ctx, "Settled event %s as %s", eID, o)

	return r.Get(ctx, eID)
}

func decodeEvent(fields map[string]string) (*models.Event, error) {
	var ev models.Event
	if err := json.Unmarshal([]byte(fields[fieldMeta]), &ev); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	counters := []struct {
		name string
		dst  *int
	}{
		{fieldAvailable, &ev.AvailableTickets},
		{fieldSold, &ev.SoldTickets},
		{fieldBurnt, &ev.BurntTickets},
		{fieldTotal, &ev.TotalTickets},
	}
	for _, c := range counters {
		v, err := strconv.Atoi(fields[c.name])
		if err != nil {
			return nil, fmt.Errorf("invalid %s counter for event %s: %w", c.name, ev.ID, err)
		}
		*c.dst = v
	}

	return &ev, nil
}
