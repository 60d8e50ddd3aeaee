package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	userListPrefix = "sitee:history:" // Recent events per user: sitee:history:{user_id}
	historyTTL     = 7 * 24 * time.Hour
	maxEvents      = 50
)

// Event is one recorded generation.
type Event struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Kind      string    `json:"kind"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"created_at"`
}

// Repo keeps a bounded, expiring log of recent generations per user in
// Redis. A nil client disables the log entirely; every method then
// behaves as a no-op.
type Repo struct {
	client *redis.Client
}

func NewRepo(client *redis.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) Enabled() bool {
	return r != nil && r.client != nil
}

// Record prepends the event to the user's log, trims it to the cap and
// refreshes the TTL.
func (r *Repo) Record(ctx context.Context, ev Event) error {
	if !r.Enabled() {
		return nil
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal history event: %w", err)
	}

	key := userListPrefix + ev.UserID
	pipe := r.client.Pipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, maxEvents-1)
	pipe.Expire(ctx, key, historyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record history event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (r *Repo) Recent(ctx context.Context, userID string, limit int64) ([]Event, error) {
	if !r.Enabled() {
		return []Event{}, nil
	}
	if limit <= 0 || limit > maxEvents {
		limit = maxEvents
	}

	vals, err := r.client.LRange(ctx, userListPrefix+userID, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	out := []Event{}
	for _, v := range vals {
		var ev Event
		if err := json.Unmarshal([]byte(v), &ev); err != nil {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}
