package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fixdesk/internal/application/ticket/dto"
	"fixdesk/internal/application/ticket/usecases"
	"fixdesk/internal/shared/logger"
)

const (
	ticketDetailPrefix = "ticket:detail:"
	ticketDetailTTL    = 60 * time.Second
)

// TicketDetailCache keeps short-lived detail snapshots keyed per ticket
// and user. Every write path invalidates the ticket's snapshots so the
// current task is never served stale after a transition.
type TicketDetailCache struct {
	client *redis.Client
}

func NewTicketDetailCache(client *redis.Client) *TicketDetailCache {
	return &TicketDetailCache{client: client}
}

func (c *TicketDetailCache) Get(ctx context.Context, ticketID, userID uint) (*dto.TicketDetailView, error) {
	data, err := c.client.Get(ctx, ticketDetailKey(ticketID, userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read detail cache: %w", err)
	}

	var view dto.TicketDetailView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("failed to decode cached detail: %w", err)
	}

	return &view, nil
}

func (c *TicketDetailCache) Set(ctx context.Context, ticketID, userID uint, view *dto.TicketDetailView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to encode detail snapshot: %w", err)
	}

	if err := c.client.Set(ctx, ticketDetailKey(ticketID, userID), data, ticketDetailTTL).Err(); err != nil {
		return fmt.Errorf("failed to write detail cache: %w", err)
	}

	return nil
}

// InvalidateTicket removes every user's snapshot of the ticket.
func (c *TicketDetailCache) InvalidateTicket(ctx context.Context, ticketID uint) error {
	pattern := fmt.Sprintf("%s%d:*", ticketDetailPrefix, ticketID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate detail cache: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan detail cache keys: %w", err)
	}

	return nil
}

func ticketDetailKey(ticketID, userID uint) string {
	return fmt.Sprintf("%s%d:%d", ticketDetailPrefix, ticketID, userID)
}

// CachedDetailExecutor wraps the detail use case with the snapshot
// cache. Cache failures fall through to the database read.
type CachedDetailExecutor struct {
	inner  usecases.GetTicketDetailExecutor
	cache  *TicketDetailCache
	logger logger.Interface
}

func NewCachedDetailExecutor(inner usecases.GetTicketDetailExecutor, cache *TicketDetailCache, logger logger.Interface) *CachedDetailExecutor {
	return &CachedDetailExecutor{inner: inner, cache: cache, logger: logger}
}

func (e *CachedDetailExecutor) Execute(ctx context.Context, query usecases.GetTicketDetailQuery) (*dto.TicketDetailView, error) {
	cached, err := e.cache.Get(ctx, query.TicketID, query.UserID)
	if err != nil {
		e.logger.Warnw("detail cache read failed", "ticket_id", query.TicketID, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	view, err := e.inner.Execute(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := e.cache.Set(ctx, query.TicketID, query.UserID, view); err != nil {
		e.logger.Warnw("detail cache write failed", "ticket_id", query.TicketID, "error", err)
	}

	return view, nil
}
