package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"fixdesk/internal/domain/access"
	"fixdesk/internal/shared/logger"
)

const (
	helpdeskRolePrefix = "access:helpdesk:"
	helpdeskRoleTTL    = 30 * time.Minute
)

// CachedResolver decorates a permission resolver with a Redis cache for
// the helpdesk check, the hottest permission read on the board path.
// Cache failures degrade to the underlying resolver, never to a denial.
type CachedResolver struct {
	inner  access.Resolver
	client *redis.Client
	logger logger.Interface
}

func NewCachedResolver(inner access.Resolver, client *redis.Client, logger logger.Interface) *CachedResolver {
	return &CachedResolver{inner: inner, client: client, logger: logger}
}

func (c *CachedResolver) RoleTasksFor(ctx context.Context, userID uint) ([]*access.RoleTask, error) {
	return c.inner.RoleTasksFor(ctx, userID)
}

func (c *CachedResolver) CanActOnTask(ctx context.Context, userID, taskID uint) (bool, error) {
	return c.inner.CanActOnTask(ctx, userID, taskID)
}

func (c *CachedResolver) IsHelpdesk(ctx context.Context, userID uint) (bool, error) {
	key := helpdeskRoleKey(userID)

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		return cached == "1", nil
	}
	if err != redis.Nil {
		c.logger.Warnw("helpdesk cache read failed", "user_id", userID, "error", err)
	}

	helpdesk, err := c.inner.IsHelpdesk(ctx, userID)
	if err != nil {
		return false, err
	}

	value := "0"
	if helpdesk {
		value = "1"
	}
	if err := c.client.Set(ctx, key, value, helpdeskRoleTTL).Err(); err != nil {
		c.logger.Warnw("helpdesk cache write failed", "user_id", userID, "error", err)
	}

	return helpdesk, nil
}

func (c *CachedResolver) CanCreateInProcess(ctx context.Context, userID, processID uint) (bool, error) {
	return c.inner.CanCreateInProcess(ctx, userID, processID)
}

func (c *CachedResolver) CanAddCost(ctx context.Context, userID, taskID uint) (bool, error) {
	return c.inner.CanAddCost(ctx, userID, taskID)
}

func (c *CachedResolver) HasPrivilege(ctx context.Context, userID, privilegeID uint) (bool, error) {
	return c.inner.HasPrivilege(ctx, userID, privilegeID)
}

// InvalidateUser drops the cached helpdesk flag after a role change.
func (c *CachedResolver) InvalidateUser(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, helpdeskRoleKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate helpdesk cache: %w", err)
	}
	return nil
}

func helpdeskRoleKey(userID uint) string {
	return helpdeskRolePrefix + strconv.FormatUint(uint64(userID), 10)
}
