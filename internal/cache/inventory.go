package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix = "user:%s"
	TankKeyPrefix = "tank:%s"
)

const (
	UserTTL = 5 * time.Minute
	// A cached tank embeds its owner projection, so profile edits can be
	// visible on tank reads only after this TTL elapses.
	TankTTL = 5 * time.Minute
)

func UserKey(userID string) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func TankKey(tankID string) string {
	return fmt.Sprintf(TankKeyPrefix, tankID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID string) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateTank(ctx context.Context, tankID string) {
	Invalidate(ctx, TankKey(tankID))
}
