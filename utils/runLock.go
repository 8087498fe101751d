package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"

	"github.com/acmecorp/ops_alerts/config"
)

// ErrRunInProgress means another invocation for the same cost center holds
// the lock. Treated as fatal by the caller: better to skip a run than to
// double-send the alert.
var ErrRunInProgress = errors.New("another alert run is in progress")

// ObtainRunLock takes a TTL-bound lock keyed by cost center so overlapping
// scheduled runs cannot both send. When Redis is not configured the lock is
// disabled and the returned release func is a no-op.
func ObtainRunLock(ctx context.Context, costCenter string, ttl time.Duration) (func(), error) {
	logger := config.GetLogger()
	locker := config.GetRedisLock()
	if locker == nil {
		return func() {}, nil
	}

	lockKey := fmt.Sprintf("alert-run:%s", costCenter)
	lock, err := locker.Obtain(ctx, lockKey, ttl, nil)
	if err == redislock.ErrNotObtained {
		config.LogError(logger, "utils", "ObtainRunLock", "Could not obtain run lock", lockKey, err)
		return nil, ErrRunInProgress
	} else if err != nil {
		config.LogError(logger, "utils", "ObtainRunLock", "Error obtaining run lock", lockKey, err)
		return nil, err
	}

	return func() {
		_ = lock.Release(ctx)
	}, nil
}
