package store

import (
	"context"
	"time"

	apperrors "careportal-reminders/internal/common/errors"
	"careportal-reminders/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisMarkers keeps medication dose-reminder markers in Redis, one key per
// (schedule, dose time, date), value = the send timestamp. Keys carry no TTL;
// the original system never expired markers and no retention policy is
// specified, so none is invented here.
type RedisMarkers struct {
	rdb *redis.Client
}

func NewRedisMarkers(rdb *redis.Client) *RedisMarkers {
	return &RedisMarkers{rdb: rdb}
}

func (m *RedisMarkers) Exists(ctx context.Context, marker models.DoseMarker) (bool, error) {
	_, err := m.rdb.Get(ctx, marker.Key()).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewStoreUnavailableError(err)
	}
	return true, nil
}

func (m *RedisMarkers) Put(ctx context.Context, marker models.DoseMarker, sentAt time.Time) error {
	if err := m.rdb.Set(ctx, marker.Key(), sentAt.UTC().Format(time.RFC3339), 0).Err(); err != nil {
		return apperrors.NewStoreUnavailableError(err)
	}
	return nil
}
