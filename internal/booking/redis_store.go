package booking

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dkovacev/apartment-manager/internal/model"
)

// RedisStore persists each apartment's booking list as a single JSON blob
// under bookings:<apartmentID>, the same keyed-blob layout the browser
// client uses with local storage.  Last write wins, matching the accepted
// limitation of the original.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

func bookingsKey(apartmentID uint64) string {
	return fmt.Sprintf("bookings:%d", apartmentID)
}

func (s *RedisStore) Load(ctx context.Context, apartmentID uint64) ([]model.Booking, error) {
	raw, err := s.rdb.Get(ctx, bookingsKey(apartmentID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	var out []model.Booking
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return out, nil
}

func (s *RedisStore) Save(ctx context.Context, apartmentID uint64, bookings []model.Booking) error {
	raw, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}
	if err := s.rdb.Set(ctx, bookingsKey(apartmentID), raw, 0).Err(); err != nil {
		return fmt.Errorf("save bookings: %w", err)
	}
	return nil
}
