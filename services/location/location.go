package location

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/HilomPH/Hilom-Backend/services"
)

// Snapshot is a provider's last reported position for a booking.
type Snapshot struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

const keyPrefix = "booking:location:"

// Cache keeps the live location snapshot per booking in Redis. The
// bookings table holds the durable copy; this one serves the frequent
// customer-side polls without touching Postgres.
type Cache struct {
	redis *services.RedisService
	ttl   time.Duration
}

func NewCache(redis *services.RedisService, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Cache{
		redis: redis,
		ttl:   ttl,
	}
}

func key(bookingID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, bookingID)
}

func (c *Cache) Put(ctx context.Context, bookingID int64, snap Snapshot) error {
	k := key(bookingID)
	err := c.redis.SetHash(ctx, k, map[string]interface{}{
		"lat":         snap.Latitude,
		"lng":         snap.Longitude,
		"recorded_at": snap.RecordedAt.Unix(),
	})
	if err != nil {
		return err
	}
	return c.redis.Expire(ctx, k, c.ttl)
}

// Get returns the cached snapshot, or nil when none is stored.
func (c *Cache) Get(ctx context.Context, bookingID int64) (*Snapshot, error) {
	fields, err := c.redis.GetHash(ctx, key(bookingID))
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(fields["lat"], 64)
	if err != nil {
		return nil, fmt.Errorf("parse lat %q: %w", fields["lat"], err)
	}
	lng, err := strconv.ParseFloat(fields["lng"], 64)
	if err != nil {
		return nil, fmt.Errorf("parse lng %q: %w", fields["lng"], err)
	}
	ts, err := strconv.ParseInt(fields["recorded_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse recorded_at %q: %w", fields["recorded_at"], err)
	}

	return &Snapshot{
		Latitude:   lat,
		Longitude:  lng,
		RecordedAt: time.Unix(ts, 0).UTC(),
	}, nil
}

func (c *Cache) Delete(ctx context.Context, bookingID int64) error {
	return c.redis.Delete(ctx, key(bookingID))
}
