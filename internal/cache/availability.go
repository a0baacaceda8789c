package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 30 * time.Second

// Availability caches free-seat lists per (bus, journey date). The
// cache is advisory: reservations always validate against the database
// inside the critical section, so a stale entry can only cause an extra
// conflict response, never an oversell. A nil Client disables caching.
type Availability struct {
	Client *redis.Client
	TTL    time.Duration
}

func Key(busID int64, journeyDate string) string {
	return fmt.Sprintf("seats:%d:%s", busID, journeyDate)
}

func (c Availability) ttl() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return defaultTTL
}

// Get returns the cached free-seat list and whether it was present.
func (c Availability) Get(ctx context.Context, busID int64, journeyDate string) ([]int, bool) {
	if c.Client == nil {
		return nil, false
	}
	data, err := c.Client.Get(ctx, Key(busID, journeyDate)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[CACHE] get failed for %s: %v", Key(busID, journeyDate), err)
		}
		return nil, false
	}
	var seats []int
	if err := json.Unmarshal([]byte(data), &seats); err != nil {
		return nil, false
	}
	return seats, true
}

// Set stores the free-seat list with a short TTL; failures are logged
// and otherwise ignored.
func (c Availability) Set(ctx context.Context, busID int64, journeyDate string, seats []int) {
	if c.Client == nil {
		return
	}
	data, err := json.Marshal(seats)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, Key(busID, journeyDate), data, c.ttl()).Err(); err != nil {
		log.Printf("[CACHE] set failed for %s: %v", Key(busID, journeyDate), err)
	}
}

// Invalidate drops the cached entry after a reserve or release commits.
func (c Availability) Invalidate(ctx context.Context, busID int64, journeyDate string) {
	if c.Client == nil {
		return
	}
	if err := c.Client.Del(ctx, Key(busID, journeyDate)).Err(); err != nil {
		log.Printf("[CACHE] invalidate failed for %s: %v", Key(busID, journeyDate), err)
	}
}
