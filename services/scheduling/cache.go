package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"clinicbook/models"
	"clinicbook/utils"
)

// SlotCache caches computed slot lists per (doctor, date) for a short TTL.
// Every appointment or schedule write for a doctor invalidates the affected
// keys, so stale reads are bounded by the TTL even if an invalidation is
// missed.
type SlotCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewSlotCache constructs a SlotCache; a zero TTL disables caching.
func NewSlotCache(client *redis.Client, ttl time.Duration) *SlotCache {
	if ttl <= 0 {
		return nil
	}
	return &SlotCache{Client: client, TTL: ttl}
}

func slotKey(doctorID string, day time.Time) string {
	return fmt.Sprintf("slots:%s:%s", doctorID, day.Format("2006-01-02"))
}

// Get returns the cached slot list, if present. Cache failures are treated as
// misses.
func (c *SlotCache) Get(ctx context.Context, doctorID string, day time.Time) ([]models.Slot, bool) {
	data, err := c.Client.Get(ctx, slotKey(doctorID, day)).Bytes()
	if err != nil {
		return nil, false
	}
	var slots []models.Slot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

// Set stores the slot list for the TTL.
func (c *SlotCache) Set(ctx context.Context, doctorID string, day time.Time, slots []models.Slot) {
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, slotKey(doctorID, day), data, c.TTL).Err(); err != nil {
		utils.GetLogger().Warn("slot cache set failed", zap.Error(err))
	}
}

// Invalidate drops the cached list for one doctor and date.
func (c *SlotCache) Invalidate(ctx context.Context, doctorID string, day time.Time) {
	if err := c.Client.Del(ctx, slotKey(doctorID, day)).Err(); err != nil {
		utils.GetLogger().Warn("slot cache invalidation failed", zap.Error(err))
	}
}

// InvalidateDoctor drops every cached list for a doctor; used when the
// recurring schedule itself changes and all dates are affected.
func (c *SlotCache) InvalidateDoctor(ctx context.Context, doctorID string) {
	pattern := fmt.Sprintf("slots:%s:*", doctorID)
	iter := c.Client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.Client.Del(ctx, iter.Val()).Err(); err != nil {
			utils.GetLogger().Warn("slot cache invalidation failed", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		utils.GetLogger().Warn("slot cache scan failed", zap.Error(err))
	}
}
