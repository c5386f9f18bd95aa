package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/udhay1409/vinushree-travels-api/internal/usecase"
)

const (
	dashboardKey = "dashboard:stats"
	dashboardTTL = 60 * time.Second
)

// DashboardCache keeps the aggregate JSON in Redis for a minute so the
// admin dashboard does not hammer the leads table. Misses and Redis
// errors both read as a cache miss.
type DashboardCache struct {
	client *redis.Client
}

func NewDashboardCache(client *redis.Client) *DashboardCache {
	return &DashboardCache{client: client}
}

func (c *DashboardCache) Get(ctx context.Context) (*usecase.DashboardOutput, bool) {
	raw, err := c.client.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		return nil, false
	}

	var out usecase.DashboardOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return &out, true
}

func (c *DashboardCache) Set(ctx context.Context, out *usecase.DashboardOutput) {
	raw, err := json.Marshal(out)
	if err != nil {
		return
	}
	c.client.Set(ctx, dashboardKey, raw, dashboardTTL)
}
