package chartcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/kundali/internal/domain/chart"
	"github.com/yanqian/kundali/internal/domain/natal"
)

// ValkeyCache stores computed charts in a Valkey-compatible database.
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string) *ValkeyCache {
	if prefix == "" {
		prefix = "kundali"
	}
	return &ValkeyCache{client: client, prefix: prefix}
}

func (c *ValkeyCache) Get(ctx context.Context, key string) (natal.ChartResult, bool, error) {
	cmd := c.client.B().Get().Key(c.entryKey(key)).Build()
	payload, err := c.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return natal.ChartResult{}, false, nil
		}
		return natal.ChartResult{}, false, err
	}
	var result natal.ChartResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return natal.ChartResult{}, false, err
	}
	return result, true, nil
}

func (c *ValkeyCache) Save(ctx context.Context, key string, result natal.ChartResult, ttl time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	builder := c.client.B().Set().Key(c.entryKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}

// Close releases the underlying client.
func (c *ValkeyCache) Close() {
	c.client.Close()
}

func (c *ValkeyCache) entryKey(key string) string {
	return fmt.Sprintf("%s:chart:%s", c.prefix, key)
}

var _ chart.Cache = (*ValkeyCache)(nil)
