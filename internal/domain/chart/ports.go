package chart

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/kundali/internal/domain/natal"
)

// Computer produces a chart for a birth input. *natal.Engine satisfies it.
type Computer interface {
	Compute(ctx context.Context, in natal.BirthInput) (natal.ChartResult, error)
}

// Repository persists chart records.
type Repository interface {
	Save(ctx context.Context, record Record) error
	Get(ctx context.Context, owner string, id uuid.UUID) (Record, bool, error)
	List(ctx context.Context, owner string, limit int) ([]Record, error)
}

// Cache stores computed charts keyed by a digest of the resolved birth input.
type Cache interface {
	Get(ctx context.Context, key string) (natal.ChartResult, bool, error)
	Save(ctx context.Context, key string, chart natal.ChartResult, ttl time.Duration) error
}

// Archive keeps immutable JSON snapshots of stored charts.
type Archive interface {
	Put(ctx context.Context, key string, payload []byte, contentType string) error
}
