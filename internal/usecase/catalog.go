package usecase

import (
	"context"
	"fmt"

	"travel-booking/pkg/cache"

	"github.com/google/uuid"
)

// cached serves a catalog read from the cache, loading and storing it on a miss.
func cached[T any](ctx context.Context, c cache.Cache, key string, load func(context.Context) (T, error)) (T, error) {
	var value T
	if c.GetJSON(ctx, key, &value) {
		return value, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	c.SetJSON(ctx, key, value)
	return value, nil
}

func parseID(kind, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID", kind)
	}
	return parsed, nil
}
