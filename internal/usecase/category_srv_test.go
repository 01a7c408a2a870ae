package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// memoryCache is a cache.Cache kept in a map of JSON blobs.
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, dest any) bool {
	raw, ok := c.entries[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err == nil {
		c.entries[key] = raw
	}
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) {
	for _, k := range keys {
		delete(c.entries, k)
	}
}

func (c *memoryCache) DeletePrefix(_ context.Context, prefix string) {
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

func (c *memoryCache) Close() error { return nil }

type fakeCategories struct {
	rows  []*entity.Category
	reads int
}

func (f *fakeCategories) Create(_ context.Context, c *entity.Category) error {
	f.rows = append(f.rows, c)
	return nil
}

func (f *fakeCategories) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, c := range f.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategories) FindAll(context.Context) ([]*entity.Category, error) {
	f.reads++
	return f.rows, nil
}

func (f *fakeCategories) Update(context.Context, *entity.Category) error { return nil }

func (f *fakeCategories) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range f.rows {
		if c.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestCategoryService_ListIsCachedUntilWrite(t *testing.T) {
	repo := &fakeCategories{}
	c := newMemoryCache()
	c.SetJSON(context.Background(), cache.ActivitiesKey("", "", 1, 10), []string{"stale"})
	svc := NewCategoryService(repo, c, zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, &request.CategoryRequest{Name: "  Pantai  "})
	require.NoError(t, err)

	list, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pantai", list[0].Name)

	_, err = svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.reads)

	created, err := svc.Create(ctx, &request.CategoryRequest{Name: "Gunung"})
	require.NoError(t, err)

	list, err = svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, repo.reads)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, c.entries)
}

func TestCategoryService_Errors(t *testing.T) {
	svc := NewCategoryService(&fakeCategories{}, cache.Noop{}, zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := svc.GetByID(ctx, "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid category ID")

	_, err = svc.GetByID(ctx, uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category not found")

	_, err = svc.Create(ctx, &request.CategoryRequest{Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	_, err = svc.Create(ctx, &request.CategoryRequest{Name: "Danau", ImageURL: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
