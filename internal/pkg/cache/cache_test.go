package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	items      map[string][]byte
	failGet    bool
	failDelete bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	if m.failGet {
		return false, errors.New("connection refused")
	}
	data, ok := m.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items[key] = data
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	if m.failDelete {
		return errors.New("connection refused")
	}
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *memoryCache) Ping(context.Context) error { return nil }
func (m *memoryCache) Close() error               { return nil }

type kpi struct {
	Total int64 `json:"total"`
}

func TestRemember_LoadsOnceThenHits(t *testing.T) {
	c := newMemoryCache()
	calls := 0
	load := func(context.Context) (kpi, error) {
		calls++
		return kpi{Total: 42}, nil
	}

	first, err := Remember(context.Background(), c, "kpis", time.Minute, load)
	require.NoError(t, err)
	second, err := Remember(context.Background(), c, "kpis", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, kpi{Total: 42}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestRemember_CacheFailureFallsThrough(t *testing.T) {
	c := newMemoryCache()
	c.failGet = true

	got, err := Remember(context.Background(), c, "kpis", time.Minute, func(context.Context) (kpi, error) {
		return kpi{Total: 7}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Total)
}

func TestRemember_LoadErrorIsNotCached(t *testing.T) {
	c := newMemoryCache()
	boom := errors.New("boom")

	_, err := Remember(context.Background(), c, "kpis", time.Minute, func(context.Context) (kpi, error) {
		return kpi{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, c.items)
}

func TestInvalidate(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		failDelete bool
		remaining  []string
	}{
		{"drops the given keys", []string{"kpis", "trend"}, false, []string{"headcount"}},
		{"no keys leaves everything", nil, false, []string{"headcount", "kpis", "trend"}},
		{"delete failure is swallowed", []string{"kpis"}, true, []string{"headcount", "kpis", "trend"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newMemoryCache()
			c.failDelete = tt.failDelete
			for _, k := range []string{"headcount", "kpis", "trend"} {
				require.NoError(t, c.Set(context.Background(), k, kpi{Total: 1}, time.Minute))
			}

			Invalidate(context.Background(), c, tt.keys...)

			got := make([]string, 0, len(c.items))
			for k := range c.items {
				got = append(got, k)
			}
			assert.ElementsMatch(t, tt.remaining, got)
		})
	}
}

func TestInvalidate_ThenRememberReloads(t *testing.T) {
	c := newMemoryCache()
	calls := 0
	load := func(context.Context) (kpi, error) {
		calls++
		return kpi{Total: int64(calls)}, nil
	}

	_, err := Remember(context.Background(), c, "kpis", time.Minute, load)
	require.NoError(t, err)
	Invalidate(context.Background(), c, "kpis")
	got, err := Remember(context.Background(), c, "kpis", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, int64(2), got.Total)
}

func TestInvalidate_NilCache(t *testing.T) {
	assert.NotPanics(t, func() { Invalidate(context.Background(), nil, "kpis") })
}

func TestNoop(t *testing.T) {
	var dest kpi
	hit, err := Noop{}.Get(context.Background(), "kpis", &dest)
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, Noop{}.Set(context.Background(), "kpis", kpi{}, time.Second))
	assert.NoError(t, Noop{}.Delete(context.Background(), "kpis"))
}
