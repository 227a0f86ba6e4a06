package content_test

import (
	"context"
	"html/template"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/content"
	"github.com/xy-planning-network/switchback/metrics"
	"github.com/xy-planning-network/switchback/route"
)

func TestMemoryCache(t *testing.T) {
	// Arrange
	ctx := context.Background()
	c := content.NewMemoryCache()

	// Act
	_, ok, err := c.Get(ctx, "k")

	// Assert
	require.Nil(t, err)
	require.False(t, ok)

	// Act
	require.Nil(t, c.Set(ctx, "k", []byte("v"), 0))
	require.Nil(t, c.Set(ctx, "short", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	// Assert
	b, ok, err := c.Get(ctx, "k")
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), b)

	_, ok, err = c.Get(ctx, "short")
	require.Nil(t, err)
	require.False(t, ok)

	// Arrange
	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	// Act
	_, _, err = c.Get(cancelled, "k")

	// Assert
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, c.Set(cancelled, "k", nil, 0), context.Canceled)
}

func TestCached(t *testing.T) {
	// Arrange
	tbl := shopTable(t)
	calls := 0
	next := content.RendererFunc(func(_ context.Context, m *route.Match) (template.HTML, error) {
		calls++
		if m.Leaf().Name == "not-found" {
			return "", content.ErrNotFound
		}
		return template.HTML("<p>" + m.Path + "</p>"), nil
	})
	col := metrics.New()
	r := content.NewCached(next, content.NewMemoryCache(), time.Minute, col)

	// Act
	first, err1 := r.Render(context.Background(), tbl.Match("/products/42"))
	second, err2 := r.Render(context.Background(), tbl.Match("/products/42"))
	other, err3 := r.Render(context.Background(), tbl.Match("/products/43"))
	_, err4 := r.Render(context.Background(), tbl.Match("/missing"))
	_, err5 := r.Render(context.Background(), tbl.Match("/missing"))

	// Assert
	require.Nil(t, err1)
	require.Nil(t, err2)
	require.Nil(t, err3)
	require.ErrorIs(t, err4, content.ErrNotFound)
	require.ErrorIs(t, err5, content.ErrNotFound)
	require.Equal(t, template.HTML("<p>/products/42</p>"), first)
	require.Equal(t, first, second)
	require.Equal(t, template.HTML("<p>/products/43</p>"), other)
	require.Equal(t, 4, calls)

	count, err := testutil.GatherAndCount(col.Registry(), "switchback_content_cache_lookups_total")
	require.Nil(t, err)
	require.Equal(t, 2, count)
}

func TestCacheKey(t *testing.T) {
	// Arrange
	tbl := shopTable(t)

	// Act + Assert
	require.Equal(t, "/products/:id|/products/42?tab=a", content.CacheKey(tbl.Match("/products/42?tab=a")))
	require.NotEqual(t, content.CacheKey(tbl.Match("/products/42")), content.CacheKey(tbl.Match("/products/42?tab=a")))
}

func TestRedisCache(t *testing.T) {
	uri := os.Getenv("REDIS_URL")
	if uri == "" {
		t.Skip("REDIS_URL not set")
	}

	// Arrange
	ctx := context.Background()
	c, err := content.NewRedisCacheURL(uri, os.Getenv("REDIS_PASSWORD"))
	require.Nil(t, err)
	defer c.Close()
	require.Nil(t, c.Ping(ctx))

	key := "test-" + time.Now().Format(time.RFC3339Nano)

	// Act
	_, ok, err := c.Get(ctx, key)

	// Assert
	require.Nil(t, err)
	require.False(t, ok)

	// Act
	require.Nil(t, c.Set(ctx, key, []byte("<p>hi</p>"), time.Minute))
	b, ok, err := c.Get(ctx, key)

	// Assert
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("<p>hi</p>"), b)
}

func TestNewRedisCacheURL(t *testing.T) {
	// Act
	_, err := content.NewRedisCacheURL("not a url", "")

	// Assert
	require.ErrorIs(t, err, content.ErrCache)
}

type viewerKey struct{}

func TestCachedVary(t *testing.T) {
	// Arrange
	m := shopTable(t).Match("/products/1")
	next := content.RendererFunc(func(ctx context.Context, _ *route.Match) (template.HTML, error) {
		viewer, _ := ctx.Value(viewerKey{}).(string)
		return template.HTML("<p>hello " + viewer + "</p>"), nil
	})
	viewer := func(ctx context.Context) string {
		v, _ := ctx.Value(viewerKey{}).(string)
		return v
	}
	ada := context.WithValue(context.Background(), viewerKey{}, "ada")
	bob := context.WithValue(context.Background(), viewerKey{}, "bob")

	for _, tc := range []struct {
		name     string
		opts     []content.CachedOpt
		expected string
	}{
		{"Shared", nil, "<p>hello ada</p>"},
		{"Per-Viewer", []content.CachedOpt{content.WithVary(viewer)}, "<p>hello bob</p>"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := content.NewCached(next, content.NewMemoryCache(), time.Minute, nil, tc.opts...)

			// Act
			_, err := c.Render(ada, m)
			require.Nil(t, err)
			html, err := c.Render(bob, m)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, string(html))
		})
	}
}
