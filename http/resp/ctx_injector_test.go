package resp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
)

func TestDefaultInjector(t *testing.T) {
	// Arrange
	tcs := []struct {
		name     string
		keys     []switchback.Key
		props    map[string]any
		ctx      context.Context
		expected map[string]any
	}{
		{"both-nil", nil, nil, nil, nil},
		{"ctx-nil", nil, make(map[string]any), nil, make(map[string]any)},
		{"keys-nil", nil, make(map[string]any), context.Background(), make(map[string]any)},
		{"no-values", []switchback.Key{"key"}, make(map[string]any), createCtx(nil), make(map[string]any)},
		{
			"props-has-values",
			[]switchback.Key{"key"},
			map[string]any{"test": 1},
			createCtx(nil),
			map[string]any{"test": 1},
		},
		{
			"ctx-adds-values",
			[]switchback.Key{"key"},
			map[string]any{"test": 1},
			createCtx([]switchback.Key{"key"}),
			map[string]any{"key": 0, "test": 1},
		},
		{
			"ctx-overwrites",
			[]switchback.Key{"test"},
			map[string]any{"test": 1},
			createCtx([]switchback.Key{"test"}),
			map[string]any{"test": 0},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			i := DefaultInjector{tc.keys}

			// Act
			require.NotPanics(t, func() { i.Inject(tc.props, tc.ctx) })

			// Assert
			require.Equal(t, tc.expected, tc.props)
		})
	}
}

func createCtx(keys []switchback.Key) context.Context {
	ctx := context.Background()
	for i, k := range keys {
		ctx = context.WithValue(ctx, k, i)
	}
	return ctx
}
