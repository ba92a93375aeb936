package apikey

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/smartrate/internal/entities"
)

type countingLoader struct {
	value   string
	reads   atomic.Int32
	release chan struct{}
}

func (l *countingLoader) LoadSetting(_ context.Context, key, def string) string {
	l.reads.Add(1)
	if l.release != nil {
		<-l.release
	}
	if key != entities.SettingKeyUserAPIKey || l.value == "" {
		return def
	}
	return l.value
}

func TestResolver_UserKey(t *testing.T) {
	loader := &countingLoader{value: "  user-key  "}
	r := NewResolver(loader, "builtin")

	key, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Key{Value: "user-key", UserSupplied: true}, key)
}

func TestResolver_FallsBackToDefault(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"unset", ""},
		{"blank", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(&countingLoader{value: tt.value}, "builtin")

			key, err := r.Resolve(context.Background())
			require.NoError(t, err)
			assert.Equal(t, Key{Value: "builtin"}, key)
		})
	}
}

func TestResolver_ReadsOnce(t *testing.T) {
	loader := &countingLoader{value: "user-key"}
	r := NewResolver(loader, "builtin")

	_, ok := r.Resolved()
	assert.False(t, ok)

	for i := 0; i < 3; i++ {
		key, err := r.Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "user-key", key.Value)
	}
	assert.Equal(t, int32(1), loader.reads.Load())

	key, ok := r.Resolved()
	assert.True(t, ok)
	assert.Equal(t, "user-key", key.Value)
}

func TestResolver_ConcurrentCallersShareRead(t *testing.T) {
	loader := &countingLoader{value: "user-key", release: make(chan struct{})}
	r := NewResolver(loader, "builtin")

	const callers = 10
	var wg sync.WaitGroup
	keys := make([]Key, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key, err := r.Resolve(context.Background())
			assert.NoError(t, err)
			keys[i] = key
		}(i)
	}

	close(loader.release)
	wg.Wait()

	assert.Equal(t, int32(1), loader.reads.Load())
	for _, key := range keys {
		assert.Equal(t, Key{Value: "user-key", UserSupplied: true}, key)
	}
}

func TestResolver_CancelledCallerDoesNotAbortRead(t *testing.T) {
	loader := &countingLoader{value: "user-key", release: make(chan struct{})}
	r := NewResolver(loader, "builtin")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Resolve(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(loader.release)
	key, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-key", key.Value)
	assert.Equal(t, int32(1), loader.reads.Load())
}
