package config

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_EmptyAndSwap(t *testing.T) {
	store := NewStore()
	assert.Nil(t, store.Get())
	assert.Equal(t, -1.0, store.AgeSeconds())

	cfg, err := Parse(strings.NewReader(fullDoc))
	require.NoError(t, err)
	store.Set(cfg)
	assert.Same(t, cfg, store.Get())
	assert.GreaterOrEqual(t, store.AgeSeconds(), 0.0)

	// A reload replaces the whole configuration, never a field at a time.
	doc := strings.Replace(fullDoc, "compensation_interval: 0.5", "compensation_interval: 1.5", 1)
	next, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	store.Set(next)
	assert.Same(t, next, store.Get())
}

// TestStore_ConcurrentReaders swaps configurations under concurrent readers;
// every read must observe one complete configuration or nil, never a mix.
func TestStore_ConcurrentReaders(t *testing.T) {
	store := NewStore()
	a, err := Parse(strings.NewReader(fullDoc))
	require.NoError(t, err)
	b, err := Parse(strings.NewReader(strings.Replace(fullDoc,
		"compensation_interval: 0.5", "compensation_interval: 2", 1)))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				cfg := store.Get()
				if cfg == nil {
					continue
				}
				if cfg != a && cfg != b {
					t.Error("observed a configuration that was never stored")
					return
				}
			}
		}()
	}
	for j := 0; j < 1000; j++ {
		if j%2 == 0 {
			store.Set(a)
		} else {
			store.Set(b)
		}
	}
	wg.Wait()
}
