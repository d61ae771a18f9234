package service

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInflightGuard_BeginEnd(t *testing.T) {
	t.Parallel()

	g := NewInflightGuard()

	assert.True(t, g.Begin("op:1"))
	assert.False(t, g.Begin("op:1"))
	// Different keys do not interfere.
	assert.True(t, g.Begin("op:2"))

	g.End("op:1")
	assert.True(t, g.Begin("op:1"))
}

func TestInflightGuard_Concurrent(t *testing.T) {
	t.Parallel()

	g := NewInflightGuard()

	var admitted int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.Begin("same-key") {
				atomic.AddInt32(&admitted, 1)
			}
		}()
	}
	wg.Wait()

	// Exactly one goroutine wins; the rest are rejected.
	assert.Equal(t, int32(1), admitted)

	g.End("same-key")
	assert.True(t, g.Begin("same-key"))
}
