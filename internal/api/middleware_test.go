package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPLimitersPerClientBuckets(t *testing.T) {
	l := newIPLimiters(1, 1)
	defer l.close()

	first := l.get("10.0.0.1")
	require.NotNil(t, first)
	assert.Same(t, first, l.get("10.0.0.1"))
	assert.NotSame(t, first, l.get("10.0.0.2"))

	// One token per second with burst 1: the second immediate call is denied.
	assert.True(t, first.Allow())
	assert.False(t, first.Allow())
}

func TestIPLimitersCloseStopsEviction(t *testing.T) {
	l := newIPLimiters(1, 1)
	l.get("10.0.0.1")

	done := make(chan struct{})
	go func() {
		l.close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("close did not return")
	}

	// Buckets stay usable after the eviction loop has stopped.
	assert.NotNil(t, l.get("10.0.0.1"))
}
