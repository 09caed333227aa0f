package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFingerprintsSwap(t *testing.T) {
	m := NewMemoryFingerprints(time.Hour)
	ctx := context.Background()

	prev, err := m.Swap(ctx, "91", "91-hi")
	require.NoError(t, err)
	assert.Empty(t, prev)

	prev, _ = m.Swap(ctx, "91", "91-fees")
	assert.Equal(t, "91-hi", prev)

	prev, _ = m.Swap(ctx, "92", "92-hi")
	assert.Empty(t, prev)
}

func TestMemoryFingerprintsExpireIdleSenders(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemoryFingerprints(time.Hour)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	m.Swap(ctx, "91", "91-hi")
	now = now.Add(30 * time.Minute)
	m.Swap(ctx, "92", "92-hi")

	now = now.Add(45 * time.Minute)
	prev, err := m.Swap(ctx, "91", "91-hi")
	require.NoError(t, err)
	assert.Empty(t, prev, "an expired fingerprint is not a duplicate")

	now = now.Add(61 * time.Minute)
	assert.Equal(t, 2, m.Sweep())
	assert.Equal(t, 0, m.Len())
}

func TestStartJanitorSweepsFingerprints(t *testing.T) {
	m := NewMemoryFingerprints(time.Millisecond)
	m.Swap(context.Background(), "91", "91-hi")
	time.Sleep(5 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		StartJanitor(ctx, time.Millisecond, m)
		close(done)
	}()

	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestRedisFingerprintsSwap(t *testing.T) {
	mr, client := newRedis(t)
	r := NewRedisFingerprints(client, 10*time.Minute)
	ctx := context.Background()

	prev, err := r.Swap(ctx, "91", "91-hi")
	require.NoError(t, err)
	assert.Empty(t, prev)

	prev, err = r.Swap(ctx, "91", "91-hi")
	require.NoError(t, err)
	assert.Equal(t, "91-hi", prev)
	assert.Equal(t, 10*time.Minute, mr.TTL("dedup:91"))

	mr.FastForward(11 * time.Minute)
	prev, err = r.Swap(ctx, "91", "91-hi")
	require.NoError(t, err)
	assert.Empty(t, prev)
}
