package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const fingerprintPrefix = "dedup:"

// MemoryFingerprints keeps the last event fingerprint per sender. Senders
// idle for longer than ttl are forgotten, like sessions.
type MemoryFingerprints struct {
	mu   sync.Mutex
	last map[string]fingerprintEntry
	ttl  time.Duration
	now  func() time.Time
}

type fingerprintEntry struct {
	fp       string
	lastSeen time.Time
}

func NewMemoryFingerprints(ttl time.Duration) *MemoryFingerprints {
	return &MemoryFingerprints{
		last: make(map[string]fingerprintEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (m *MemoryFingerprints) Swap(_ context.Context, sender, fp string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var prev string
	if e, ok := m.last[sender]; ok && !m.expired(e, now) {
		prev = e.fp
	}
	m.last[sender] = fingerprintEntry{fp: fp, lastSeen: now}
	return prev, nil
}

func (m *MemoryFingerprints) expired(e fingerprintEntry, now time.Time) bool {
	return m.ttl > 0 && now.Sub(e.lastSeen) > m.ttl
}

// Sweep drops expired senders and returns how many were removed.
func (m *MemoryFingerprints) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for sender, e := range m.last {
		if m.expired(e, now) {
			delete(m.last, sender)
			removed++
		}
	}
	return removed
}

func (m *MemoryFingerprints) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.last)
}

// RedisFingerprints stores fingerprints with a TTL so idle senders expire.
type RedisFingerprints struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisFingerprints(client *redis.Client, ttl time.Duration) *RedisFingerprints {
	return &RedisFingerprints{Client: client, TTL: ttl}
}

func (r *RedisFingerprints) Swap(ctx context.Context, sender, fp string) (string, error) {
	key := fingerprintPrefix + sender

	var prev *redis.StringCmd
	_, err := r.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		prev = p.GetSet(ctx, key, fp)
		p.Expire(ctx, key, r.TTL)
		return nil
	})
	if err != nil && err != redis.Nil {
		return "", fmt.Errorf("failed to swap fingerprint: %w", err)
	}

	val, err := prev.Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}
