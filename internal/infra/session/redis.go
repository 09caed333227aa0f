package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/gym-leadbot/internal/entity"
	"github.com/xavierca1/gym-leadbot/pkg/logger"
)

const (
	sessionPrefix = "session:"
	lockSuffix    = ":lock"

	defaultLockTTL  = 10 * time.Second
	defaultLockWait = 5 * time.Second
	lockRetryDelay  = 20 * time.Millisecond
)

var (
	ErrLockTimeout = errors.New("session lock timeout")
	ErrLockLost    = errors.New("session lock lost before save")
)

// releaseLock deletes the lock only if we still own it.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// renewLock extends the lock only if we still own it.
var renewLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// saveIfOwner writes the session (KEYS[2]) only while ARGV[1] holds the
// lock (KEYS[1]). ARGV[3] is the session TTL in ms, 0 for none.
var saveIfOwner = redis.NewScript(`
if redis.call("GET", KEYS[1]) ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
else
	redis.call("SET", KEYS[2], ARGV[2])
end
return 1
`)

// RedisStore shares sessions between instances. Update holds a per-phone
// lock key, renewed while fn runs, and saves only while it still owns it.
// A save after the lock was lost fails with ErrLockLost.
type RedisStore struct {
	Client   *redis.Client
	TTL      time.Duration
	LockTTL  time.Duration
	LockWait time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		Client:   client,
		TTL:      ttl,
		LockTTL:  defaultLockTTL,
		LockWait: defaultLockWait,
	}
}

// NewRedisClient parses url and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (r *RedisStore) key(phone string) string {
	return sessionPrefix + phone
}

func (r *RedisStore) lockKey(phone string) string {
	return r.key(phone) + lockSuffix
}

func (r *RedisStore) Update(ctx context.Context, phone string, fn func(*entity.Session) error) (*entity.Session, error) {
	token, unlock, err := r.lock(ctx, phone)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := r.load(ctx, phone)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	saved, err := saveIfOwner.Run(ctx, r.Client,
		[]string{r.lockKey(phone), r.key(phone)},
		token, data, r.TTL.Milliseconds(),
	).Int()
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	if saved == 0 {
		return nil, ErrLockLost
	}
	return sess, nil
}

func (r *RedisStore) Get(ctx context.Context, phone string) (*entity.Session, error) {
	return r.load(ctx, phone)
}

func (r *RedisStore) load(ctx context.Context, phone string) (*entity.Session, error) {
	raw, err := r.Client.Get(ctx, r.key(phone)).Bytes()
	if err == redis.Nil {
		return entity.NewSession(phone), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess entity.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

func (r *RedisStore) lock(ctx context.Context, phone string) (string, func(), error) {
	key := r.lockKey(phone)
	token := uuid.NewString()
	deadline := time.Now().Add(r.LockWait)

	for {
		ok, err := r.Client.SetNX(ctx, key, token, r.LockTTL).Result()
		if err != nil {
			return "", nil, fmt.Errorf("failed to lock session: %w", err)
		}
		if ok {
			return token, r.hold(key, token), nil
		}
		if time.Now().After(deadline) {
			return "", nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return "", nil, ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
}

// hold renews the lock every quarter of LockTTL until the returned release
// func is called. Renewal and release use their own context because the
// caller's ctx may already be cancelled.
func (r *RedisStore) hold(key, token string) func() {
	renewCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	interval := r.LockTTL / 4
	if interval <= 0 {
		interval = time.Millisecond
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-renewCtx.Done():
				return
			case <-ticker.C:
				n, err := renewLock.Run(renewCtx, r.Client, []string{key}, token, r.LockTTL.Milliseconds()).Int()
				if err != nil {
					if renewCtx.Err() == nil {
						logger.Warn().Err(err).Str("key", key).Msg("⚠️ session lock renewal failed")
					}
					continue
				}
				if n == 0 {
					logger.Warn().Str("key", key).Msg("⚠️ session lock lost while handling message")
					return
				}
			}
		}
	}()

	return func() {
		cancel()
		<-done
		_ = releaseLock.Run(context.Background(), r.Client, []string{key}, token).Err()
	}
}
