package cache

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/khrees2412/internly/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestMemoryStore() (*MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC)}
	m := NewMemoryStore()
	m.now = clock.Now
	return m, clock
}

func TestMemoryStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemoryStore()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, m.Set(ctx, "k", []byte("v1"), 0))
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, m.Set(ctx, "k", []byte("v2"), 0))
	got, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, m.Delete(ctx, "never-set"))
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestMemoryStore()

	require.NoError(t, m.Set(ctx, "short", []byte("x"), time.Minute))
	require.NoError(t, m.Set(ctx, "forever", []byte("y"), 0))

	clock.Advance(59 * time.Second)
	_, err := m.Get(ctx, "short")
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = m.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrMiss)
	assert.Equal(t, 1, m.Len())

	clock.Advance(24 * time.Hour)
	_, err = m.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestMemoryStore_Sweep(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestMemoryStore()

	for i := 0; i < 5; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("old-%d", i), []byte("x"), time.Second))
	}
	require.NoError(t, m.Set(ctx, "keep", []byte("x"), time.Hour))

	clock.Advance(2 * time.Second)
	assert.Equal(t, 5, m.Sweep())
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, m.Sweep())
}

func TestMemoryStore_Sweeper(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestMemoryStore()

	require.NoError(t, m.Set(ctx, "old", []byte("x"), time.Second))
	require.NoError(t, m.Set(ctx, "keep", []byte("x"), time.Hour))
	clock.Advance(2 * time.Second)

	m.StartSweeper(5 * time.Millisecond)
	assert.Eventually(t, func() bool { return m.Len() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Close())
	// closing twice is safe
	require.NoError(t, m.Close())

	_, err := m.Get(ctx, "keep")
	assert.NoError(t, err)
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemoryStore()

	in := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", in, 0))
	in[0] = 'z'

	out, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))

	out[0] = 'q'
	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m, _ := newTestMemoryStore()

	assert.ErrorIs(t, m.Set(ctx, "k", []byte("v"), 0), context.Canceled)
	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, m.Delete(ctx, "k"), context.Canceled)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k-%d", j%10)
				_ = m.Set(ctx, key, []byte{byte(i)}, time.Minute)
				_, _ = m.Get(ctx, key)
				if j%7 == 0 {
					_ = m.Delete(ctx, key)
				}
			}
		}()
	}
	wg.Wait()
	m.Sweep()
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	want := models.VerificationResult{
		Status:     models.StatusVerified,
		TrustScore: 90,
		Signals:    models.VerificationSignals{OfficialDomain: true, KnownPlatform: true},
		RedFlags:   []models.RedFlag{},
		Notes:      "ok",
	}
	require.NoError(t, SetJSON(ctx, m, VerifyKey("l-1"), want, time.Hour))

	var got models.VerificationResult
	require.NoError(t, GetJSON(ctx, m, VerifyKey("l-1"), &got))
	assert.Equal(t, want, got)

	err := GetJSON(ctx, m, VerifyKey("l-2"), &got)
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, m.Set(ctx, "bad", []byte("{not json"), 0))
	err = GetJSON(ctx, m, "bad", &got)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "verify:abc", VerifyKey("abc"))
	assert.Equal(t, "match:p1:l1", MatchKey("p1", "l1"))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	for _, backend := range []string{"", "memory"} {
		s, err := Open(ctx, backend, RedisConfig{})
		require.NoError(t, err)
		require.IsType(t, &MemoryStore{}, s)
		// opened memory stores evict in the background
		assert.NotNil(t, s.(*MemoryStore).done)
		require.NoError(t, s.Close())
	}

	_, err := Open(ctx, "memcached", RedisConfig{})
	assert.ErrorContains(t, err, "unknown cache backend")

	_, err = Open(ctx, "redis", RedisConfig{})
	assert.ErrorContains(t, err, "redis address is required")
}

// Runs only when a Redis server is available.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("INTERNLY_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("INTERNLY_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	s, err := NewRedisStore(ctx, RedisConfig{Addr: addr, Prefix: fmt.Sprintf("internly-test-%d:", time.Now().UnixNano())})
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}
