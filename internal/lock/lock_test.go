package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimflow/internal/config"
)

type fakeObtainer struct {
	err     error
	gotKey  string
	gotTTL  time.Duration
	gotOpts *redislock.Options
}

func (f *fakeObtainer) Obtain(_ context.Context, key string, ttl time.Duration, opt *redislock.Options) (*redislock.Lock, error) {
	f.gotKey, f.gotTTL, f.gotOpts = key, ttl, opt
	return nil, f.err
}

func TestClaimKey(t *testing.T) {
	assert.Equal(t, "claimflow:claim:u1:2025-03", ClaimKey("u1", "2025-03"))
}

func TestRedisLocker_Acquire(t *testing.T) {
	t.Run("held elsewhere", func(t *testing.T) {
		f := &fakeObtainer{err: redislock.ErrNotObtained}
		l := &RedisLocker{client: f, ttl: 5 * time.Second, retry: redislock.NoRetry()}

		release, err := l.Acquire(context.Background(), "k")

		assert.ErrorIs(t, err, ErrBusy)
		assert.Nil(t, release)
		assert.Equal(t, "k", f.gotKey)
		assert.Equal(t, 5*time.Second, f.gotTTL)
		require.NotNil(t, f.gotOpts)
	})

	t.Run("redis failure", func(t *testing.T) {
		boom := errors.New("dial tcp: connection refused")
		l := &RedisLocker{client: &fakeObtainer{err: boom}, ttl: time.Second}

		_, err := l.Acquire(context.Background(), "k")

		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrBusy)
	})
}

func TestNoop(t *testing.T) {
	release, err := Noop{}.Acquire(context.Background(), "anything")
	require.NoError(t, err)
	assert.NoError(t, release(context.Background()))
}

func TestNew_WithoutAddressIsNoop(t *testing.T) {
	log, hook := test.NewNullLogger()

	l, closer, err := New(context.Background(), config.RedisConfig{}, log)

	require.NoError(t, err)
	assert.IsType(t, Noop{}, l)
	assert.NoError(t, closer())
	assert.Equal(t, "lock_disabled", hook.LastEntry().Data["event"])
}
