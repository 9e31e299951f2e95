package payer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NobleSOL/silverback-agent-sub002/pkg/payer"
)

func TestNewOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		options, err := payer.NewOptions()
		require.NoError(t, err)

		// The default nonce source yields fresh 32-byte nonces.
		nonce := options.NonceFunc()()
		assert.Len(t, nonce, 32)
		assert.NotEqual(t, nonce, options.NonceFunc()())

		assert.WithinDuration(t, time.Now(), options.NowFunc()(), time.Minute)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Parallel()

		now, err := time.Parse(time.RFC3339, "2001-02-03T04:05:06Z")
		require.NoError(t, err)

		nonce := []byte{0x01, 0x02, 0x03}

		options, err := payer.NewOptions(
			payer.WithNowFunc(func() time.Time { return now }),
			payer.WithNonceFunc(func() []byte { return nonce }),
		)
		require.NoError(t, err)

		assert.Equal(t, now, options.NowFunc()())
		assert.Equal(t, nonce, options.NonceFunc()())
	})
}
