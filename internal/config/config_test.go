package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StoreMemory, cfg.StoreDriver)
	require.Equal(t, int64(1000), cfg.BidIncrement)
	require.True(t, cfg.FeeRate.Equal(decimal.RequireFromString("0.10")))
	require.Equal(t, time.Minute, cfg.CloseSweepEvery)
	require.Equal(t, 5*time.Minute, cfg.EndingSoonSweepEvery)
	require.Equal(t, 10*time.Minute, cfg.EndingSoonWithin)
	require.Equal(t, "auction.events", cfg.EventsExchange)
	require.Equal(t, "mail.outbound", cfg.MailQueue)
}

func TestLoadPrefixedKeys(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_USER", "auction")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("FEE_RATE", "0.05")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "auction", cfg.DB.User)
	require.Equal(t, "cache:6380", cfg.Redis.address())
	require.Equal(t, 1, cfg.RateLimit.Capacity)
	require.True(t, cfg.FeeRate.Equal(decimal.RequireFromString("0.05")))
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"STORE_DRIVER":  "postgres",
		"FEE_RATE":      "1.5",
		"BID_INCREMENT": "0",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "s3cret")
			t.Setenv(key, val)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	require.Error(t, err)
}
