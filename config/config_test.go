package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_PostgresDSN(t *testing.T) {
	req := require.New(t)
	cfg := &Config{
		DBHost:     "db.local",
		DBUser:     "chat",
		DBPassword: "secret",
		DBName:     "relay_chat",
		DBPort:     "5433",
	}
	req.Equal(
		"host=db.local user=chat password=secret dbname=relay_chat port=5433 sslmode=disable TimeZone=UTC",
		cfg.PostgresDSN(),
	)
}

func Test_RedisAddr(t *testing.T) {
	require.Equal(t, "redis.local:6380", (&Config{RedisHost: "redis.local", RedisPort: "6380"}).RedisAddr())
}

func Test_GetEnv_Fallbacks(t *testing.T) {
	req := require.New(t)

	t.Setenv("RELAY_TEST_KEY", "value")
	req.Equal("value", getEnv("RELAY_TEST_KEY", "fallback"))
	req.Equal("fallback", getEnv("RELAY_TEST_MISSING", "fallback"))

	t.Setenv("RELAY_TEST_INT", "42")
	req.Equal(42, getEnvAsInt("RELAY_TEST_INT", 7))
	t.Setenv("RELAY_TEST_INT", "not-a-number")
	req.Equal(7, getEnvAsInt("RELAY_TEST_INT", 7))
}
