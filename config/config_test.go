package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(overrides map[string]string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newTestViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8088", cfg.App.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.App.Migrate)
	assert.Equal(t, 2.0, cfg.RateLimit.RPS)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Contains(t, cfg.DSN(), "host=localhost")
	assert.Nil(t, cfg.App.TrustedProxies)
}

func TestFromViper_TrustedProxies(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]string{
		"TRUSTED_PROXIES": " 10.0.0.0/8, ,192.168.1.10 ",
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, cfg.App.TrustedProxies)
}

func TestFromViper_TrimsURLs(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]string{
		"FRONTEND_URL": "https://club.example.cl/",
		"AUTH_URL":     "https://xyz.supabase.co/",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://club.example.cl", cfg.App.FrontendURL)
	assert.Equal(t, "https://xyz.supabase.co", cfg.Auth.URL)
}

func TestFromViper_DatabaseURLWins(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]string{
		"DATABASE_URL": "postgres://u:p@db:5432/club",
	}))
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/club", cfg.DSN())
}

func TestFromViper_InvalidNumbers(t *testing.T) {
	_, err := fromViper(newTestViper(map[string]string{"RATE_LIMIT_BURST": "five"}))
	assert.ErrorContains(t, err, "RATE_LIMIT_BURST")

	_, err = fromViper(newTestViper(map[string]string{"RATE_LIMIT_RPS": "fast"}))
	assert.ErrorContains(t, err, "RATE_LIMIT_RPS")
}
