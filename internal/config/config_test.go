package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("ADMIN_SECRET", "green123")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoad(t *testing.T) {
	setRequired(t)
	t.Setenv("STORAGE_BUCKET", "")
	t.Setenv("PORT", "")
	t.Setenv("GATEWAY_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://example.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "post-images", cfg.StorageBucket)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.GatewayTimeout)
}

func TestLoadCustomTimeout(t *testing.T) {
	setRequired(t)
	t.Setenv("GATEWAY_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.GatewayTimeout)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	setRequired(t)
	t.Setenv("GATEWAY_TIMEOUT", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRequiresProjectSettings(t *testing.T) {
	vars := []string{"SUPABASE_URL", "SUPABASE_ANON_KEY", "ADMIN_SECRET", "SESSION_SECRET"}
	for _, missing := range vars {
		t.Run(missing, func(t *testing.T) {
			setRequired(t)
			t.Setenv(missing, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), missing)
		})
	}
}
