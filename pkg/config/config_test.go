package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Setenv("DEALHUB_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.ListLimitMax)
	assert.Equal(t, 28800, cfg.SessionTokenTTL)
	assert.Equal(t, "default", cfg.Source("session_token_ttl"))
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	content := "session_token_ttl: 3600\nuploads_bucket: promo-images\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))

	t.Setenv("DEALHUB_CONFIG_PATH", dir)
	t.Setenv("DEALHUB_UPLOADS_BUCKET", "override-bucket")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3600, cfg.SessionTokenTTL)
	assert.Equal(t, "file", cfg.Source("session_token_ttl"))

	// Environment wins over file
	assert.Equal(t, "override-bucket", cfg.UploadsBucket)
	assert.Equal(t, "environment", cfg.Source("uploads_bucket"))
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := newDefault()
	cfg.SessionTokenTTL = 0
	assert.Error(t, cfg.Validate())

	cfg = newDefault()
	cfg.TrustedProxies = []string{"not-a-cidr"}
	assert.Error(t, cfg.Validate())

	cfg = newDefault()
	cfg.TrustedProxies = []string{"10.0.0.0/8", "192.168.1.1"}
	assert.NoError(t, cfg.Validate())
}

func TestIsTrustedProxy(t *testing.T) {
	cfg := newDefault()
	cfg.TrustedProxies = []string{"10.0.0.0/8", "192.168.1.1"}

	assert.True(t, cfg.IsTrustedProxy("10.1.2.3"))
	assert.True(t, cfg.IsTrustedProxy("192.168.1.1"))
	assert.False(t, cfg.IsTrustedProxy("172.16.0.1"))
	assert.False(t, cfg.IsTrustedProxy("not-an-ip"))
}
