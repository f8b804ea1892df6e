package config

import (
	"os"
	"path/filepath"
	"testing"

	"speck-go/pkg/speck"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "speck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
variant: SPECK-128/256
key: 000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f
listen_address: 127.0.0.1:9000
metrics: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "SPECK-128/256", cfg.Variant)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.False(t, cfg.Metrics)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, path, cfg.ConfigFile)

	c, err := cfg.Cipher()
	require.NoError(t, err)
	assert.Equal(t, 16, c.BlockSize())
	assert.Equal(t, "SPECK-128/256", c.Variant().Name)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "variant: SPECK-64/96\n")
	t.Setenv("SPECK_KEY", "0001020308090a0b10111213")
	t.Setenv("SPECK_LISTEN_ADDRESS", ":1234")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0001020308090a0b10111213", cfg.Key)
	assert.Equal(t, ":1234", cfg.ListenAddr)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Variant, cfg.Variant)
	assert.Equal(t, DefaultConfig().ListenAddr, cfg.ListenAddr)
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "variant: [unterminated\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		is   error
	}{
		{"unknown variant", Config{Variant: "SPECK-32/64", Key: "00"}, speck.ErrUnknownVariant},
		{"short key", Config{Variant: "SPECK-64/128", Key: "00010203"}, speck.ErrInvalidLength},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.cfg.Validate(), tc.is)
		})
	}

	assert.Error(t, (&Config{Variant: "SPECK-64/128"}).Validate(), "missing key")
	assert.Error(t, (&Config{Variant: "SPECK-64/128", Key: "xyz"}).Validate(), "bad hex")

	key := "0001020308090a0b1011121318191a1b"
	assert.Error(t, (&Config{Variant: "SPECK-64/128", Key: key, LogLevel: "loud"}).Validate(), "bad log level")
	assert.NoError(t, (&Config{Variant: "SPECK-64/128", Key: key, LogLevel: "debug"}).Validate())
}

func TestLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, (&Config{LogLevel: "debug"}).Level())
	assert.Equal(t, zerolog.InfoLevel, (&Config{}).Level())
}
