package main

import (
	"flagset"
	log "github.com/sirupsen/logrus"
	assertion "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

var configEnv = []string{"FLAGSET_LOG_LEVEL", "FLAGSET_COMPRESSION", "FLAGSET_NO_CHECKSUM"}

// configDir clears the FLAGSET_* environment and switches to an empty working
// directory, optionally holding a .env file. Everything is restored on cleanup.
func configDir(t *testing.T, dotenv string) {
	for _, key := range configEnv {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	dir := t.TempDir()
	if dotenv != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0644))
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	level := log.GetLevel()
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		log.SetLevel(level)
	})
}

func TestConfigDefaults(t *testing.T) {
	assert := assertion.New(t)
	configDir(t, "")
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal("info", cfg.LogLevel)
	assert.Equal(flagset.CompSnappy, cfg.Compression)
	assert.False(cfg.NoChecksum)
	assert.Equal(log.InfoLevel, log.GetLevel())
	assert.Equal(&flagset.Options{Compression: flagset.CompSnappy}, cfg.Options())
}

func TestConfigEnv(t *testing.T) {
	assert := assertion.New(t)
	configDir(t, "")
	t.Setenv("FLAGSET_LOG_LEVEL", "debug")
	t.Setenv("FLAGSET_COMPRESSION", "lz4")
	t.Setenv("FLAGSET_NO_CHECKSUM", "true")
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(log.DebugLevel, log.GetLevel())
	assert.Equal(&flagset.Options{Compression: flagset.CompLz4, NoChecksum: true}, cfg.Options())
}

func TestConfigDotenv(t *testing.T) {
	assert := assertion.New(t)
	configDir(t, "FLAGSET_COMPRESSION=none\nFLAGSET_LOG_LEVEL=warn\n")
	// the environment wins over .env
	t.Setenv("FLAGSET_LOG_LEVEL", "error")
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(flagset.CompNone, cfg.Compression)
	assert.Equal(log.ErrorLevel, log.GetLevel())
}

func TestConfigErrors(t *testing.T) {
	assert := assertion.New(t)
	for _, kv := range [][2]string{
		{"FLAGSET_COMPRESSION", "bogus"},
		{"FLAGSET_LOG_LEVEL", "loud"},
		{"FLAGSET_NO_CHECKSUM", "maybe"},
	} {
		configDir(t, "")
		t.Setenv(kv[0], kv[1])
		cfg, err := loadConfig()
		assert.Nil(cfg, kv[0])
		assert.Error(err, kv[0])
		require.NoError(t, os.Unsetenv(kv[0]))
	}

	configDir(t, "FLAGSET_COMPRESSION=zstd\n")
	_, err := loadConfig()
	assert.Error(err)
}
