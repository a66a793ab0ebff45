package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv() {
	for _, key := range []string{
		"TEMP_DIR", "FONT_DIR",
		"FFMPEG_PATH", "FFPROBE_PATH", "TRANSCODE_TIMEOUT_SEC",
		"ARTIFACT_DIR",
		"S3_BUCKET", "S3_REGION", "S3_ENDPOINT",
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
		"LOG_FORMAT", "LOG_LEVEL",
	} {
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/memeforge", cfg.TempDir)
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "ffprobe", cfg.FFprobePath)
	assert.Equal(t, 120, cfg.TranscodeTimeoutSec)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.S3Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv()
	t.Setenv("TEMP_DIR", "/var/work")
	t.Setenv("FFMPEG_PATH", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("TRANSCODE_TIMEOUT_SEC", "30")
	t.Setenv("S3_BUCKET", "memes")
	t.Setenv("S3_REGION", "eu-west-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/work", cfg.TempDir)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, 30*time.Second, cfg.TranscodeTimeout())
	assert.True(t, cfg.S3Enabled())
}

func TestConfig_SecretsMasked(t *testing.T) {
	clearEnv()
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIAEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "supersecret")

	cfg, err := Load()
	require.NoError(t, err)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "AKIAEXAMPLE")
	assert.NotContains(t, string(data), "supersecret")

	assert.NotContains(t, cfg.String(), "supersecret")
}

func TestNewLogger(t *testing.T) {
	t.Run("text format", func(t *testing.T) {
		cfg := &Config{LogFormat: "text", LogLevel: "debug"}
		assert.NotNil(t, cfg.NewLogger())
	})

	t.Run("json format", func(t *testing.T) {
		cfg := &Config{LogFormat: "json", LogLevel: "warn"}
		assert.NotNil(t, cfg.NewLogger())
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		assert.Equal(t, parseLogLevel("nonsense"), parseLogLevel("info"))
	})
}
