package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[advisor]
backend = "matcher"
max_edit_distance = 1

[dict]
path = "/usr/share/wordcheck"

[redis]
enabled = true
addr = "cache:6379"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, BackendMatcher, cfg.Advisor.Backend)
	assert.Equal(t, 1, cfg.Advisor.MaxEditDistance)
	assert.Equal(t, 2, cfg.Advisor.MinWordLength, "unset keys keep defaults")
	assert.Equal(t, "/usr/share/wordcheck", cfg.Dict.Path)
	assert.Equal(t, 50000, cfg.Dict.MaxWords)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, "wordcheck:custom_dict", cfg.Redis.Key)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := writeConfig(t, `
[advisor]
backend = "matcher"

[dict]
max_words = "plenty"

[http]
addr = ":9090"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, BackendMatcher, cfg.Advisor.Backend)
	assert.Equal(t, 50000, cfg.Dict.MaxWords, "bad value falls back to default")
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}

func TestLoadConfigUnparsable(t *testing.T) {
	path := writeConfig(t, "[advisor\nbackend = ")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestNormalize(t *testing.T) {
	path := writeConfig(t, `
[advisor]
backend = "neural"
max_edit_distance = 0
min_word_length = -1
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, BackendModel, cfg.Advisor.Backend)
	assert.Equal(t, 2, cfg.Advisor.MaxEditDistance)
	assert.Equal(t, 2, cfg.Advisor.MinWordLength)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("REDIS_PASSWORD", "hunter2")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("HTTP_ADDR", "127.0.0.1:8081")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "127.0.0.1:8081", cfg.HTTP.Addr)
}

func TestApplyEnvInvalidDB(t *testing.T) {
	t.Setenv("REDIS_DB", "two")
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.False(t, cfg.Redis.Enabled)
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfig(t, "[http]\naddr = \":7000\"\n")

	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
}

func TestRedisTimeout(t *testing.T) {
	assert.Equal(t, 2*time.Second, DefaultConfig().Redis.Timeout())

	path := writeConfig(t, "[redis]\ntimeout_ms = 150\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, cfg.Redis.Timeout())

	path = writeConfig(t, "[redis]\ntimeout_ms = -5\n")
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Redis.Timeout())

	path = writeConfig(t, "[redis]\ntimeout_ms = 300\nenabled = \"yes\"\n")
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond, cfg.Redis.Timeout(), "kept by partial recovery")
	assert.False(t, cfg.Redis.Enabled)
}

func TestRebuildConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	stale := filepath.Join(home, ".config", "wordcheck", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("[http]\naddr = \":1\"\n"), 0o644))

	path, err := RebuildConfigFile()
	require.NoError(t, err)
	assert.Equal(t, stale, path)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
