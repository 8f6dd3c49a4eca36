package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmahjong/xuezhan/config"
	"github.com/openmahjong/xuezhan/game"
	"github.com/openmahjong/xuezhan/storage"
)

const sampleConfig = `
app:
  name: xuezhan-test
  log_level: debug
rules:
  claim_window: 10s
  claim_policy: first_wins
  score_base: 2
`

func Test_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "xuezhan-test", cfg.App.Name)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	// 没写的段保持默认
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "mahjong.events", cfg.NATS.Subject)

	rules := cfg.Rules.GameRules()
	assert.Equal(t, 10*time.Second, rules.ClaimWindow)
	assert.Equal(t, game.ClaimFirstWins, rules.ClaimPolicy)
	assert.Equal(t, 2, rules.ScoreBase)
}

func Test_LoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func Test_LoggerFollowsConfiguredLevel(t *testing.T) {
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	log := config.AppConfig{LogLevel: "debug"}.Logger()
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	// 认不出的级别回落到 info
	log = config.AppConfig{LogLevel: "noisy"}.Logger()
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	// 日志器直接喂给引擎
	m := game.NewManager(storage.NewMemoryStore(), nil, game.DefaultRules(), log)
	defer m.Close()
	_, _, err := m.CreateGame(context.Background(), "alice")
	require.NoError(t, err)
}
