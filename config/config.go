package config

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/openmahjong/xuezhan/game"
	"github.com/openmahjong/xuezhan/utils"
)

type Config struct {
	App   AppConfig   `mapstructure:"app"`
	Redis RedisConfig `mapstructure:"redis"`
	NATS  NATSConfig  `mapstructure:"nats"`
	Rules RulesConfig `mapstructure:"rules"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type NATSConfig struct {
	URL           string        `mapstructure:"url"`
	Subject       string        `mapstructure:"subject"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
}

type RulesConfig struct {
	ClaimWindow time.Duration `mapstructure:"claim_window"`
	ClaimPolicy string        `mapstructure:"claim_policy"`
	ScoreBase   int           `mapstructure:"score_base"`
}

// Logger 按 app.log_level 构造带轮转输出的日志器，级别认不出回落到 info
func (a AppConfig) Logger() *logrus.Logger {
	level, err := logrus.ParseLevel(a.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	return utils.Logger(level)
}

// GameRules 映射到状态机的规则项，缺省值交给引擎兜底
func (r RulesConfig) GameRules() game.Rules {
	rules := game.DefaultRules()
	if r.ClaimWindow > 0 {
		rules.ClaimWindow = r.ClaimWindow
	}
	if r.ClaimPolicy != "" {
		rules.ClaimPolicy = game.ClaimPolicy(r.ClaimPolicy)
	}
	if r.ScoreBase > 0 {
		rules.ScoreBase = r.ScoreBase
	}
	return rules
}

func Default() *Config {
	return &Config{
		App:   AppConfig{Name: "xuezhan", LogLevel: "info"},
		Redis: RedisConfig{Addr: "localhost:6379"},
		NATS:  NATSConfig{URL: "nats://localhost:4222", Subject: "mahjong.events", MaxReconnects: 10, ReconnectWait: 2 * time.Second},
	}
}

func Load(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
