package core

import (
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aretacare/aretacare/app/core/srv"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}

	return *conf
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	return c
}

type CoreConfig struct {
	Addr     string       `toml:"addr"`
	Log      Log          `toml:"log"`
	Postgres PGConfig     `toml:"postgres"`
	AI       srv.AIConfig `toml:"ai"`
	Journal  Journal      `toml:"journal"`
	Prompt   Prompt       `toml:"prompt"`
}

// Prompt 配置结构
// 用于自定义各场景下使用的 prompt，为空则使用系统默认
type Prompt struct {
	JournalSynthesis string `toml:"journal_synthesis"`
}

// Journal 日记上下文相关配置
type Journal struct {
	// MaxContextTokens 上下文压缩的默认 token 预算
	MaxContextTokens int `toml:"max_context_tokens"`
}

const DEFAULT_MAX_JOURNAL_TOKENS = 10000

func (j Journal) MaxTokensOrDefault() int {
	if j.MaxContextTokens <= 0 {
		return DEFAULT_MAX_JOURNAL_TOKENS
	}
	return j.MaxContextTokens
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("ARETA_API_SERVICE_ADDRESS")
	c.Log.FromENV()
	c.Postgres.FromENV()
	c.AI.Token = os.Getenv("ARETA_AI_TOKEN")
	c.AI.Endpoint = os.Getenv("ARETA_AI_ENDPOINT")
	c.AI.Model = os.Getenv("ARETA_AI_MODEL")
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("ARETA_API_POSTGRESQL_DSN")
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("ARETA_API_LOG_LEVEL")
	l.Path = os.Getenv("ARETA_API_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
