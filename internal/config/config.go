package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Store     StoreConfig    `yaml:"store"`
	Quiz      QuizConfig     `yaml:"quiz"`
	Cache     CacheConfig    `yaml:"cache"`
	MiniGames MiniGameConfig `yaml:"minigames"`
	Log       LogConfig      `yaml:"log"`

	// QuestionsFile overrides the embedded question bank.
	QuestionsFile string `yaml:"questions_file"`

	// ForceExtended starts straight into extended (rogue) mode.
	ForceExtended bool `yaml:"force_extended"`
}

// StoreConfig selects and configures the progress backend.
type StoreConfig struct {
	// Backend is "sqlite" or "redis". Default: "sqlite".
	Backend   string `yaml:"backend"`
	Path      string `yaml:"path"`
	RedisAddr string `yaml:"redis_addr"` // e.g. redis://localhost:6379/0
	RedisKey  string `yaml:"redis_prefix"`
}

// QuizConfig holds round, reward and restart rules.
type QuizConfig struct {
	QuestionsPerRound int     `yaml:"questions_per_round"` // Default: 5
	ExtendedQuestions int     `yaml:"extended_questions"`  // Default: 10
	RoundIncrement    int     `yaml:"round_increment"`     // Default: 3
	BadgeThreshold    int     `yaml:"badge_threshold"`     // Default: 3
	PlayCap           int     `yaml:"play_cap"`            // Default: 5
	MaxRestarts       int     `yaml:"max_restarts"`        // Default: 5
	MiniGameChance    float64 `yaml:"minigame_chance"`     // Default: 0.25
}

// CacheConfig configures the fragment cache.
type CacheConfig struct {
	TTL          time.Duration `yaml:"ttl"`           // Default: 5m
	FetchTimeout time.Duration `yaml:"fetch_timeout"` // Default: 10s
	IdleDelay    time.Duration `yaml:"idle_delay"`    // Default: 50ms
	PreloadCount int           `yaml:"preload_count"` // Default: 3

	// LowBandwidth disables background preloading; games load on demand.
	LowBandwidth bool `yaml:"low_bandwidth"`
}

// MiniGameConfig configures mini-game loading.
type MiniGameConfig struct {
	Enabled bool `yaml:"enabled"`

	// FragmentsURL fetches fragments over HTTP instead of the embedded set.
	FragmentsURL string `yaml:"fragments_url"`

	// Grace is added to each game's time limit before forced completion.
	Grace time.Duration `yaml:"grace"` // Default: 5s
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Verbose bool   `yaml:"verbose"`
	File    string `yaml:"file"`
}

// DefaultConfig returns a Config with the standard quiz rules.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{
			Backend:  "sqlite",
			RedisKey: "attacq:",
		},
		Quiz: QuizConfig{
			QuestionsPerRound: 5,
			ExtendedQuestions: 10,
			RoundIncrement:    3,
			BadgeThreshold:    3,
			PlayCap:           5,
			MaxRestarts:       5,
			MiniGameChance:    0.25,
		},
		Cache: CacheConfig{
			TTL:          5 * time.Minute,
			FetchTimeout: 10 * time.Second,
			IdleDelay:    50 * time.Millisecond,
			PreloadCount: 3,
		},
		MiniGames: MiniGameConfig{
			Enabled: true,
			Grace:   5 * time.Second,
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file is not
// an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from a .env file if one exists.
func LoadDotEnv(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from ATTACQ_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("ATTACQ_DB"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("ATTACQ_STORE"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("ATTACQ_REDIS_ADDR"); v != "" {
		c.Store.RedisAddr = v
	}
	if v := os.Getenv("ATTACQ_FRAGMENTS_URL"); v != "" {
		c.MiniGames.FragmentsURL = v
	}
	if v := os.Getenv("ATTACQ_QUESTIONS"); v != "" {
		c.QuestionsFile = v
	}
	if v := os.Getenv("ATTACQ_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if b, ok := envBool("ATTACQ_DEBUG"); ok {
		c.Log.Enabled = b
	}
	if b, ok := envBool("ATTACQ_VERBOSE"); ok {
		c.Log.Verbose = b
	}
	if b, ok := envBool("ATTACQ_ROGUE"); ok {
		c.ForceExtended = b
	}
	if b, ok := envBool("ATTACQ_LOW_BANDWIDTH"); ok {
		c.Cache.LowBandwidth = b
	}
	if b, ok := envBool("ATTACQ_MINIGAMES"); ok {
		c.MiniGames.Enabled = b
	}
	if d, err := time.ParseDuration(os.Getenv("ATTACQ_CACHE_TTL")); err == nil {
		c.Cache.TTL = d
	}
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case "sqlite":
	case "redis":
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store.redis_addr (ATTACQ_REDIS_ADDR) is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown store backend: %q", c.Store.Backend)
	}

	q := c.Quiz
	if q.QuestionsPerRound < 1 || q.ExtendedQuestions < 1 {
		return fmt.Errorf("questions per round must be positive")
	}
	if q.RoundIncrement < 0 {
		return fmt.Errorf("round increment must not be negative")
	}
	if q.BadgeThreshold < 1 || q.PlayCap < 1 || q.MaxRestarts < 0 {
		return fmt.Errorf("badge threshold and play cap must be positive")
	}
	if q.MiniGameChance < 0 || q.MiniGameChance > 1 {
		return fmt.Errorf("minigame chance must be within [0,1], got %v", q.MiniGameChance)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive")
	}
	return nil
}
