package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/attacq/internal/app"
	"github.com/abhisek/attacq/internal/badges"
	"github.com/abhisek/attacq/internal/config"
	"github.com/abhisek/attacq/internal/fragcache"
	"github.com/abhisek/attacq/internal/logging"
	"github.com/abhisek/attacq/internal/minigame"
	"github.com/abhisek/attacq/internal/questions"
	"github.com/abhisek/attacq/internal/quiz"
	"github.com/abhisek/attacq/internal/screens"
	"github.com/abhisek/attacq/internal/store"
)

// env is everything a command needs, built once from flags and config.
type env struct {
	cfg    config.Config
	log    *zap.Logger
	kv     store.KV
	repo   *store.ProgressRepo
	bank   *questions.Bank
	quiz   *quiz.Controller
	cache  *fragcache.Cache
	games  *minigame.Dispatcher
	rng    *rand.Rand
	dbPath string
}

// loadConfig layers .env, the YAML file, ATTACQ_* variables and flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return config.Config{}, err
	}
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if v, _ := flags.GetBool("rogue"); v {
		cfg.ForceExtended = true
	}
	debug, _ := flags.GetBool("debug")
	dev, _ := flags.GetBool("dev")
	verbose, _ := flags.GetBool("verbose")
	if debug || dev || verbose {
		cfg.Log.Enabled = true
	}
	if verbose {
		cfg.Log.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openEnv builds the store, question bank, controller and mini-game
// dispatcher. Callers must Close the result.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}

	if cfg.Store.Backend == "sqlite" {
		e.dbPath, err = resolveDBPath(cmd, cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	}

	logFile := cfg.Log.File
	if logFile == "" && cfg.Log.Enabled {
		dir := "."
		if e.dbPath != "" {
			dir = filepath.Dir(e.dbPath)
		}
		logFile = filepath.Join(dir, "attacq.log")
	}
	e.log, err = logging.New(logging.Options{Enabled: cfg.Log.Enabled, Verbose: cfg.Log.Verbose, File: logFile})
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	switch cfg.Store.Backend {
	case "redis":
		e.kv, err = store.OpenRedis(ctx, cfg.Store.RedisAddr, cfg.Store.RedisKey)
	default:
		e.kv, err = store.Open(e.dbPath)
	}
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.repo = store.NewProgressRepo(e.kv, e.log.Named(logging.CategoryStore))

	if cfg.QuestionsFile != "" {
		e.bank, err = questions.LoadFile(cfg.QuestionsFile)
	} else {
		e.bank, err = questions.Embedded()
	}
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load questions: %w", err)
	}
	e.log.Named(logging.CategoryQuestions).Info("question bank loaded",
		zap.Int("starter", len(e.bank.Starter)),
		zap.Int("full", len(e.bank.Full)),
	)

	e.quiz, err = quiz.New(quiz.Deps{
		Questions: e.bank,
		Progress:  e.repo,
		Badges:    badges.Default(),
		Rand:      e.rng,
		Log:       e.log.Named(logging.CategoryQuiz),
	}, quiz.RulesFromConfig(cfg))
	if err != nil {
		e.Close()
		return nil, err
	}

	if cfg.MiniGames.Enabled {
		if err := e.openGames(); err != nil {
			e.Close()
			return nil, err
		}
	}
	return e, nil
}

func (e *env) openGames() error {
	reg, err := minigame.EmbeddedRegistry()
	if err != nil {
		return fmt.Errorf("load mini-game registry: %w", err)
	}

	var fetcher fragcache.Fetcher = fragcache.FSFetcher{FS: minigame.Fragments()}
	if u := e.cfg.MiniGames.FragmentsURL; u != "" {
		fetcher = fragcache.NewHTTPFetcher(u)
	}
	c := e.cfg.Cache
	e.cache = fragcache.New(fetcher,
		fragcache.WithTTL(c.TTL),
		fragcache.WithFetchTimeout(c.FetchTimeout),
		fragcache.WithIdleDelay(c.IdleDelay),
		fragcache.WithLogger(e.log.Named(logging.CategoryCache)),
	)
	if c.LowBandwidth {
		e.cache.SetQuality(fragcache.QualityPoor)
	}
	e.games = minigame.NewDispatcher(reg, e.cache, e.cfg.MiniGames.Grace, e.log.Named(logging.CategoryMiniGame))
	return nil
}

// Close releases the store and stops the cache worker.
func (e *env) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
	if e.kv != nil {
		if err := e.kv.Close(); err != nil {
			e.log.Warn("close store", zap.Error(err))
		}
	}
	if e.log != nil {
		_ = e.log.Sync()
	}
}

// runApp opens the environment and launches the TUI.
func runApp(cmd *cobra.Command, splash bool) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(app.Options{
		Deps: screens.Deps{
			Quiz:          e.quiz,
			Badges:        badges.Default(),
			Games:         e.games,
			PreloadCount:  e.cfg.Cache.PreloadCount,
			ForceExtended: e.cfg.ForceExtended,
			Rand:          e.rng,
			Log:           e.log,
		},
		Splash: splash && !e.cfg.ForceExtended,
	})
}
