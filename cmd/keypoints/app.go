// ABOUTME: Composition root building the service graph from configuration
// ABOUTME: Each command requests only the subsystems it needs

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sundeep8967/keypoints-backend-1/core/assemble"
	"github.com/sundeep8967/keypoints-backend-1/core/extract"
	"github.com/sundeep8967/keypoints-backend-1/core/feed"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
	"github.com/sundeep8967/keypoints-backend-1/core/keypoints"
	"github.com/sundeep8967/keypoints-backend-1/core/pipeline"
	"github.com/sundeep8967/keypoints-backend-1/core/redirect"
	"github.com/sundeep8967/keypoints-backend-1/core/scoring"
	"github.com/sundeep8967/keypoints-backend-1/core/services"
	memorycache "github.com/sundeep8967/keypoints-backend-1/infrastructure/cache/memory"
	rediscache "github.com/sundeep8967/keypoints-backend-1/infrastructure/cache/redis"
	"github.com/sundeep8967/keypoints-backend-1/infrastructure/cache/rejson"
	sqlitecache "github.com/sundeep8967/keypoints-backend-1/infrastructure/cache/sqlite"
	stdhttp "github.com/sundeep8967/keypoints-backend-1/infrastructure/http/standard"
	logruslogger "github.com/sundeep8967/keypoints-backend-1/infrastructure/logger/logrus"
	stdlogger "github.com/sundeep8967/keypoints-backend-1/infrastructure/logger/standard"
	chromerender "github.com/sundeep8967/keypoints-backend-1/infrastructure/render/chromedp"
	staticrender "github.com/sundeep8967/keypoints-backend-1/infrastructure/render/static"
	"github.com/sundeep8967/keypoints-backend-1/infrastructure/storage/files"
	"github.com/sundeep8967/keypoints-backend-1/infrastructure/storage/postgres"
	"github.com/sundeep8967/keypoints-backend-1/pkg/config"
	"github.com/sundeep8967/keypoints-backend-1/pkg/featureflags"
)

// appOptions selects the subsystems a command needs. Fetch and push
// never render pages, so they skip the browser; only commands that
// publish results connect the article store.
type appOptions struct {
	// browser starts the rendering backend
	browser bool

	// store connects Postgres when a DSN is configured
	store bool

	// poolSize overrides the configured browser pool size when positive
	poolSize int
}

// app holds the wired service graph for one command invocation.
type app struct {
	cfg    *config.Config
	logger interfaces.Logger
	flags  *featureflags.EnvManager
	deps   interfaces.Dependencies

	docs     interfaces.DocumentCache
	exchange interfaces.DocumentExchange
	store    interfaces.ArticleStore
	service  *services.GenerationService

	closers []func()
}

// newApp loads configuration and wires the service graph. Callers own
// the returned app and must Close it.
func newApp(ctx context.Context, opts appOptions) (*app, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if opts.poolSize > 0 {
		cfg.Browser.PoolSize = opts.poolSize
	}

	logger := buildLogger()
	a := &app{cfg: cfg, logger: logger, flags: newFlagManager(cfg)}

	a.deps = interfaces.Dependencies{
		Cache:      a.buildCache(),
		HTTPClient: stdhttp.NewStandardHTTPClient(30 * time.Second),
		Logger:     logger,
	}

	exchange, err := files.NewExchange(cfg.Pipeline.DataDir, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("opening data directory: %w", err)
	}
	a.exchange = exchange

	if opts.store && cfg.Storage.PostgresDSN != "" {
		store, err := postgres.NewStore(cfg.Storage.PostgresDSN)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connecting article store: %w", err)
		}
		a.store = store
		a.addCloser(func() {
			if err := store.Close(); err != nil {
				logger.Warn("Closing article store", map[string]interface{}{"error": err.Error()})
			}
		})
	}

	var renderer interfaces.Renderer
	var pool interfaces.SessionPool
	if opts.browser {
		renderer = a.buildRenderer()
		if cfg.Browser.PoolSize > 1 {
			p, err := chromerender.NewPool(ctx, renderer, cfg.Browser.PoolSize, logger)
			if err != nil {
				a.Close()
				return nil, fmt.Errorf("starting browser pool: %w", err)
			}
			pool = p
			a.addCloser(func() {
				if err := p.Close(); err != nil {
					logger.Warn("Closing browser pool", map[string]interface{}{"error": err.Error()})
				}
			})
		}
	}

	assembler := assemble.NewAssembler(a.deps,
		scoring.NewScorer(a.deps, scoring.DefaultWeights()),
		keypoints.NewGenerator(keypoints.DefaultOptions()))
	enricher := pipeline.NewEnricher(a.deps,
		redirect.NewResolver(a.deps, redirect.DefaultOptions()),
		extract.NewExtractor(a.deps, extract.DefaultThresholds()),
		assembler)
	runner := pipeline.NewRunner(a.deps, enricher, renderer, pool, pipeline.RunnerOptions{
		MaxArticles: cfg.Pipeline.MaxArticles,
		PacingDelay: cfg.Pipeline.PacingDelay,
		Concurrency: cfg.Browser.PoolSize,
	})

	a.service = services.NewGenerationService(a.deps,
		feed.NewFeedService(a.deps, feed.DefaultOptions()),
		runner,
		assembler,
		exchange,
		services.GenerationBackends{Store: a.store, Documents: a.docs},
		services.DefaultGenerationConfig())

	return a, nil
}

// buildCache selects the cache backend. Redis also carries the JSON
// document cache; other backends leave it nil and the API serves
// result sets from the exchange instead.
func (a *app) buildCache() interfaces.Cache {
	switch a.cfg.Cache.Type {
	case "redis":
		redisCache, err := rediscache.NewRedisCache(a.cfg.Cache.Redis)
		if err != nil {
			a.logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memorycache.NewMemoryCache()
		}
		a.logger.Info("Using Redis cache", map[string]interface{}{
			"address": a.cfg.Cache.Redis.Address,
		})
		a.docs = rejson.NewDocumentCache(redisCache.Client())
		a.addCloser(func() {
			if err := redisCache.Close(); err != nil {
				a.logger.Warn("Closing Redis cache", map[string]interface{}{"error": err.Error()})
			}
		})
		return redisCache
	case "sqlite":
		sqliteCache, err := sqlitecache.NewSQLiteCache(a.cfg.Cache.SQLite.Path)
		if err != nil {
			a.logger.Error("Failed to open SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memorycache.NewMemoryCache()
		}
		a.logger.Info("Using SQLite cache", map[string]interface{}{
			"path": a.cfg.Cache.SQLite.Path,
		})
		a.addCloser(func() {
			if err := sqliteCache.Close(); err != nil {
				a.logger.Warn("Closing SQLite cache", map[string]interface{}{"error": err.Error()})
			}
		})
		return sqliteCache
	default:
		a.logger.Info("Using memory cache", nil)
		return memorycache.NewMemoryCache()
	}
}

// buildLogger picks the process logger. LOG_FORMAT=plain selects the
// std-log logger for deployments without structured log collection.
func buildLogger() interfaces.Logger {
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "plain") {
		return stdlogger.NewStandardLogger()
	}
	return logruslogger.NewLogger()
}

// buildRenderer starts the headless browser, falling back to plain
// HTTP fetching when Chrome is unavailable.
func (a *app) buildRenderer() interfaces.Renderer {
	browser, err := chromerender.NewRenderer(chromerender.Options{
		Headless:          a.cfg.Browser.Headless,
		NavigationTimeout: a.cfg.Browser.NavigationTimeout,
	}, a.logger)
	if err != nil {
		a.logger.Error("Failed to start browser, falling back to static fetching", map[string]interface{}{
			"error": err.Error(),
		})
		return staticrender.NewRenderer(staticrender.Options{})
	}
	a.addCloser(func() {
		if err := browser.Close(); err != nil {
			a.logger.Warn("Closing browser", map[string]interface{}{"error": err.Error()})
		}
	})
	return browser
}

// newFlagManager builds the process feature flag manager. Caching,
// trending and rate limiting default on; briefings follow their config
// toggle; concurrent feed fetching stays opt-in.
func newFlagManager(cfg *config.Config) *featureflags.EnvManager {
	flags := featureflags.NewEnvManager("")
	flags.SetDefault(featureflags.CacheEnabled, true)
	flags.SetDefault(featureflags.TrendingEnabled, true)
	flags.SetDefault(featureflags.RateLimitEnabled, true)
	flags.SetDefault(featureflags.BriefingEnabled, cfg.Briefing.Enabled)
	return flags
}

// flagContext installs the flag manager so flag checks anywhere below
// see the same configuration.
func (a *app) flagContext(ctx context.Context) context.Context {
	return featureflags.WithManager(ctx, a.flags)
}

// Close releases resources in reverse construction order.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *app) addCloser(fn func()) {
	a.closers = append(a.closers, fn)
}
