// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, page rendering, storage, HTTP communication, and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory cache implementation using sync.Map
// - cache/redis: Redis-based cache implementation
// - cache/sqlite: Persistent SQLite-backed cache
// - cache/rejson: JSON document cache for generated result sets
// - render/chromedp: Headless browser renderer and session pool
// - render/static: Plain-HTTP renderer for JS-light sites and tests
// - render/dom: goquery-backed page model shared by both renderers
// - storage/files: JSON document exchange on disk
// - storage/postgres: Article store
// - http/standard: Standard library HTTP client with retry logic
// - logger/logrus: Structured logger used by the server and CLI
// - logger/standard: Simple structured logger for tests
//
// # Design Philosophy
//
// Infrastructure components are designed to be:
// - Pluggable: Easy to swap implementations
// - Configurable: Accept configuration objects
// - Testable: Include both unit and integration tests
// - Production-ready: Include retries, timeouts, and error handling
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), 1*time.Hour)
//	value, err := cache.Get(ctx, "key")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address:  "localhost:6379",
//	    Password: "",
//	    DB:       0,
//	})
//
// # HTTP Client
//
// The HTTP client includes automatic retry logic for transient failures:
//
//	client := standard.NewStandardHTTPClient(30 * time.Second)
//	resp, err := client.Get(ctx, "https://example.com")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Renderers
//
// Both renderers implement the same Renderer and Session interfaces, so
// the pipeline runs unchanged over a headless browser or plain fetches:
//
//	renderer, err := chromedp.NewRenderer(chromedp.Options{}, logger)
//	session, err := renderer.NewSession(ctx)
//	page, err := session.Navigate(ctx, "https://example.com/article")
package infrastructure
