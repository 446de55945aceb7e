package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/humanbelnik/filmorate/internal/config"
	http_catalog "github.com/humanbelnik/filmorate/internal/delivery/http/catalog"
	http_film "github.com/humanbelnik/filmorate/internal/delivery/http/film"
	http_health "github.com/humanbelnik/filmorate/internal/delivery/http/health"
	http_init "github.com/humanbelnik/filmorate/internal/delivery/http/init"
	http_metrics "github.com/humanbelnik/filmorate/internal/delivery/http/metrics"
	http_swagger "github.com/humanbelnik/filmorate/internal/delivery/http/swagger"
	http_user "github.com/humanbelnik/filmorate/internal/delivery/http/user"
	ws_events "github.com/humanbelnik/filmorate/internal/delivery/ws/events"
	"github.com/humanbelnik/filmorate/internal/infra/cachemock"
	infra_memory_catalog "github.com/humanbelnik/filmorate/internal/infra/memory/catalog"
	infra_memory_film "github.com/humanbelnik/filmorate/internal/infra/memory/film"
	infra_memory_user "github.com/humanbelnik/filmorate/internal/infra/memory/user"
	infra_postgres_catalog "github.com/humanbelnik/filmorate/internal/infra/postgres/catalog"
	infra_postgres_film "github.com/humanbelnik/filmorate/internal/infra/postgres/film"
	infra_pg_init "github.com/humanbelnik/filmorate/internal/infra/postgres/init"
	infra_postgres_user "github.com/humanbelnik/filmorate/internal/infra/postgres/user"
	infra_redis_init "github.com/humanbelnik/filmorate/internal/infra/redis/init"
	infra_redis_popular "github.com/humanbelnik/filmorate/internal/infra/redis/popular"
	usecase_catalog "github.com/humanbelnik/filmorate/internal/usecase/catalog"
	usecase_film "github.com/humanbelnik/filmorate/internal/usecase/film"
	usecase_user "github.com/humanbelnik/filmorate/internal/usecase/user"
)

const popularCacheKey = "films:popular"

type repositories struct {
	films   usecase_film.Repository
	users   usecase_user.Repository
	catalog usecase_catalog.Repository

	// db is nil for the in-memory backend.
	db http_health.Pinger
}

func Go(cfg *config.Config) {
	logger := NewLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := mustRepositories(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to prepare storage: %v", err)
	}

	var cache usecase_film.PopularCache = cachemock.New()
	if cfg.Redis.Enabled() {
		redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
		defer redisConn.Close()
		cache = infra_redis_popular.New(redisConn, popularCacheKey, cfg.Redis.PopularTTL,
			infra_redis_popular.WithLogger(logger))
	}

	hub := ws_events.NewHub(ws_events.WithLogger(logger))
	defer hub.Close()

	pool := build(cfg, logger, repos, cache, hub)

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	if err := pool.RunAll(ctx, addr, cfg.HTTP.ShutdownTimeout); err != nil {
		logger.Error("http server stopped", slog.String("error", err.Error()))
		return
	}
	logger.Info("bye")
}

func build(
	cfg *config.Config,
	logger *slog.Logger,
	repos repositories,
	cache usecase_film.PopularCache,
	hub *ws_events.Hub,
) *http_init.ControllerPool {
	filmUC := usecase_film.New(repos.films, repos.users, repos.catalog,
		usecase_film.WithPopularCache(cache),
		usecase_film.WithPublisher(hub),
	)
	userUC := usecase_user.New(repos.users, usecase_user.WithPublisher(hub))
	catalogUC := usecase_catalog.New(repos.catalog)

	pool := http_init.NewControllerPool(cfg.HTTP.Mode, http_init.WithLogger(logger))
	pool.Add(http_swagger.New())
	pool.Add(http_metrics.New())
	pool.Add(http_health.New(repos.db))
	pool.Add(http_film.New(filmUC, http_film.WithLogger(logger)))
	pool.Add(http_user.New(userUC, http_user.WithLogger(logger)))
	pool.Add(http_catalog.New(catalogUC, http_catalog.WithLogger(logger)))
	pool.Add(ws_events.NewController(hub))
	pool.Register()

	return pool
}

func mustRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memoryRepositories(), nil
	case config.BackendPostgres:
		pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
		if cfg.Postgres.Migrate {
			if err := infra_pg_init.Migrate(ctx, pgConn); err != nil {
				return repositories{}, err
			}
		}
		return repositories{
			films:   infra_postgres_film.New(pgConn),
			users:   infra_postgres_user.New(pgConn),
			catalog: infra_postgres_catalog.New(pgConn),
			db:      pgConn,
		}, nil
	default:
		return repositories{}, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func memoryRepositories() repositories {
	return repositories{
		films:   infra_memory_film.New(),
		users:   infra_memory_user.New(),
		catalog: infra_memory_catalog.New(),
	}
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
// Unknown levels fall back to info, unknown formats to text.
func NewLogger(cfg config.Logging) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
