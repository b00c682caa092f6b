package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/panjf2000/ants/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/matchvault/fiveaside/internal/config"
	"github.com/matchvault/fiveaside/internal/domain/aggregate"
	"github.com/matchvault/fiveaside/internal/domain/appconfig"
	"github.com/matchvault/fiveaside/internal/domain/match"
	"github.com/matchvault/fiveaside/internal/domain/player"
	"github.com/matchvault/fiveaside/internal/infrastructure/repository/memory"
	"github.com/matchvault/fiveaside/internal/infrastructure/repository/postgres"
	"github.com/matchvault/fiveaside/internal/interfaces/httpapi"
	"github.com/matchvault/fiveaside/internal/platform/cache"
	"github.com/matchvault/fiveaside/internal/platform/logging"
	"github.com/matchvault/fiveaside/internal/usecase"
)

type repositories struct {
	config        appconfig.Repository
	player        player.Repository
	match         match.Repository
	allTime       aggregate.AllTimeRepository
	season        aggregate.SeasonRepository
	report        aggregate.MatchReportRepository
	honours       aggregate.HonoursRepository
	recentForm    aggregate.RecentFormRepository
	cacheMetadata aggregate.CacheMetadataRepository
}

// NewHTTPServer wires repositories, services and the router into a ready
// server. The returned shutdown func releases the worker pool and closes
// the database connection.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, closeRepos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	pool, err := ants.NewPool(cfg.RecentFormWorkers)
	if err != nil {
		_ = closeRepos()
		return nil, nil, fmt.Errorf("create worker pool: %w", err)
	}

	allTime := usecase.NewAllTimeStatsService(repos.config, repos.player, repos.match, repos.allTime, logger)
	season := usecase.NewSeasonStatsService(repos.config, repos.player, repos.match, repos.season, logger)
	report := usecase.NewMatchReportService(repos.config, repos.player, repos.match, repos.report, logger)
	honours := usecase.NewHonoursService(repos.config, repos.player, repos.match, repos.honours, logger)
	recentForm := usecase.NewRecentFormService(repos.config, repos.player, repos.match, repos.recentForm, pool, cfg.RecentFormBatchSize, logger)
	aggregation := usecase.NewAggregationService(allTime, season, report, honours, recentForm, logger)

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL, cache.DefaultTTLs())
	}

	queries := usecase.NewStatsQueryService(
		repos.allTime,
		repos.season,
		repos.report,
		repos.honours,
		repos.recentForm,
		repos.cacheMetadata,
		store,
		logger,
	)

	handler := httpapi.NewHandler(queries, aggregation, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		pool.Release()
		_ = closeRepos()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	shutdown := func(context.Context) error {
		pool.Release()
		return closeRepos()
	}

	return server, shutdown, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if cfg.AppEnv == config.EnvDev {
		logger.Info("using in-memory repositories with seed data", "app_env", cfg.AppEnv)

		players := memory.SeedPlayers()
		matches, participations := memory.SeedMatches()
		store := memory.NewAggregateStore()

		return repositories{
			config:        memory.NewAppConfigRepository(memory.SeedConfig()),
			player:        memory.NewPlayerRepository(players),
			match:         memory.NewMatchRepository(players, matches, participations),
			allTime:       store.AllTime(),
			season:        store.Season(),
			report:        store.MatchReport(),
			honours:       store.Honours(),
			recentForm:    store.RecentForm(),
			cacheMetadata: store.CacheMetadata(),
		}, func() error { return nil }, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, nil, err
	}

	txTimeout := cfg.StatsTxTimeout
	return repositories{
		config:        postgres.NewAppConfigRepository(db),
		player:        postgres.NewPlayerRepository(db),
		match:         postgres.NewMatchRepository(db),
		allTime:       postgres.NewAllTimeRepository(db, txTimeout),
		season:        postgres.NewSeasonRepository(db, txTimeout),
		report:        postgres.NewMatchReportRepository(db, txTimeout),
		honours:       postgres.NewHonoursRepository(db, txTimeout),
		recentForm:    postgres.NewRecentFormRepository(db, txTimeout),
		cacheMetadata: postgres.NewCacheMetadataRepository(db),
	}, db.Close, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
