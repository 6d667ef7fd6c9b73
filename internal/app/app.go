package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/daehyun-cho/matchup/internal/config"
	"github.com/daehyun-cho/matchup/internal/domain/challenge"
	"github.com/daehyun-cho/matchup/internal/domain/match"
	"github.com/daehyun-cho/matchup/internal/domain/matchpost"
	"github.com/daehyun-cho/matchup/internal/domain/team"
	"github.com/daehyun-cho/matchup/internal/domain/venue"
	"github.com/daehyun-cho/matchup/internal/infrastructure/geocode/kakao"
	"github.com/daehyun-cho/matchup/internal/infrastructure/repository/memory"
	"github.com/daehyun-cho/matchup/internal/infrastructure/repository/postgres"
	"github.com/daehyun-cho/matchup/internal/interfaces/httpapi"
	idgen "github.com/daehyun-cho/matchup/internal/platform/id"
	"github.com/daehyun-cho/matchup/internal/platform/logging"
	"github.com/daehyun-cho/matchup/internal/platform/resilience"
	"github.com/daehyun-cho/matchup/internal/usecase"

	_ "github.com/lib/pq"
)

type repositories struct {
	teams      team.Repository
	venues     venue.Repository
	posts      matchpost.Repository
	challenges challenge.Repository
	matches    match.Repository
	scheduler  usecase.SchedulerStore
}

// NewHTTPServer wires repositories, services and the HTTP router. The
// returned cleanup releases resources the server does not own itself,
// currently the database pool.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	teamSvc := usecase.NewTeamService(repos.teams)
	venueSvc := usecase.NewVenueService(repos.venues, buildGeocoder(cfg, logger), idgen.NewRandomGenerator(), logger)
	matchPostSvc := usecase.NewMatchPostService(repos.posts, repos.challenges, repos.teams, repos.venues)
	acceptanceSvc := usecase.NewAcceptanceService(repos.scheduler, logger)
	matchSvc := usecase.NewMatchService(repos.matches, repos.teams, repos.venues)

	handler := httpapi.NewHandler(
		teamSvc,
		venueSvc,
		matchPostSvc,
		acceptanceSvc,
		matchSvc,
		httpapi.JobDefaults{
			BackfillLimit:      cfg.BackfillLimit,
			BackfillMaxWorkers: cfg.BackfillMaxWorkers,
		},
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup(context.Background())
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func(context.Context) error, error) {
	noopCleanup := func(context.Context) error { return nil }

	if cfg.DBURL == "" {
		store := memory.NewStore()
		if cfg.MemorySeedEnabled {
			if err := memory.Seed(ctx, store); err != nil {
				return repositories{}, nil, fmt.Errorf("seed memory store: %w", err)
			}
			logger.Info("memory store seeded")
		}
		logger.Info("storage backend selected", "backend", "memory")

		return repositories{
			teams:      memory.NewTeamRepository(store),
			venues:     memory.NewVenueRepository(store),
			posts:      memory.NewMatchPostRepository(store),
			challenges: memory.NewChallengeRepository(store),
			matches:    memory.NewMatchRepository(store),
			scheduler:  memory.NewSchedulerStore(store),
		}, noopCleanup, nil
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return repositories{}, nil, err
	}
	logger.Info("storage backend selected", "backend", "postgres", "db_name", dbNameFromURL(cfg.DBURL))

	cleanup := func(context.Context) error { return db.Close() }

	return repositories{
		teams:      postgres.NewTeamRepository(db),
		venues:     postgres.NewVenueRepository(db),
		posts:      postgres.NewMatchPostRepository(db),
		challenges: postgres.NewChallengeRepository(db),
		matches:    postgres.NewMatchRepository(db),
		scheduler:  postgres.NewSchedulerStore(db),
	}, cleanup, nil
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, true)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func buildGeocoder(cfg config.Config, logger *logging.Logger) usecase.Geocoder {
	if !cfg.KakaoEnabled {
		return nil
	}

	return kakao.NewClient(kakao.ClientConfig{
		BaseURL:    cfg.KakaoBaseURL,
		RESTAPIKey: cfg.KakaoRESTAPIKey,
		Timeout:    cfg.KakaoTimeout,
		MaxRetries: cfg.KakaoMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.KakaoCircuitEnabled,
			FailureThreshold: cfg.KakaoCircuitFailureCount,
			OpenTimeout:      cfg.KakaoCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.KakaoCircuitHalfOpenMax,
		},
	})
}
