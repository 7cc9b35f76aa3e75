package app

import (
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/fairwaypot/settlement/external/jobqueue"
	"github.com/fairwaypot/settlement/internal/config"
	"github.com/fairwaypot/settlement/internal/domain/league"
	"github.com/fairwaypot/settlement/internal/domain/ledger"
	"github.com/fairwaypot/settlement/internal/domain/player"
	"github.com/fairwaypot/settlement/internal/domain/team"
	"github.com/fairwaypot/settlement/internal/domain/tournament"
	"github.com/fairwaypot/settlement/internal/domain/wallet"
	"github.com/fairwaypot/settlement/internal/infrastructure/repository/memory"
	"github.com/fairwaypot/settlement/internal/infrastructure/repository/postgres"
	"github.com/fairwaypot/settlement/internal/interfaces/httpapi"
	"github.com/fairwaypot/settlement/internal/platform/logging"
	"github.com/fairwaypot/settlement/internal/platform/resilience"
	"github.com/fairwaypot/settlement/internal/usecase"
)

// App bundles the wired settlement engine: the sweep entrypoint for batch
// runs plus the ops HTTP surface.
type App struct {
	Settlement *usecase.SettlementService
	Ledger     ledger.Repository

	cfg    config.Config
	logger *logging.Logger
}

type repositories struct {
	tournaments tournament.Repository
	leagues     league.Repository
	teams       team.Repository
	players     player.Repository
	wallets     wallet.Repository
	ledger      ledger.Repository
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	leaderboardService := usecase.NewLeaderboardService(repos.players, usecase.LeaderboardConfig{
		MaxFetchWorkers: cfg.LeaderboardMaxFetchWorkers,
	}, logger)
	payoutService := usecase.NewPayoutService(repos.wallets, repos.ledger, nil, usecase.PayoutConfig{
		PlatformFeeBps: int64(cfg.PlatformFeeBps),
	}, logger)
	settlementService := usecase.NewSettlementService(
		repos.tournaments,
		repos.leagues,
		repos.teams,
		leaderboardService,
		payoutService,
		usecase.SettlementConfig{MaxPositionWorkers: cfg.SettlementMaxPositionWorkers},
		logger,
	)

	return &App{
		Settlement: settlementService,
		Ledger:     repos.ledger,
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// buildRepositories opens the traced Postgres pool when DB_URL is set and
// falls back to seeded in-memory repositories otherwise, for local runs
// without a database.
func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		logger.Warn("DB_URL is empty, using seeded in-memory repositories")
		store := memory.NewWalletStore(memory.SeedAccounts())
		return repositories{
			tournaments: memory.NewTournamentRepository(memory.SeedTournaments()),
			leagues:     memory.NewLeagueRepository(memory.SeedLeagues()),
			teams:       memory.NewTeamRepository(memory.SeedTeams()),
			players:     memory.NewPlayerRepository(memory.SeedPlayers()),
			wallets:     memory.NewWalletRepository(store),
			ledger:      memory.NewLedgerRepository(store),
		}, nil
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}

	return repositories{
		tournaments: postgres.NewTournamentRepository(db),
		leagues:     postgres.NewLeagueRepository(db),
		teams:       postgres.NewTeamRepository(db),
		players:     postgres.NewPlayerRepository(db),
		wallets:     postgres.NewWalletRepository(db),
		ledger:      postgres.NewLedgerRepository(db),
	}, nil
}

func (a *App) NewHTTPServer() (*http.Server, error) {
	if a.cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(a.Settlement, a.Ledger, a.newSweepScheduler(), a.cfg.SweepInterval, a.logger)
	router := httpapi.NewRouter(handler, a.logger, a.cfg.InternalJobToken)

	return &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}, nil
}

func (a *App) newSweepScheduler() httpapi.SweepScheduler {
	if !a.cfg.QStashEnabled {
		return nil
	}

	return jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
		BaseURL:          a.cfg.QStashBaseURL,
		Token:            a.cfg.QStashToken,
		TargetBaseURL:    a.cfg.QStashTargetBaseURL,
		Retries:          a.cfg.QStashRetries,
		InternalJobToken: a.cfg.InternalJobToken,
		Timeout:          a.cfg.QStashTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          a.cfg.QStashCircuitEnabled,
			FailureThreshold: a.cfg.QStashCircuitFailureCount,
			OpenTimeout:      a.cfg.QStashCircuitOpenTimeout,
			HalfOpenMaxReq:   a.cfg.QStashCircuitHalfOpenMaxReq,
		},
	}, a.logger)
}
