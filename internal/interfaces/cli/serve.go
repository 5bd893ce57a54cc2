package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	appRun "github.com/turtacn/LeadScout/internal/application/run"
	"github.com/turtacn/LeadScout/internal/config"
	"github.com/turtacn/LeadScout/internal/domain/generation"
	runDomain "github.com/turtacn/LeadScout/internal/domain/run"
	"github.com/turtacn/LeadScout/internal/engine"
	"github.com/turtacn/LeadScout/internal/infrastructure/database/postgres"
	"github.com/turtacn/LeadScout/internal/infrastructure/database/postgres/repositories"
	redisinfra "github.com/turtacn/LeadScout/internal/infrastructure/database/redis"
	kafkainfra "github.com/turtacn/LeadScout/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/LeadScout/internal/infrastructure/monitoring/logging"
	prominfra "github.com/turtacn/LeadScout/internal/infrastructure/monitoring/prometheus"
	miniostorage "github.com/turtacn/LeadScout/internal/infrastructure/storage/minio"
	"github.com/turtacn/LeadScout/internal/interfaces/http"
	"github.com/turtacn/LeadScout/internal/interfaces/http/handlers"
	"github.com/turtacn/LeadScout/internal/oracle"
)

const startupTimeout = 30 * time.Second

// componentChecker adapts an infrastructure health probe to the readiness
// endpoint.
type componentChecker struct {
	name  string
	check func(ctx context.Context) error
}

func (c componentChecker) Name() string                    { return c.name }
func (c componentChecker) Check(ctx context.Context) error { return c.check(ctx) }

type serveOptions struct {
	migrate bool
}

func newServeCmd(root *RootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the LeadScout API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), root, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "apply pending schema migrations before serving")

	return cmd
}

func runServe(ctx context.Context, root *RootOptions, opts *serveOptions) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, root)
	if err != nil {
		return err
	}
	logger.Info("starting leadscout api server",
		logging.String("version", Version),
		logging.Int("port", cfg.Server.Port))

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	if opts.migrate {
		if err := postgres.RunMigrations(postgres.MigrationURL(cfg.Database), cfg.Database.MigrationPath); err != nil {
			return err
		}
		logger.Info("schema migrations applied")
	}

	conn, err := postgres.NewConnection(startCtx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	repoLog := repositories.Adapt(logger)
	runRepo := repositories.NewRunRepository(conn.Pool(), repoLog)
	candRepo := repositories.NewCandidateRepository(conn.Pool(), repoLog)
	traceRepo := repositories.NewTraceRepository(conn.Pool(), repoLog)

	checkers := []handlers.HealthChecker{
		componentChecker{name: "postgres", check: conn.HealthCheck},
	}

	svcOpts := appRun.Options{
		Metrics:    prominfra.New(),
		RunTimeout: cfg.Engine.RunTimeout,
	}

	if cfg.Redis.Enabled {
		redisClient, err := redisinfra.NewClient(startCtx, cfg.Redis, logger)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		svcOpts.Cache = redisinfra.NewStateCache(redisClient, cfg.Redis.KeyPrefix, cfg.Redis.StateTTL)
		checkers = append(checkers, componentChecker{name: "redis", check: redisClient.HealthCheck})
	}

	if cfg.Kafka.Enabled {
		producer := kafkainfra.NewProducer(cfg.Kafka, logger)
		defer producer.Close()
		svcOpts.Producer = producer
	}

	if cfg.MinIO.Enabled {
		archiver, err := miniostorage.NewArchiver(startCtx, cfg.MinIO, logger)
		if err != nil {
			return err
		}
		svcOpts.Archiver = archiver
	}

	eng := engine.New(generation.NewGenerator(nil), oracle.NewHeuristicOracle(), logger)
	service := appRun.NewService(eng, runRepo, candRepo, traceRepo, defaultPlan(cfg), logger, svcOpts)

	router := http.NewRouter(http.RouterConfig{
		RunHandler:    handlers.NewRunHandler(service),
		HealthHandler: handlers.NewHealthHandler(Version, checkers...),
		Metrics:       svcOpts.Metrics,
		Logger:        logger,
		Mode:          cfg.Server.Mode,
	})
	server := http.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("context canceled, shutting down")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("shutdown error", logging.Err(err))
	}
	service.Wait()
	logger.Info("server stopped")
	return nil
}

// defaultPlan lifts the engine configuration into the run-plan defaults.
func defaultPlan(cfg *config.Config) runDomain.Plan {
	return runDomain.Plan{
		Rounds:             cfg.Engine.Rounds,
		CandidatesPerRound: cfg.Engine.CandidatesPerRound,
		TopK:               cfg.Engine.TopK,
		MaxViolations:      cfg.Engine.MaxViolations,
		ScoringPenalty:     cfg.Engine.ScoringPenalty,
	}
}

//Personal.AI order the ending
