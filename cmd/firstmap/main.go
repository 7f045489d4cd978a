package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/cli"
	"github.com/alexanderramin/firstmap/internal/config"
	"github.com/alexanderramin/firstmap/internal/db"
	"github.com/alexanderramin/firstmap/internal/repository"
	"github.com/alexanderramin/firstmap/internal/scoring"
	"github.com/alexanderramin/firstmap/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	ds, err := checklist.Load(ctx, cfg.Dataset.Dir)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	// Open database
	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	assessmentRepo := repository.NewSQLiteAssessmentRepo(database)
	stateRepo := repository.NewSQLiteStateRepo(database)
	exportRepo := repository.NewSQLiteExportRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database, db.WithLogger(logger))

	memo, err := scoring.NewMemo(ds, cfg.Memo.Size)
	if err != nil {
		return fmt.Errorf("creating result cache: %w", err)
	}

	var observers []service.UseCaseObserver
	if cfg.Log.UseCases {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}

	// Wire services
	results := service.NewResultService(memo, logger)
	app := &cli.App{
		Assessments: service.NewAssessmentService(assessmentRepo, stateRepo, ds, uow, observers...),
		Results:     results,
		Reports:     service.NewReportService(results, exportRepo, observers...),
		DatasetDir:  cfg.Dataset.Dir,
		ReportDir:   cfg.Report.Dir,
		ReportWidth: cfg.Report.Width,
		Logger:      logger,
	}

	// Forms and confirmations only run on an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	logger.Debug("starting", "db", cfg.Database.Path, "dataset", datasetSource(cfg.Dataset.Dir))

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

func datasetSource(dir string) string {
	if dir == "" {
		return "embedded"
	}
	return dir
}
