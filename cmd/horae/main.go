package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/pvermeer/horae/internal/cli"
	"github.com/pvermeer/horae/internal/config"
	"github.com/pvermeer/horae/internal/db"
	"github.com/pvermeer/horae/internal/energy"
	"github.com/pvermeer/horae/internal/enforcement"
	"github.com/pvermeer/horae/internal/repository"
	"github.com/pvermeer/horae/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.horae/horae.db
	dbPath := os.Getenv("HORAE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".horae", "horae.db")
	}

	cfg, err := config.Load(os.Getenv("HORAE_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// Drop styling when output is piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		os.Setenv("NO_COLOR", "1")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	meetingRepo := repository.NewSQLiteMeetingRepo(database)
	blockRepo := repository.NewSQLiteBlockRepo(database)
	ruleRepo := repository.NewSQLiteNoMeetingRuleRepo(database)
	sampleRepo := repository.NewSQLiteEnergySampleRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewUnitOfWork(database)

	// Wire providers: the analyzer serves energy predictions, the enforcer
	// serves blocked intervals and focus-time verdicts.
	analyzer := energy.NewAnalyzer(sampleRepo, cfg.Energy.AnalysisDays, cfg.Energy.PatternCacheTTL)
	enforcer := enforcement.NewEnforcer(blockRepo, ruleRepo, meetingRepo)

	var observers []service.UseCaseObserver
	if os.Getenv("HORAE_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Meetings:   service.NewMeetingService(meetingRepo, uow),
		Blocks:     service.NewBlockService(blockRepo, ruleRepo),
		Energy:     service.NewEnergyService(sampleRepo, analyzer),
		Optimize:   service.NewOptimizeService(analyzer, enforcer, cfg, observers...),
		Suggest:    service.NewSuggestService(analyzer, enforcer, cfg, observers...),
		Reschedule: service.NewRescheduleService(meetingRepo, analyzer, enforcer, cfg, observers...),
		Review:     enforcer,
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
