package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mockautomation/storefront-e2e/internal/browser"
	internalcli "github.com/mockautomation/storefront-e2e/internal/cli"
	"github.com/mockautomation/storefront-e2e/internal/config"
	"github.com/mockautomation/storefront-e2e/internal/database"
	"github.com/mockautomation/storefront-e2e/internal/helpers"
	"github.com/mockautomation/storefront-e2e/internal/metrics"
	"github.com/mockautomation/storefront-e2e/internal/repository"
	"github.com/mockautomation/storefront-e2e/internal/scenario"
	"github.com/mockautomation/storefront-e2e/internal/storefront"
	"github.com/urfave/cli/v2"
)

var version = "0.1.0"

// RunCommand returns the run command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the storefront scenarios in a browser",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "scenario",
				Aliases: []string{"s"},
				Usage:   "run only the given scenario id (repeatable)",
			},
			&cli.StringFlag{
				Name:  "target",
				Usage: "storefront origin, overrides STOREFRONT_URL",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "scenarios run in parallel, overrides WORKERS",
			},
			&cli.BoolFlag{
				Name:  "record",
				Usage: "persist the run to PostgreSQL",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "write Prometheus metrics to this file after the run",
			},
		},
		Action: func(c *cli.Context) error {
			testConfig := config.LoadTestConfig(os.Getenv)
			if target := c.String("target"); target != "" {
				testConfig = testConfig.WithOrigin(target)
			}
			if err := testConfig.Validate(); err != nil {
				return fmt.Errorf("missing required test configuration: %w", err)
			}

			browserConfig, err := config.LoadBrowserConfig(os.Getenv)
			if err != nil {
				return fmt.Errorf("invalid browser configuration: %w", err)
			}
			if c.IsSet("workers") {
				browserConfig.Workers = c.Int("workers")
			}

			suite, err := scenario.NewSuite().Select(c.StringSlice("scenario")...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			launched, err := browser.Launch(browserConfig)
			if err != nil {
				return err
			}
			defer launched.Close()

			scenarioMetrics := metrics.NewScenarios()
			runner := &scenario.Runner{
				Browser:  launched.Browser,
				Config:   testConfig,
				Options:  browserConfig,
				Status:   helpers.DefaultStatusLogger(),
				Observer: scenarioMetrics,
			}

			if c.Bool("record") {
				db, err := openResultStore()
				if err != nil {
					return err
				}
				defer db.Close()
				runner.Recorder = repository.NewRunRepository(db)
			}

			_, err = internalcli.RunSuite(ctx, internalcli.RunDependencies{
				Runner:      runner,
				Suite:       suite,
				Out:         c.App.Writer,
				Metrics:     scenarioMetrics,
				MetricsFile: c.String("metrics-file"),
			})
			if errors.Is(err, internalcli.ErrScenariosFailed) {
				return cli.Exit(err.Error(), 1)
			}
			return err
		},
	}
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the fake storefront",
		Action: func(c *cli.Context) error {
			testConfig := config.LoadTestConfig(os.Getenv)

			store := storefront.NewStore()
			if err := storefront.Seed(store, testConfig.FirstName, testConfig.LastName, testConfig.Email, testConfig.Password); err != nil {
				return err
			}
			if testConfig.Email == "" {
				log.Printf("Warning: TEST_EMAIL not set, no account seeded")
			}

			handler, err := storefront.NewServer(store, storefront.WithRequestLogging())
			if err != nil {
				return fmt.Errorf("failed to create storefront: %w", err)
			}

			return internalcli.RunServe(internalcli.ServerDependencies{
				ServerConfig: config.LoadServerConfig(os.Getenv),
				Storefront:   handler,
			})
		},
	}
}

// ListCommand returns the list command
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the scenarios of the suite",
		Action: func(c *cli.Context) error {
			internalcli.PrintCatalogue(c.App.Writer, scenario.NewSuite())
			return nil
		},
	}
}

// HistoryCommand returns the history command
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recent recorded runs",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Value: 20,
				Usage: "number of runs to show",
			},
		},
		Action: func(c *cli.Context) error {
			db, err := openResultStore()
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := repository.NewRunRepository(db).RecentRuns(context.Background(), c.Int("limit"))
			if err != nil {
				return err
			}
			internalcli.PrintHistory(c.App.Writer, runs)
			return nil
		},
	}
}

func openResultStore() (*sql.DB, error) {
	cfg, err := config.LoadResultStoreConfig(os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("missing required database configuration: %w", err)
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Connected to database successfully")

	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "storefront-e2e",
		Usage:   "End-to-end user flows for the e-commerce playground",
		Version: version,
		Commands: []*cli.Command{
			RunCommand(),
			ServeCommand(),
			ListCommand(),
			HistoryCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
