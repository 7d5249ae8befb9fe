package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DanielPopoola/fusion-cleaner/internal/adapters/backend"
	"github.com/DanielPopoola/fusion-cleaner/internal/config"
	"github.com/DanielPopoola/fusion-cleaner/internal/core/domain"
	"github.com/DanielPopoola/fusion-cleaner/internal/core/service"
	"github.com/DanielPopoola/fusion-cleaner/internal/tracing"
	"github.com/DanielPopoola/fusion-cleaner/internal/worker"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

const (
	flagConfig      = "config"
	flagFailOnError = "fail-on-error"
	flagCode        = "code"

	exitConfig   = 1
	exitFailures = 2
)

// codeSelector picks the project and process codes a command cleans.
type codeSelector func(c *cli.Context, cfg *config.Config) (projectCodes, processCodes []string)

func codeFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:     flagCode,
		Aliases:  []string{"c"},
		Usage:    "code to clean, repeatable",
		Required: true,
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "fusion-cleaner",
		Usage: "revoke stuck fusion projects and abort running workflow processes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				EnvVars: []string{config.EnvPrefix + "CONFIG"},
				Usage:   "optional YAML config file, CLEANER_* environment variables take precedence",
			},
			&cli.BoolFlag{
				Name:  flagFailOnError,
				Usage: "exit non-zero when any listing or cancellation failed",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "projects",
				Usage: "revoke every in-progress fusion project of the given project codes",
				Flags: []cli.Flag{codeFlag()},
				Action: cleanAction(func(c *cli.Context, _ *config.Config) ([]string, []string) {
					return c.StringSlice(flagCode), nil
				}),
			},
			{
				Name:  "processes",
				Usage: "abort every running process instance of the given process codes",
				Flags: []cli.Flag{codeFlag()},
				Action: cleanAction(func(c *cli.Context, _ *config.Config) ([]string, []string) {
					return nil, c.StringSlice(flagCode)
				}),
			},
			{
				Name:  "sweep",
				Usage: "clean every project and process code listed in the configuration",
				Action: cleanAction(func(_ *cli.Context, cfg *config.Config) ([]string, []string) {
					return cfg.Cleanup.ProjectCodes, cfg.Cleanup.ProcessCodes
				}),
			},
		},
	}
}

func cleanAction(selectCodes codeSelector) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.LoadConfig(c.String(flagConfig))
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to load configuration: %v", err), exitConfig)
		}

		projectCodes, processCodes := selectCodes(c, cfg)
		if len(projectCodes)+len(processCodes) == 0 {
			return cli.Exit("no project or process codes to clean", exitConfig)
		}

		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		reports, err := run(ctx, cfg, projectCodes, processCodes)
		if err != nil {
			return cli.Exit(err.Error(), exitConfig)
		}

		if c.Bool(flagFailOnError) {
			if err := worker.Err(reports); err != nil {
				return cli.Exit(err.Error(), exitFailures)
			}
		}
		return nil
	}
}

func run(ctx context.Context, cfg *config.Config, projectCodes, processCodes []string) ([]*domain.CleanReport, error) {
	logger := cfg.Logger.NewLogger().With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	shutdown, err := tracing.Init(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to init tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	logger.Info("starting fusion cleaner",
		"env", cfg.Primary.Env,
		"task_engine", cfg.TaskEngine.BaseURL,
		"workflow", cfg.Workflow.BaseURL,
	)

	projectClient := backend.NewProjectClient(cfg.TaskEngine)
	processClient := backend.NewProcessClient(cfg.Workflow, cfg.TaskEngine.Token)

	cleaner := service.NewCleaner(projectClient, processClient, logger)
	sweeper := worker.NewSweeper(cleaner, projectCodes, processCodes, logger)

	reports := sweeper.RunOnce(ctx)

	logger.Info("cleanup complete")
	return reports, nil
}
