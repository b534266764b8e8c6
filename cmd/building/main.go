package main

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stwalsh4118/building/internal/config"
	apperrors "github.com/stwalsh4118/building/internal/errors"
	"github.com/stwalsh4118/building/internal/handlers"
	"github.com/stwalsh4118/building/internal/locator"
	"github.com/stwalsh4118/building/internal/logger"
	"github.com/stwalsh4118/building/internal/repository"
	"github.com/stwalsh4118/building/internal/services"
)

const version = "0.1.0"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit status.
func execute(args []string, stdout, stderr io.Writer) int {
	exitCode := apperrors.ExitOK

	root := newRootCommand(stdout, stderr, &exitCode)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		return apperrors.ExitFailure
	}
	return exitCode
}

func newRootCommand(stdout, stderr io.Writer, exitCode *int) *cobra.Command {
	root := &cobra.Command{
		Use:          "building",
		Short:        "Apartment building records",
		Version:      version,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.CountP("verbosity", "v", "increase diagnostic output (repeatable)")
	flags.String("env", "", "runtime environment; development logs to the console, anything else as JSON")
	flags.String("log-level", "", "explicit log level, overrides -v")
	flags.String("data-file", "", "data file name, relative to the data directory unless absolute")
	flags.String("data-dir", "", "data subdirectory of the main directory")
	flags.String("marker-file", "", "file marking the main directory")

	root.AddCommand(newApartmentsCommand(stdout, stderr, exitCode))

	return root
}

func newApartmentsCommand(stdout, stderr io.Writer, exitCode *int) *cobra.Command {
	var (
		req    handlers.ApartmentsRequest
		occupy string
		add    string
	)

	cmd := &cobra.Command{
		Use:   "apartments",
		Short: "List, add and occupy apartments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// An explicitly empty code is still a request
			if cmd.Flags().Changed("occupy") {
				req.Occupy = &occupy
			}
			if cmd.Flags().Changed("add") {
				req.Add = &add
			}

			// Load configuration from environment variables and flags
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			level, err := logger.ParseLevel(cfg.App.LogLevel, cfg.App.Verbosity)
			if err != nil {
				return err
			}
			log := logger.NewWithWriter(stderr, cfg.App.Env, level).WithRunID(uuid.NewString())
			log.Info("Starting building", map[string]interface{}{
				"version":     version,
				"environment": cfg.App.Env,
				"verbosity":   cfg.App.Verbosity,
				"data_file":   cfg.Storage.DataFile,
			})

			fs := afero.NewOsFs()
			loc := locator.New(fs, cfg.Storage.MarkerFile, cfg.Storage.DataDir, log)
			repo := repository.NewFileRepository(fs, loc, repository.NewYAMLCodec(), cfg.Storage.DataFile, log)
			service := services.NewBuildingService(log)
			handler := handlers.NewApartmentsHandler(repo, service, stdout, stderr, log)

			*exitCode = handler.Handle(cmd.Context(), req)

			if *exitCode == apperrors.ExitOK {
				log.Debug("Application finished", map[string]interface{}{"exit_code": *exitCode})
			} else {
				log.Warn("Application failed", map[string]interface{}{"exit_code": *exitCode})
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&req.List, "list", "l", false, "list apartments")
	cmd.Flags().StringVarP(&occupy, "occupy", "o", "", "occupy the apartment with the given code")
	cmd.Flags().StringVarP(&add, "add", "a", "", "add an apartment with the given code")

	return cmd
}
