package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/departure-board/internal/config"
	"github.com/preston-bernstein/departure-board/internal/logging"
	"github.com/preston-bernstein/departure-board/internal/server"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "board",
		Short:        "Train departure board for a small e-paper panel",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (defaults to $BOARD_CONFIG)")

	root.AddCommand(
		newRunCmd(&configPath),
		newOnceCmd(&configPath),
		newVersionCmd(),
	)
	return root
}

func newRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Poll the timetable and refresh the panel until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.NewWithOutput(cfg, logger, cmd.OutOrStdout())
			srv.Run(ctx, stop)
			return nil
		},
	}
}

func newOnceCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Run a single fetch and refresh cycle, then exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			srv := server.NewWithOutput(cfg, logger, cmd.OutOrStdout())
			out := srv.RunOnce(ctx)
			logging.Info(logger, "cycle finished", slog.String(logging.FieldOutcome, string(out.Kind)))
			if out.IsFailed() {
				return fmt.Errorf("refresh failed: %s", out.Reason)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), appVersion)
		},
	}
}

// setup resolves configuration (flag path first, then $BOARD_CONFIG) and builds the logger.
func setup(path string, logOut io.Writer) (config.Config, *slog.Logger, error) {
	var (
		cfg config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Resolve()
	}
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("config: %w", err)
	}

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
		Output:  logOut,
	})
	return cfg, logger, nil
}
