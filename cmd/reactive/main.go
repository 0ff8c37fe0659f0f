package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "reactive",
		Short: "Play with the reactive dependency tracking engine",
		Long: `reactive drives the dependency tracking engine from the command line.

  demo   runs tracked functions against a reactive counter
  serve  exposes a reactive store over HTTP and websockets`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&level, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(level)
		if err != nil {
			return err
		}

		slog.SetDefault(logger)
		return nil
	}

	cmd.AddCommand(
		demoCmd(),
		serveCmd(),
	)

	return cmd
}

func newLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})), nil
}
