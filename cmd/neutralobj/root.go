package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// cliConfig holds the flags shared by every subcommand.
type cliConfig struct {
	logLevel string
	handler  slog.Handler
}

func newRootCmd() *cobra.Command {
	cfg := &cliConfig{}

	rootCmd := &cobra.Command{
		Use:   "neutralobj",
		Short: "Call neutral script objects",
		Long: `neutralobj compiles a neutral object (Starlark, Risor, wasm or a registered Go
function), calls its callback with the descriptor params and prints the returned data as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(cfg.logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", cfg.logLevel, err)
			}
			cfg.handler = slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfg.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(newRunCmd(cfg))
	rootCmd.AddCommand(newFixtureCmd(cfg))
	return rootCmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
