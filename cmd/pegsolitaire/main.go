// Command pegsolitaire trains an actor-critic agent to play Peg
// Solitaire and replays the games of trained agents.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "pegsolitaire",
		Short: "Learn to play Peg Solitaire with an actor-critic agent",
		Long: `pegsolitaire trains a tabular actor with either a tabular or a
neural network critic on triangle and diamond Peg Solitaire boards, and
replays the greedy games of trained actors.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"YAML configuration file, defaults are used if empty")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(trainCmd, playCmd)
}

// setupLogging sets the global zerolog logger to write human readable
// lines to stderr at the given level
func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	})
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("pegsolitaire failed")
		os.Exit(1)
	}
}
