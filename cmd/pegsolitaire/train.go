package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samuelfneumann/pegsolitaire/agent/actorcritic"
	"github.com/samuelfneumann/pegsolitaire/config"
	"github.com/samuelfneumann/pegsolitaire/experiment"
	"github.com/samuelfneumann/pegsolitaire/experiment/checkpointer"
	"github.com/samuelfneumann/pegsolitaire/experiment/metrics"
	"github.com/samuelfneumann/pegsolitaire/experiment/tracker"
	"github.com/samuelfneumann/pegsolitaire/experiment/trackers"
	"github.com/samuelfneumann/pegsolitaire/plot"
	"github.com/samuelfneumann/pegsolitaire/utils/progressbar"
	"github.com/spf13/cobra"
)

// Files written into each run directory
const (
	configFile  = "config.yaml"
	actorFile   = "actor.bin"
	criticFile  = "critic.bin"
	pegsFile    = "remaining_pegs.bin"
	returnsFile = "returns.bin"
	lengthsFile = "episode_lengths.bin"
	plotFile    = "learning_curves.html"
	metricsFile = "metrics.prom"
)

var (
	episodes   int
	seed       uint64
	criticKind string
	watch      bool

	trainCmd = &cobra.Command{
		Use:   "train",
		Short: "Train an actor and critic and save them to a new run directory",
		Args:  cobra.NoArgs,
		RunE:  runTrain,
	}
)

func init() {
	trainCmd.Flags().IntVarP(&episodes, "episodes", "e", 0,
		"number of training episodes, overrides the configuration")
	trainCmd.Flags().Uint64VarP(&seed, "seed", "s", 0,
		"random seed, overrides the configuration")
	trainCmd.Flags().StringVar(&criticKind, "critic", "",
		"critic kind (table or nn), overrides the configuration")
	trainCmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"play a greedy game with the trained actor after training")
}

// loadConfig loads the configuration given by the --config flag
func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("episodes") {
		cfg.Episodes = episodes
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("critic") {
		cfg.Critic = criticKind
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	runDir := filepath.Join(cfg.Output.Dir, uuid.New().String())
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return fmt.Errorf("could not create run directory: %w", err)
	}
	if err := cfg.Save(filepath.Join(runDir, configFile)); err != nil {
		return err
	}
	log.Info().Str("dir", runDir).Str("critic", cfg.Critic).
		Str("shape", cfg.Game.Shape).Int("size", cfg.Game.Size).
		Msg("created run")

	e, _, err := cfg.Game.Create(cfg.Seed)
	if err != nil {
		return err
	}
	actor, err := actorcritic.NewActor(cfg.Actor, cfg.Episodes, cfg.Seed)
	if err != nil {
		return err
	}
	critic, err := actorcritic.NewCritic(cfg.Critic, cfg.CriticConfig(),
		e.Features(), cfg.Seed)
	if err != nil {
		return err
	}
	serializableCritic, ok := critic.(checkpointer.Serializable)
	if !ok {
		return fmt.Errorf("critic %T cannot be saved", critic)
	}

	pegs := trackers.NewRemainingPegs(filepath.Join(runDir, pegsFile))
	returns := trackers.NewReturn(filepath.Join(runDir, returnsFile))
	lengths := trackers.NewEpisodeLength(filepath.Join(runDir, lengthsFile))

	var checkpointers []checkpointer.Checkpointer
	if n := cfg.Output.CheckpointEvery; n > 0 {
		actorCheck, err := checkpointer.NewNEpisode(n, actor,
			checkpointer.FilenameEnumerator(0,
				filepath.Join(runDir, "actor-"), ".bin"))
		if err != nil {
			return err
		}
		criticCheck, err := checkpointer.NewNEpisode(n, serializableCritic,
			checkpointer.FilenameEnumerator(0,
				filepath.Join(runDir, "critic-"), ".bin"))
		if err != nil {
			return err
		}
		checkpointers = append(checkpointers, actorCheck, criticCheck)
	}

	exp, err := experiment.NewOnline(e, actor, critic, cfg.Episodes,
		[]tracker.Tracker{pegs, returns, lengths}, checkpointers)
	if err != nil {
		return err
	}
	exp.LogEvery = cfg.Output.LogEvery

	var m *metrics.Metrics
	if cfg.Output.Metrics {
		m = metrics.New(e.Features())
		exp.SetMetrics(m)
	}
	if cfg.Output.ProgressBar {
		exp.SetProgressBar(progressbar.NewProgressBar(os.Stderr, 40,
			cfg.Episodes))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Whatever was learned before an interrupt is still saved
	runErr := exp.Run(ctx)
	if runErr != nil {
		log.Warn().Err(runErr).Msg("training stopped early")
	}

	if err := exp.Save(); err != nil {
		return err
	}
	if err := actor.Save(filepath.Join(runDir, actorFile)); err != nil {
		return err
	}
	if err := serializableCritic.Save(filepath.Join(runDir,
		criticFile)); err != nil {
		return err
	}
	if cfg.Output.Plot {
		err := plot.LearningCurves(filepath.Join(runDir, plotFile),
			pegs.Data(), returns.Data())
		if err != nil {
			return err
		}
	}
	if m != nil {
		if err := m.WriteTextfile(filepath.Join(runDir, metricsFile)); err != nil {
			return err
		}
	}
	log.Info().Str("dir", runDir).Msg("saved run")

	if runErr != nil {
		return runErr
	}

	if watch {
		r, err := renderer(cfg.Display, runDir)
		if err != nil {
			return err
		}
		if _, err := exp.Play(r); err != nil {
			return err
		}
	}
	return nil
}
