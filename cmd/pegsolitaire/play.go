package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samuelfneumann/pegsolitaire/agent/actorcritic"
	"github.com/samuelfneumann/pegsolitaire/config"
	"github.com/samuelfneumann/pegsolitaire/experiment"
	"github.com/samuelfneumann/pegsolitaire/render"
	"github.com/spf13/cobra"
)

var (
	rendererName string

	playCmd = &cobra.Command{
		Use:   "play <run directory>",
		Short: "Play a greedy game with the actor of a finished run",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlay,
	}
)

func init() {
	playCmd.Flags().StringVarP(&rendererName, "renderer", "r", "",
		"renderer (terminal, png or none), overrides the run configuration")
}

func runPlay(cmd *cobra.Command, args []string) error {
	runDir := args[0]

	cfg, err := config.Load(filepath.Join(runDir, configFile))
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("renderer") {
		cfg.Display.Renderer = rendererName
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	actor, err := actorcritic.LoadActor(filepath.Join(runDir, actorFile))
	if err != nil {
		return err
	}
	critic, err := actorcritic.LoadCritic(cfg.Critic,
		filepath.Join(runDir, criticFile))
	if err != nil {
		return err
	}

	e, _, err := cfg.Game.Create(cfg.Seed)
	if err != nil {
		return err
	}
	exp, err := experiment.NewOnline(e, actor, critic, 1, nil, nil)
	if err != nil {
		return err
	}

	r, err := renderer(cfg.Display, runDir)
	if err != nil {
		return err
	}
	pegs, err := exp.Play(r)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Pegs remaining: %v\n", pegs)
	return nil
}

// renderer returns the Renderer described by d. PNG frames are written
// into the frames directory of runDir.
func renderer(d config.Display, runDir string) (render.Renderer, error) {
	var r render.Renderer
	switch d.Renderer {
	case "terminal":
		r = render.NewTerminal(os.Stdout, d.Colors)

	case "png":
		png, err := render.NewPNG(filepath.Join(runDir, "frames"), "board")
		if err != nil {
			return nil, err
		}
		r = png

	default:
		return render.Nop{}, nil
	}

	if d.Delay > 0 {
		r = render.Delayed{Renderer: r, Delay: d.Delay}
	}
	return r, nil
}
