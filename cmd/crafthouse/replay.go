package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/YuShigurey/learn-bevy/internal/config"
	"github.com/YuShigurey/learn-bevy/internal/trace"
	"github.com/YuShigurey/learn-bevy/pkg/camera"
	"github.com/YuShigurey/learn-bevy/pkg/viewer"
)

func newReplayCmd(a *app) *cobra.Command {
	var every int

	cmd := &cobra.Command{
		Use:   "replay [trace.yaml]",
		Short: "Replay a recorded input trace without a window",
		Long:  "Feed a YAML input trace through the matching camera rig and print the resulting poses.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open trace: %w", err)
			}
			defer f.Close()

			tr, err := trace.Decode(f)
			if err != nil {
				return err
			}

			poses, err := replay(a.cfg, tr)
			if err != nil {
				return err
			}
			a.logger.Info().Str("trace", args[0]).Int("ticks", len(poses)).Msg("Trace replayed")

			fmt.Fprintln(cmd.OutOrStdout(), poseTable(poses, every))
			return nil
		},
	}
	cmd.Flags().IntVarP(&every, "every", "n", 1, "print every n-th tick (the last tick is always printed)")
	return cmd
}

func modeFor(c trace.Controller) viewer.Mode {
	if c == trace.ControllerOrbit {
		return viewer.ModeEditor
	}
	return viewer.ModeShooter
}

func replay(cfg *config.Config, tr *trace.Trace) ([]camera.Pose, error) {
	rig, err := viewer.NewRig(modeFor(tr.Controller), cfg)
	if err != nil {
		return nil, err
	}
	frames, err := tr.Expand()
	if err != nil {
		return nil, err
	}
	dt := float32(cfg.TickInterval().Seconds())
	return trace.Replay(rig, frames, dt), nil
}

func poseTable(poses []camera.Pose, every int) string {
	if every < 1 {
		every = 1
	}
	vec := func(v mgl32.Vec3) string {
		// keep float noise around zero from printing as -0.000
		for i := range v {
			if mgl32.Abs(v[i]) < 5e-4 {
				v[i] = 0
			}
		}
		return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("tick", "position", "forward", "up")
	for i, p := range poses {
		if (i+1)%every != 0 && i != len(poses)-1 {
			continue
		}
		t.Row(strconv.Itoa(i+1), vec(p.Position), vec(p.Forward()), vec(p.Up()))
	}
	return t.Render()
}
