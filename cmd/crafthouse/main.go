// Package main provides the CLI entry point for the crafthouse camera demos.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/YuShigurey/learn-bevy/internal/config"
	"github.com/YuShigurey/learn-bevy/internal/logging"
)

var (
	// Version information (set at build time)
	version = "dev"

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

func init() {
	// GLFW and OpenGL calls must stay on the main thread
	runtime.LockOSThread()
}

// app carries state shared by every subcommand
type app struct {
	configPath string
	logLevel   string

	v      *viper.Viper
	cfg    *config.Config
	logger zerolog.Logger
	closer io.Closer
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	v, err := config.New(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		v.Set("log.level", a.logLevel)
	}
	cfg, err := config.Decode(v)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.v = v
	a.cfg = cfg
	a.logger = logger.With().Str("command", cmd.Name()).Logger()
	a.closer = closer
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "crafthouse",
		Short: "Camera controller demos",
		Long: titleStyle.Render("crafthouse") + `

Two camera demos in a small lit room:
• shooter: a free-fly first-person camera (WASD, Space, Shift, mouse look)
• editor: an orbit camera (mouse orbit, middle button pan, wheel zoom)

` + dimStyle.Render("Click in the window to capture the cursor, Escape to release it."),
		Version:            version,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file (watched for changes)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override: trace, debug, info, warn, error")

	rootCmd.AddCommand(
		newViewCmd(a, "shooter", "Fly through the room with a free-fly camera"),
		newViewCmd(a, "editor", "Orbit the room with an editor camera"),
		newReplayCmd(a),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
