// Command sandbox opens an engine window and runs an empty game
// against the frame loop. It exists to exercise the platform layer end
// to end.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ember-engine/ember/internal/config"
	"github.com/ember-engine/ember/internal/engine"
	"github.com/ember-engine/ember/internal/logger"
	"github.com/ember-engine/ember/internal/memory"
	"github.com/ember-engine/ember/internal/platform"
)

// version is stamped by the build.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sandbox",
		Short:         "Ember engine sandbox application",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCmd(), newVersionCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the sandbox window and run the frame loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromPath(configPath)
			if err != nil {
				return err
			}

			level, err := logger.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(level)

			mem := memory.NewSystem()
			app, err := engine.New(engine.Config{
				Name:     cfg.Window.Title,
				StartX:   cfg.Window.X,
				StartY:   cfg.Window.Y,
				Width:    cfg.Window.Width,
				Height:   cfg.Window.Height,
				FrameCap: cfg.FrameCap,
			}, newSandboxGame(mem), platform.New())
			if err != nil {
				return err
			}

			if err := app.Run(); err != nil {
				return err
			}
			logger.Infof("%s", mem.UsageReport())
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "sandbox.yaml", "path to the sandbox config file")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sandbox version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "sandbox", version)
		},
	}
}
