// Command glcompose lists, assembles, validates and previews shader
// materials composed from a tree of GLSL chunks.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func init() {
	runtime.LockOSThread() // GL calls must stay on the main thread.
}

var (
	// Global flags.
	verbose    bool
	configPath string
	flagCfg    config

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "glcompose",
	Short: "Compose GLSL shader programs from reusable chunks",
	Long: `glcompose assembles shader materials. Each material directory holds a
vertex and fragment stage file that may pull reusable chunks with

	#require <id>

directives. Chunks are looked up in the chunk tree and ordered so attribute,
uniform and struct declarations come first.

Settings are read from a YAML file given with --config and can be overridden
with flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	pf.StringVar(&flagCfg.Version, "glsl-version", "", "shading language version, i.e: \"330 core\"")
	pf.StringVar(&flagCfg.Chunks, "chunks", "", "chunk tree directory")
	pf.StringVar(&flagCfg.Materials, "materials", "", "material tree directory")
	pf.StringToStringVarP(&flagCfg.Defines, "define", "D", nil, "preprocessor define NAME=VALUE, may be repeated")

	buildCmd.Flags().StringVarP(&flagCfg.Output, "out", "o", "", "output directory for assembled sources")
	buildCmd.Flags().BoolVar(&buildGPU, "gpu", false, "also compile every material with the OpenGL driver")
	showCmd.Flags().StringVar(&showStage, "stage", "fragment", "stage to print: vertex or fragment")
	snapshotCmd.Flags().StringVar(&snapshotOut, "png", "", "output PNG file, defaults to <material>.png")
	snapshotCmd.Flags().IntVar(&snapshotSize, "size", 512, "image width and height in pixels")
	snapshotCmd.Flags().BoolVar(&snapshotLabel, "label", true, "stamp the material name on the image")

	rootCmd.AddCommand(listCmd, buildCmd, showCmd, previewCmd, snapshotCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
