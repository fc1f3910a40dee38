package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/soypat/glcompose"
	"github.com/soypat/glcompose/glcompile"
	"github.com/soypat/glcompose/glcomposeaux"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildGPU      bool
	showStage     string
	snapshotOut   string
	snapshotSize  int
	snapshotLabel bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the material names of the material tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := mergedConfig()
		if err != nil {
			return err
		}
		if cfg.Materials == "" {
			return errors.New("missing material directory, set \"materials\" in the config or --materials")
		}
		names, err := glcompose.MaterialNames(os.DirFS(cfg.Materials))
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Assemble every material and write its stage sources",
	Long: `Assembles the vertex and fragment source of every material. Sources are
written to <out>/<material>/vert.glsl and <out>/<material>/frag.glsl when an
output directory is set. With --gpu every program is also compiled and linked
by the OpenGL driver, which requires a display.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		var sources func(string) (string, string, bool)
		var names []string
		if buildGPU {
			terminate, err := glcompile.Init1x1GLFW()
			if err != nil {
				return fmt.Errorf("starting GL context: %w", err)
			}
			defer terminate()
			cat, err := glcompile.NewCatalog(cfg.catalogConfig())
			if err != nil {
				return err
			}
			sources, names = cat.Sources, cat.Names()
		} else {
			cat, err := glcompose.NewCatalog[struct{}](cfg.catalogConfig(), assembleOnly)
			if err != nil {
				return err
			}
			sources, names = cat.Sources, cat.Names()
		}
		if cfg.Output != "" {
			err = writeSources(cfg.Output, names, sources)
			if err != nil {
				return err
			}
		}
		logger.Info("build done", zap.Int("materials", len(names)), zap.Bool("gpu", buildGPU), zap.String("output", cfg.Output))
		fmt.Fprintf(cmd.OutOrStdout(), "built %d materials\n", len(names))
		return nil
	},
}

// assembleOnly accepts every program without compiling it.
var assembleOnly = glcompose.CompilerFunc[struct{}](func(vertexSrc, fragmentSrc string) (struct{}, error) {
	return struct{}{}, nil
})

func writeSources(out string, names []string, sources func(string) (string, string, bool)) error {
	for _, name := range names {
		vertex, fragment, _ := sources(name)
		dir := filepath.Join(out, name)
		err := os.MkdirAll(dir, 0o755)
		if err != nil {
			return err
		}
		err = os.WriteFile(filepath.Join(dir, "vert.glsl"), []byte(vertex), 0o644)
		if err != nil {
			return err
		}
		err = os.WriteFile(filepath.Join(dir, "frag.glsl"), []byte(fragment), 0o644)
		if err != nil {
			return err
		}
	}
	return nil
}

var showCmd = &cobra.Command{
	Use:   "show MATERIAL",
	Short: "Print one assembled stage of a material",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		var stage glcompose.Stage
		switch showStage {
		case "vertex", "vert":
			stage = glcompose.StageVertex
		case "fragment", "frag":
			stage = glcompose.StageFragment
		default:
			return fmt.Errorf("unknown stage %q, want vertex or fragment", showStage)
		}
		store := glcompose.NewChunkStore(os.DirFS(cfg.Chunks), cfg.Version)
		store.SetLogger(logger)
		loader := glcompose.NewLoader(store, os.DirFS(cfg.Materials))
		loader.SetDefines(cfg.defines())
		src, err := loader.LoadStage(args[0], stage)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), src)
		return err
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview [MATERIAL]",
	Short: "Open a window drawing a spinning cube with a material",
	Long: `Opens an interactive preview. Drag with the left mouse button to orbit,
scroll to zoom, press space to switch to the next material and escape to quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		var material string
		if len(args) == 1 {
			material = args[0]
		}
		return glcomposeaux.Preview(glcomposeaux.PreviewConfig{
			Catalog:  cfg.catalogConfig(),
			Material: material,
			Width:    800,
			Height:   600,
			Context:  cmd.Context(),
		})
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot MATERIAL",
	Short: "Render a material offscreen to a PNG file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		name := args[0]
		terminate, err := glcompile.Init1x1GLFW()
		if err != nil {
			return fmt.Errorf("starting GL context: %w", err)
		}
		defer terminate()
		cat, err := glcompile.NewCatalog(cfg.catalogConfig())
		if err != nil {
			return err
		}
		img, err := glcomposeaux.Snapshot(cat, name, glcomposeaux.SnapshotConfig{
			Width:  snapshotSize,
			Height: snapshotSize,
			Yaw:    0.6,
			Pitch:  0.4,
			Label:  snapshotLabel,
		})
		if err != nil {
			return err
		}
		out := snapshotOut
		if out == "" {
			out = name + ".png"
		}
		fp, err := os.Create(out)
		if err != nil {
			return err
		}
		defer fp.Close()
		err = glcomposeaux.WritePNG(fp, img)
		if err != nil {
			return err
		}
		logger.Info("snapshot written", zap.String("material", name), zap.String("file", out))
		return fp.Close()
	},
}
