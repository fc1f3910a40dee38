package glcompose

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"go.uber.org/zap"
)

// CatalogConfig configures a [Catalog] build.
type CatalogConfig struct {
	// Version is the shading language version, i.e: "330 core". It is written
	// verbatim in the #version header and with spaces removed in file names.
	Version string
	// Chunks is the tree of reusable chunk files.
	Chunks fs.FS
	// Materials is the tree of material directories, one per material.
	Materials fs.FS
	// Defines are emitted after the #version header of every stage.
	Defines []Define
	// AllowPartial skips materials that fail to build instead of failing the
	// whole catalog. The errors of skipped materials are joined and returned
	// alongside the catalog.
	AllowPartial bool
	// Logger receives build diagnostics. If nil logging is disabled.
	Logger *zap.Logger
}

// Catalog holds the compiled program of every material in a material tree,
// keyed by material name. A Catalog is never modified after [NewCatalog]
// returns and is safe for concurrent reads.
type Catalog[P any] struct {
	programs map[string]catalogEntry[P]
	names    []string
	version  string
}

type catalogEntry[P any] struct {
	prog     P
	vertex   string
	fragment string
}

// NewCatalog builds every material found in cfg.Materials and compiles it
// with c. Any failure aborts the build and no catalog is returned, unless
// cfg.AllowPartial is set.
func NewCatalog[P any](cfg CatalogConfig, c Compiler[P]) (*Catalog[P], error) {
	switch {
	case cfg.Version == "":
		return nil, errors.New("catalog requires a shading language version")
	case cfg.Chunks == nil:
		return nil, errors.New("catalog requires a chunk tree")
	case cfg.Materials == nil:
		return nil, errors.New("catalog requires a material tree")
	case c == nil:
		return nil, errors.New("catalog requires a compiler")
	}
	materials, err := MaterialNames(cfg.Materials)
	if err != nil {
		return nil, err
	}
	store := NewChunkStore(cfg.Chunks, cfg.Version)
	store.SetLogger(cfg.Logger)
	log := store.log
	loader := NewLoader(store, cfg.Materials)
	loader.SetDefines(cfg.Defines)

	cat := &Catalog[P]{
		programs: make(map[string]catalogEntry[P], len(materials)),
		version:  cfg.Version,
	}
	var skipped []error
	for _, name := range materials {
		prog, vertex, fragment, err := LoadProgram(loader, c, name)
		if err != nil && cfg.AllowPartial {
			log.Warn("skipping material", zap.String("material", name), zap.Error(err))
			skipped = append(skipped, err)
			continue
		} else if err != nil {
			return nil, err
		}
		cat.programs[name] = catalogEntry[P]{prog: prog, vertex: vertex, fragment: fragment}
		cat.names = append(cat.names, name)
	}
	log.Info("catalog built", zap.Int("programs", len(cat.names)), zap.Int("chunks", store.Len()), zap.String("version", cfg.Version))
	return cat, errors.Join(skipped...)
}

// MaterialNames returns the names of the immediate subdirectories of the
// material tree in lexical order.
func MaterialNames(materials fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(materials, ".")
	if err != nil {
		return nil, fmt.Errorf("listing materials: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Program returns the compiled program of the named material.
func (cat *Catalog[P]) Program(name string) (prog P, ok bool) {
	entry, ok := cat.programs[name]
	return entry.prog, ok
}

// Sources returns the assembled vertex and fragment sources the named
// material's program was compiled from.
func (cat *Catalog[P]) Sources(name string) (vertex, fragment string, ok bool) {
	entry, ok := cat.programs[name]
	return entry.vertex, entry.fragment, ok
}

// Names returns the names of all materials in the catalog in lexical order.
func (cat *Catalog[P]) Names() []string {
	return slices.Clone(cat.names)
}

// Len returns the number of programs in the catalog.
func (cat *Catalog[P]) Len() int { return len(cat.names) }

// Version returns the shading language version the catalog was built with.
func (cat *Catalog[P]) Version() string { return cat.version }
