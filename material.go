package glcompose

import (
	"fmt"
	"io/fs"

	"github.com/soypat/glcompose/glbuild"
	"go.uber.org/zap"
)

// Loader locates the stage files of materials and assembles their sources.
// Materials are subdirectories of the material tree holding
// vert[.<version>].glsl and frag[.<version>].glsl files.
type Loader struct {
	chunks    *ChunkStore
	materials fs.FS
	asm       glbuild.Assembler
	buf       []byte
	log       *zap.Logger
}

// NewLoader returns a Loader resolving chunk requirements through chunks and
// reading materials from the materials tree. The version of the chunk store
// is used for the #version header and to select version specific stage files.
func NewLoader(chunks *ChunkStore, materials fs.FS) *Loader {
	return &Loader{
		chunks:    chunks,
		materials: materials,
		asm:       glbuild.Assembler{Version: chunks.Version()},
		log:       chunks.log,
	}
}

// SetDefines sets macros emitted after the #version header of every stage
// assembled from now on.
func (l *Loader) SetDefines(defines []Define) {
	l.asm.Defines = append(l.asm.Defines[:0], defines...)
}

// LoadStage returns the assembled source of one stage of a material.
// The stage's default requirements are resolved ahead of the requirements
// declared in its source file.
func (l *Loader) LoadStage(material string, stage Stage) (string, error) {
	stem := material + "/" + stage.stem()
	candidates := []string{
		stem + "." + l.chunks.fileVersion + glbuild.Ext,
		stem + glbuild.Ext,
	}
	src, _, err := readFirst(l.materials, candidates)
	if err == errNotFound {
		return "", &MissingStageFileError{Material: material, Stage: stage, Tried: candidates}
	} else if err != nil {
		return "", fmt.Errorf("%s shader of %q: %w", stage, material, err)
	}
	root := glbuild.ParseChunk(src)
	resolved, err := Resolve(l.chunks, stage.DefaultRequirements(), &root)
	if err != nil {
		return "", fmt.Errorf("%s shader of %q: %w", stage, material, err)
	}
	l.buf, err = l.asm.AppendStage(l.buf[:0], l.chunks, resolved, root.Body)
	if err != nil {
		return "", fmt.Errorf("%s shader of %q: %w", stage, material, err)
	}
	l.log.Debug("stage assembled", zap.String("material", material), zap.Stringer("stage", stage), zap.Int("chunks", len(resolved)))
	return string(l.buf), nil
}

// LoadSources returns the assembled vertex and fragment sources of a material.
func (l *Loader) LoadSources(material string) (vertex, fragment string, err error) {
	vertex, err = l.LoadStage(material, StageVertex)
	if err != nil {
		return "", "", err
	}
	fragment, err = l.LoadStage(material, StageFragment)
	if err != nil {
		return "", "", err
	}
	return vertex, fragment, nil
}

// LoadProgram assembles a material's sources and compiles them with c.
// A compiler failure is returned as a [*CompileError] carrying both sources.
func LoadProgram[P any](l *Loader, c Compiler[P], material string) (prog P, vertex, fragment string, err error) {
	vertex, fragment, err = l.LoadSources(material)
	if err != nil {
		return prog, "", "", err
	}
	prog, err = c.CompileProgram(vertex, fragment)
	if err != nil {
		var zero P
		return zero, vertex, fragment, &CompileError{Material: material, Vertex: vertex, Fragment: fragment, Err: err}
	}
	return prog, vertex, fragment, nil
}
