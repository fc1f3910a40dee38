// Package glcompose composes complete GLSL programs from a library of small
// shader source fragments ("chunks") and per-material stage sources.
//
// Chunks declare their dependencies with directive lines of the form
//
//	#require <uniforms/common>
//
// A material is a directory holding a vertex and a fragment stage file. Each
// stage is parsed, its requirements resolved transitively through a
// [ChunkStore] and the result assembled into one source with the chunks
// ordered by category: attributes, uniforms, structs and then the rest.
// A [Catalog] does this for every material in a tree and compiles the result
// once with a user provided [Compiler].
package glcompose

import "github.com/soypat/glcompose/glbuild"

// Stage is one of the two shader compilation units of a material.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return "Stage(invalid)"
}

// DefaultRequirements returns the chunks injected ahead of a stage's own
// requirements so every material has the baseline interface available.
func (s Stage) DefaultRequirements() []string {
	switch s {
	case StageVertex:
		return []string{"attributes/common", "uniforms/common"}
	case StageFragment:
		return []string{"uniforms/common"}
	}
	return nil
}

// stem returns the stage's file name without version and extension.
func (s Stage) stem() string {
	if s == StageVertex {
		return "vert"
	}
	return "frag"
}

// Compiler compiles a vertex and fragment source pair into a program handle of type P.
// Sources are passed without a null terminator.
type Compiler[P any] interface {
	CompileProgram(vertexSrc, fragmentSrc string) (P, error)
}

// CompilerFunc adapts a function to the [Compiler] interface.
type CompilerFunc[P any] func(vertexSrc, fragmentSrc string) (P, error)

func (f CompilerFunc[P]) CompileProgram(vertexSrc, fragmentSrc string) (P, error) {
	return f(vertexSrc, fragmentSrc)
}

// Define is a preprocessor macro emitted after the version header of every stage.
type Define = glbuild.Define
