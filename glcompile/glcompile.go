// Package glcompile compiles composed GLSL programs on the GPU through OpenGL.
// It requires CGo. Without CGo every function returns an error.
//
// OpenGL calls must be made from the thread owning the GL context, users
// should call runtime.LockOSThread before [Init1x1GLFW].
package glcompile

import (
	"github.com/soypat/glcompose"
)

var _ glcompose.Compiler[*Program] = Compiler{} // Interface implementation compile-time check.

// NewCatalog builds a catalog of GPU programs using the current GL context.
func NewCatalog(cfg glcompose.CatalogConfig) (*glcompose.Catalog[*Program], error) {
	return glcompose.NewCatalog[*Program](cfg, Compiler{})
}

// Culling selects which triangle winding is discarded when drawing.
type Culling uint8

const (
	CullNone Culling = iota
	// CullClockwise discards triangles wound clockwise on screen.
	CullClockwise
	// CullCounterClockwise discards triangles wound counter-clockwise on screen.
	CullCounterClockwise
)

// DrawParams is the GL pipeline state a material is drawn with.
type DrawParams struct {
	// AlphaBlend enables source-alpha blending.
	AlphaBlend bool
	Culling    Culling
	DepthTest  bool
}

// DefaultDrawParams returns alpha blending with clockwise faces culled.
func DefaultDrawParams() DrawParams {
	return DrawParams{
		AlphaBlend: true,
		Culling:    CullClockwise,
	}
}

// Material pairs a compiled program with the pipeline state it is drawn with.
type Material struct {
	Program *Program
	Params  DrawParams
}

// NewMaterial returns a material for the named program of the catalog with
// [DefaultDrawParams]. ok is false if the catalog has no such program.
func NewMaterial(cat *glcompose.Catalog[*Program], name string) (m *Material, ok bool) {
	prog, ok := cat.Program(name)
	if !ok {
		return nil, false
	}
	return &Material{Program: prog, Params: DefaultDrawParams()}, true
}

func nullTerminated(s string) string {
	if len(s) > 0 && s[len(s)-1] == 0 {
		return s
	}
	return s + "\x00"
}
