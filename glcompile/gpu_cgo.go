//go:build !tinygo && cgo

package glcompile

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

// Init1x1GLFW starts a 1x1 sized GLFW window with a current GL context so
// programs can be compiled without a visible surface. It returns a
// termination function that should be called when done with the GPU.
func Init1x1GLFW() (terminate func(), err error) {
	_, terminate, err = glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   "glcompose",
		Version: [2]int{4, 6},
		Width:   1,
		Height:  1,
	})
	return terminate, err
}

// Compiler compiles programs in the current GL context.
type Compiler struct{}

// CompileProgram compiles and links a vertex and fragment shader pair.
func (Compiler) CompileProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   nullTerminated(vertexSrc),
		Fragment: nullTerminated(fragmentSrc),
	})
	if err != nil {
		return nil, err
	}
	return &Program{prog: prog}, nil
}

// Program is a linked GL program. Program handles are shared by every user
// of a catalog and must not be deleted while the catalog is in use.
type Program struct {
	prog glgl.Program
}

// ID returns the GL program name. Zero means the program is not initialized.
func (p *Program) ID() uint32 { return p.prog.ID() }

func (p *Program) Bind() { p.prog.Bind() }
func (p *Program) Unbind() { p.prog.Unbind() }

// Delete releases the GL program.
func (p *Program) Delete() { p.prog.Delete() }

// UniformLocation returns the location of the named uniform. It fails if the
// uniform is not an active uniform of the program.
func (p *Program) UniformLocation(name string) (int32, error) {
	return p.prog.UniformLocation(nullTerminated(name))
}

// AttribLocation returns the location of the named vertex attribute. It
// fails if the attribute is not an active input of the vertex stage.
func (p *Program) AttribLocation(name string) (uint32, error) {
	// Queried directly: glgl's AttribLocation reports 0 for every found attribute.
	loc := gl.GetAttribLocation(p.prog.ID(), gl.Str(nullTerminated(name)))
	if loc < 0 {
		return 0, fmt.Errorf("attribute %q not active in program", name)
	}
	return uint32(loc), nil
}

// Apply binds the material's program and sets the GL state of its draw parameters.
func (m *Material) Apply() error {
	if m.Program == nil || m.Program.ID() == 0 {
		return errors.New("material program not compiled")
	}
	m.Program.Bind()
	p := m.Params
	if p.AlphaBlend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
	switch p.Culling {
	case CullNone:
		gl.Disable(gl.CULL_FACE)
	case CullClockwise:
		gl.Enable(gl.CULL_FACE)
		gl.FrontFace(gl.CCW)
		gl.CullFace(gl.BACK)
	case CullCounterClockwise:
		gl.Enable(gl.CULL_FACE)
		gl.FrontFace(gl.CW)
		gl.CullFace(gl.BACK)
	default:
		return errors.New("invalid culling mode")
	}
	if p.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	return glgl.Err()
}
