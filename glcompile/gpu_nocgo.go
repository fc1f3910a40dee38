//go:build tinygo || !cgo

package glcompile

import "errors"

var errNoCGO = errors.New("GPU program compilation requires CGo and is not supported on TinyGo")

func Init1x1GLFW() (terminate func(), err error) {
	return nil, errNoCGO
}

type Compiler struct{}

func (Compiler) CompileProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	return nil, errNoCGO
}

type Program struct{}

func (p *Program) ID() uint32 { return 0 }
func (p *Program) Bind() {}
func (p *Program) Unbind() {}
func (p *Program) Delete() {}

func (p *Program) UniformLocation(name string) (int32, error) {
	return -1, errNoCGO
}

func (p *Program) AttribLocation(name string) (uint32, error) {
	return 0, errNoCGO
}

func (m *Material) Apply() error {
	return errNoCGO
}
