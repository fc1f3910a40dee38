//go:build !tinygo && cgo

package glcomposeaux

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glcompose/glcompile"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

// Preview opens a window showing a spinning cube drawn with a material of
// the catalog. Dragging with the left mouse button orbits the camera, the
// scroll wheel zooms and space switches to the next material.
// Preview must be called from the main thread.
func Preview(cfg PreviewConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("preview requires positive width and height")
	}
	window, term, err := startGLFW(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer term()
	cat, err := glcompile.NewCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	names := cat.Names()
	if len(names) == 0 {
		return errors.New("no materials to preview")
	}
	current := 0
	if cfg.Material != "" {
		current = -1
		for i, name := range names {
			if name == cfg.Material {
				current = i
			}
		}
		if current < 0 {
			return fmt.Errorf("material %q not in catalog", cfg.Material)
		}
	}
	load := func(i int) (*renderer, error) {
		mat, _ := glcompile.NewMaterial(cat, names[i])
		mat.Params.DepthTest = true
		window.SetTitle("glcompose: " + names[i])
		return newRenderer(mat)
	}
	r, err := load(current)
	if err != nil {
		return err
	}
	defer func() { r.delete() }()

	var (
		cam            = orbit{yaw: 0.6, pitch: 0.4, dist: 3}
		lastX, lastY   float64
		firstMouseMove = true
		isMousePressed = false
		sensitivity    = float32(0.005)
		switchMaterial = false
	)
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !isMousePressed {
			return
		}
		if firstMouseMove {
			lastX, lastY = xpos, ypos
			firstMouseMove = false
		}
		cam.rotate(float32(xpos-lastX)*sensitivity, float32(lastY-ypos)*sensitivity)
		lastX, lastY = xpos, ypos
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		cam.zoom(float32(yoff), 1, 20)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		if action == glfw.Press {
			isMousePressed = true
			firstMouseMove = true
		} else if action == glfw.Release {
			isMousePressed = false
		}
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeySpace && action == glfw.Press {
			switchMaterial = true
		} else if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	ctx := cfg.Context
	start := glfw.GetTime()
	for !window.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		if switchMaterial {
			switchMaterial = false
			r.delete()
			current = (current + 1) % len(names)
			r, err = load(current)
			if err != nil {
				return err
			}
		}
		width, height := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.ClearColor(0.1, 0.1, 0.12, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		spin := float32(glfw.GetTime()-start) * 0.5
		err = r.draw(cam.uniforms(float32(width)/float32(max(height, 1)), spin))
		if err != nil {
			return err
		}
		window.SwapBuffers()
		glfw.PollEvents()
		time.Sleep(time.Second / 120)
	}
	return nil
}

// renderer draws the cube mesh with a material.
type renderer struct {
	mat      *glcompile.Material
	vao, vbo uint32
	// uniform locations in frameUniforms order, -1 when not declared.
	locs [6]int32
}

var frameUniformNames = [6]string{
	"matrix_to_world",
	"matrix_to_local",
	"matrix_to_view",
	"matrix_to_projection",
	"camera_position_world",
	"camera_position_local",
}

func newRenderer(mat *glcompile.Material) (*renderer, error) {
	r := &renderer{mat: mat}
	prog := mat.Program
	prog.Bind()
	defer prog.Unbind()
	for i, name := range frameUniformNames {
		loc, err := prog.UniformLocation(name)
		if err != nil {
			loc = -1 // Material does not use this uniform.
		}
		r.locs[i] = loc
	}
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(cubeVertices), gl.Ptr(cubeVertices), gl.STATIC_DRAW)
	for _, attr := range [...]struct {
		name   string
		offset int
	}{{"position", 0}, {"normal", 12}} {
		loc, err := prog.AttribLocation(attr.name)
		if err != nil {
			continue
		}
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, 3, gl.FLOAT, false, cubeStride, gl.PtrOffset(attr.offset))
	}
	gl.BindVertexArray(0)
	if err := glgl.Err(); err != nil {
		r.delete()
		return nil, fmt.Errorf("creating cube mesh: %w", err)
	}
	return r, nil
}

func (r *renderer) draw(u frameUniforms) error {
	err := r.mat.Apply()
	if err != nil {
		return err
	}
	for i, m := range [4]ms3.Mat4{u.toWorld, u.toLocal, u.toView, u.toProjection} {
		if r.locs[i] >= 0 {
			arr := m.Array()
			gl.UniformMatrix4fv(r.locs[i], 1, true, &arr[0])
		}
	}
	if r.locs[4] >= 0 {
		gl.Uniform3f(r.locs[4], u.camWorld.X, u.camWorld.Y, u.camWorld.Z)
	}
	if r.locs[5] >= 0 {
		gl.Uniform3f(r.locs[5], u.camLocal.X, u.camLocal.Y, u.camLocal.Z)
	}
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, cubeVertexNo)
	gl.BindVertexArray(0)
	return glgl.Err()
}

func (r *renderer) delete() {
	if r == nil {
		return
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	r.vao, r.vbo = 0, 0
}

func startGLFW(width, height int) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err = glfw.CreateWindow(width, height, "glcompose", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("creating GLFW window: %w", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	return window, glfw.Terminate, nil
}
