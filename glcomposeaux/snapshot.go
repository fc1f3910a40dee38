//go:build !tinygo && cgo

package glcomposeaux

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/soypat/glcompose"
	"github.com/soypat/glcompose/glcompile"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

// Snapshot renders the cube with the named material of cat to an offscreen
// framebuffer and returns the image. The GL context the catalog was compiled
// in must be current.
func Snapshot(cat *glcompose.Catalog[*glcompile.Program], name string, cfg SnapshotConfig) (*image.RGBA, error) {
	err := cfg.validate()
	if err != nil {
		return nil, err
	}
	mat, ok := glcompile.NewMaterial(cat, name)
	if !ok {
		return nil, fmt.Errorf("material %q not in catalog", name)
	}
	mat.Params.DepthTest = true
	w, h := int32(cfg.Width), int32(cfg.Height)

	var fbo uint32
	var rbos [2]uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	defer func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.DeleteRenderbuffers(2, &rbos[0])
		gl.DeleteFramebuffers(1, &fbo)
	}()
	gl.GenRenderbuffers(2, &rbos[0])
	gl.BindRenderbuffer(gl.RENDERBUFFER, rbos[0])
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, w, h)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, rbos[0])
	gl.BindRenderbuffer(gl.RENDERBUFFER, rbos[1])
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, w, h)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, rbos[1])
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return nil, fmt.Errorf("incomplete snapshot framebuffer: status 0x%x", status)
	}

	r, err := newRenderer(mat)
	if err != nil {
		return nil, err
	}
	defer r.delete()
	gl.Viewport(0, 0, w, h)
	gl.ClearColor(rgbaf(cfg.Background))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	cam := orbit{yaw: cfg.Yaw, pitch: cfg.Pitch, dist: 3}
	cam.rotate(0, 0) // Clamp pitch.
	err = r.draw(cam.uniforms(float32(w)/float32(h), 0))
	mat.Program.Unbind()
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&img.Pix[0]))
	if err := glgl.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot pixels: %w", err)
	}
	flipRows(img)
	if cfg.Label {
		err = DrawLabel(img, name, cfg.LabelColor, cfg.LabelSize)
		if err != nil {
			return nil, err
		}
	}
	return img, nil
}
