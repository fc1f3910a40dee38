package glcomposeaux

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

func lookAt(eye, target, up ms3.Vec) ms3.Mat4 {
	f := ms3.Unit(ms3.Sub(target, eye))
	s := ms3.Unit(ms3.Cross(f, up))
	u := ms3.Cross(s, f)
	return ms3.NewMat4([]float32{
		s.X, s.Y, s.Z, -ms3.Dot(s, eye),
		u.X, u.Y, u.Z, -ms3.Dot(u, eye),
		-f.X, -f.Y, -f.Z, ms3.Dot(f, eye),
		0, 0, 0, 1,
	})
}

// perspective returns a right handed projection mapping [-near,-far] depth to [-1,1].
func perspective(fovy, aspect, near, far float32) ms3.Mat4 {
	f := 1 / math32.Tan(fovy/2)
	return ms3.NewMat4([]float32{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / (near - far), 2 * far * near / (near - far),
		0, 0, -1, 0,
	})
}

// orbit is a camera looking at the origin from dist away.
type orbit struct {
	yaw, pitch, dist float32
}

const maxPitch = math32.Pi/2 - 0.01

func (o *orbit) rotate(dyaw, dpitch float32) {
	o.yaw += dyaw
	o.pitch = math32.Max(-maxPitch, math32.Min(maxPitch, o.pitch+dpitch))
}

func (o *orbit) zoom(steps, minDist, maxDist float32) {
	o.dist -= steps * (o.dist*.1 + .01)
	o.dist = math32.Max(minDist, math32.Min(maxDist, o.dist))
}

func (o orbit) eye() ms3.Vec {
	cp := math32.Cos(o.pitch)
	return ms3.Vec{
		X: o.dist * cp * math32.Sin(o.yaw),
		Y: o.dist * math32.Sin(o.pitch),
		Z: o.dist * cp * math32.Cos(o.yaw),
	}
}

// frameUniforms are the per-draw uniforms materials can declare.
// Matrices are uploaded to GL transposed since [ms3.Mat4.Array] is row major.
type frameUniforms struct {
	toWorld      ms3.Mat4
	toLocal      ms3.Mat4
	toView       ms3.Mat4
	toProjection ms3.Mat4
	camWorld     ms3.Vec
	camLocal     ms3.Vec
}

// uniforms computes the frame uniforms of a model spun by spin radians about Y.
func (o orbit) uniforms(aspect, spin float32) frameUniforms {
	up := ms3.Vec{Y: 1}
	world := ms3.RotationMat4(spin, up)
	local := ms3.RotationMat4(-spin, up)
	eye := o.eye()
	view := ms3.MulMat4(lookAt(eye, ms3.Vec{}, up), world)
	proj := perspective(math32.Pi/3, aspect, 0.05, 100)
	return frameUniforms{
		toWorld:      world,
		toLocal:      local,
		toView:       view,
		toProjection: ms3.MulMat4(proj, view),
		camWorld:     eye,
		camLocal:     local.MulPosition(eye),
	}
}

// cubeVertices is a unit cube centered at the origin as 36 counter-clockwise
// wound vertices of interleaved position and normal.
var cubeVertices = func() []float32 {
	type face struct{ n, u, v ms3.Vec }
	faces := [6]face{
		{n: ms3.Vec{X: 1}, u: ms3.Vec{Z: -1}, v: ms3.Vec{Y: 1}},
		{n: ms3.Vec{X: -1}, u: ms3.Vec{Z: 1}, v: ms3.Vec{Y: 1}},
		{n: ms3.Vec{Y: 1}, u: ms3.Vec{X: 1}, v: ms3.Vec{Z: -1}},
		{n: ms3.Vec{Y: -1}, u: ms3.Vec{X: 1}, v: ms3.Vec{Z: 1}},
		{n: ms3.Vec{Z: 1}, u: ms3.Vec{X: 1}, v: ms3.Vec{Y: 1}},
		{n: ms3.Vec{Z: -1}, u: ms3.Vec{X: -1}, v: ms3.Vec{Y: 1}},
	}
	corners := [6][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, -1}, {1, 1}, {-1, 1}}
	data := make([]float32, 0, 36*6)
	for _, f := range faces {
		center := ms3.Scale(0.5, f.n)
		for _, c := range corners {
			p := ms3.Add(center, ms3.Add(ms3.Scale(c[0]/2, f.u), ms3.Scale(c[1]/2, f.v)))
			data = append(data, p.X, p.Y, p.Z, f.n.X, f.n.Y, f.n.Z)
		}
	}
	return data
}()

const (
	cubeStride   = 6 * 4 // bytes per vertex.
	cubeVertexNo = 36
)
