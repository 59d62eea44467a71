// Package camera keeps a perspective camera whose field of view tracks the
// viewport height, so one world unit maps to one pixel on the z=0 plane.
package camera

import (
	"math"

	"scrollgl/internal/viewport"
)

const (
	DefaultNear = 200.0
	DefaultFar  = 2000.0
)

// Rig is the shared perspective camera. Fov is in degrees.
type Rig struct {
	Fov    float64
	Aspect float64
	Near   float64
	Far    float64

	// PositionZ equals the viewport distance; the camera looks down -z.
	PositionZ float64

	projection [16]float64
	state      *viewport.State
}

// FieldOfView returns the vertical fov in degrees that makes a plane at
// distance show exactly height units.
func FieldOfView(height, distance float64) float64 {
	return 2 * math.Atan(height/2/distance) * (180 / math.Pi)
}

func New(state *viewport.State) *Rig {
	r := &Rig{
		Fov:       70,
		Aspect:    state.Aspect(),
		Near:      DefaultNear,
		Far:       DefaultFar,
		PositionZ: state.DistanceFromCamera,
		state:     state,
	}
	r.SyncDimensions()
	r.UpdateProjectionMatrix()
	return r
}

// SyncDimensions recomputes Fov from the current screen height and distance.
// UpdateProjectionMatrix must run before the next render.
func (r *Rig) SyncDimensions() {
	r.PositionZ = r.state.DistanceFromCamera
	r.Fov = FieldOfView(r.state.ScreenHeight, r.state.DistanceFromCamera)
}

// OnResize applies the viewport to fov, aspect and the projection matrix.
func (r *Rig) OnResize() {
	fov := FieldOfView(r.state.ScreenHeight, r.state.DistanceFromCamera)
	aspect := r.state.Aspect()
	projection := perspective(fov, aspect, r.Near, r.Far)

	r.PositionZ = r.state.DistanceFromCamera
	r.Fov, r.Aspect, r.projection = fov, aspect, projection
}

// UpdateProjectionMatrix rebuilds the projection from Fov, Aspect, Near and Far.
func (r *Rig) UpdateProjectionMatrix() {
	r.projection = perspective(r.Fov, r.Aspect, r.Near, r.Far)
}

// ProjectionMatrix returns the column-major projection matrix.
func (r *Rig) ProjectionMatrix() [16]float64 {
	return r.projection
}

// Project maps a world-space point to normalised device coordinates.
func (r *Rig) Project(x, y, z float64) (ndcX, ndcY, ndcZ float64) {
	// view space: camera at (0, 0, PositionZ) looking at the origin
	vz := z - r.PositionZ
	m := r.projection

	cx := m[0]*x + m[4]*y + m[8]*vz + m[12]
	cy := m[1]*x + m[5]*y + m[9]*vz + m[13]
	cz := m[2]*x + m[6]*y + m[10]*vz + m[14]
	cw := m[3]*x + m[7]*y + m[11]*vz + m[15]

	if cw == 0 {
		return 0, 0, 0
	}
	return cx / cw, cy / cw, cz / cw
}

// ToScreen projects a world point to window pixels, y pointing down.
func (r *Rig) ToScreen(x, y, z float64) (sx, sy float64) {
	nx, ny, _ := r.Project(x, y, z)
	sx = (nx + 1) / 2 * r.state.ScreenWidth
	sy = (1 - ny) / 2 * r.state.ScreenHeight
	return sx, sy
}

// PixelScale is the number of window pixels one world unit covers at depth z.
func (r *Rig) PixelScale(z float64) float64 {
	x0, _ := r.ToScreen(0, 0, z)
	x1, _ := r.ToScreen(1, 0, z)
	return x1 - x0
}

func perspective(fovDeg, aspect, near, far float64) [16]float64 {
	top := near * math.Tan(fovDeg*math.Pi/360)
	right := top * aspect

	var m [16]float64
	m[0] = near / right
	m[5] = near / top
	m[10] = -(far + near) / (far - near)
	m[11] = -1
	m[14] = -2 * far * near / (far - near)
	return m
}
