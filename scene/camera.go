package scene

import (
	"fmt"
	"math"

	"github.com/FluffyLoaf254/swirlix/types"
)

// Stores the ray directions at the four corners of the camera frustum. It is
// used as a shortcut for generating per pixel rays via interpolation of the
// corner rays.
type Frustum [4]types.Vec3

func (fr Frustum) String() string {
	return fmt.Sprintf(
		"Frustum Rays:\nTL : (%3.3f, %3.3f, %3.3f)\nTR : (%3.3f, %3.3f, %3.3f)\nBL : (%3.3f, %3.3f, %3.3f)\nBR : (%3.3f, %3.3f, %3.3f)",
		fr[0][0], fr[0][1], fr[0][2],
		fr[1][0], fr[1][1], fr[1][2],
		fr[2][0], fr[2][1], fr[2][2],
		fr[3][0], fr[3][1], fr[3][2],
	)
}

// The camera type controls the viewpoint a sculpt is rendered from.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3

	// Vertical FOV in degrees.
	FOV float32

	Frustum Frustum
}

// Create a camera looking at the center of the sculpting volume from just
// outside its front face.
func NewCamera(fov float32) *Camera {
	return &Camera{
		Position: types.Vec3{0.5, 0.5, -1.5},
		LookAt:   types.Vec3{0.5, 0.5, 0.5},
		Up:       types.Vec3{0, 1, 0},
		FOV:      fov,
	}
}

// Recalculate the frustum corner rays from the camera basis and the frame
// aspect ratio. Must be called before rays are generated and after any
// change to the camera fields.
func (c *Camera) Update(aspect float32) {
	fwd := c.LookAt.Sub(c.Position).Normalize()
	right := fwd.Cross(c.Up).Normalize()
	up := right.Cross(fwd)

	halfH := float32(math.Tan(float64(c.FOV) * math.Pi / 360))
	halfW := halfH * aspect

	c.Frustum[0] = fwd.Sub(right.Mul(halfW)).Add(up.Mul(halfH))
	c.Frustum[1] = fwd.Add(right.Mul(halfW)).Add(up.Mul(halfH))
	c.Frustum[2] = fwd.Sub(right.Mul(halfW)).Sub(up.Mul(halfH))
	c.Frustum[3] = fwd.Add(right.Mul(halfW)).Sub(up.Mul(halfH))
}

// Generate the ray direction for normalized frame coordinates, with (0, 0)
// the top left corner and (1, 1) the bottom right one, by interpolating the
// frustum corner rays.
func (c *Camera) RayDir(u, v float32) types.Vec3 {
	top := c.Frustum[0].Add(c.Frustum[1].Sub(c.Frustum[0]).Mul(u))
	bottom := c.Frustum[2].Add(c.Frustum[3].Sub(c.Frustum[2]).Mul(u))
	return top.Add(bottom.Sub(top).Mul(v)).Normalize()
}

// Orbit the camera position around its look target. Yaw rotates around the
// up axis and pitch around the camera right axis, both in radians.
func (c *Camera) Orbit(yaw, pitch float32) {
	offset := c.Position.Sub(c.LookAt)

	yawQuat := types.QuatFromAxisAngle(c.Up.Normalize(), yaw)
	pitchAxis := c.Up.Cross(offset).Normalize()
	pitchQuat := types.QuatFromAxisAngle(pitchAxis, pitch)

	orientQuat := pitchQuat.Mul(yawQuat).Normalize()
	c.Position = c.LookAt.Add(orientQuat.Rotate(offset))
}
