// Package scene bundles an encoded sculpt with the viewing parameters
// needed to render it and handles persistence of the bundle.
package scene

import (
	"github.com/FluffyLoaf254/swirlix/sculpt"
	"github.com/FluffyLoaf254/swirlix/types"
)

type Scene struct {
	Camera *Camera

	// The encoded sculpt contents.
	Sculpt sculpt.Encoded

	// Color rays that miss the sculpt resolve to.
	BgColor types.Vec3
}

func NewScene(enc sculpt.Encoded) *Scene {
	return &Scene{
		Camera:  NewCamera(45),
		Sculpt:  enc,
		BgColor: types.Vec3{0.1, 0.1, 0.12},
	}
}

// Attach a camera to the scene.
func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}
