package brush

import (
	"github.com/FluffyLoaf254/swirlix/types"
)

// A Tip defines the volume a brush stroke sweeps, positioned at a center
// point with a size (radius for round tips, half extent for cube tips).
// Strokes probe octree cells with the two predicates below: Overlaps gates
// descent into a cell and Contains stops it early.
type Tip interface {
	Name() string

	// Check whether the tip volume overlaps an axis-aligned cube.
	Overlaps(tipCenter types.Vec3, tipSize float32, cubeCenter types.Vec3, cubeSize float32) bool

	// Check whether the tip volume fully contains an axis-aligned cube.
	Contains(tipCenter types.Vec3, tipSize float32, cubeCenter types.Vec3, cubeSize float32) bool
}

// A spherical tip.
type RoundTip struct{}

func (RoundTip) Name() string {
	return "round"
}

// Sphere versus cube overlap via the squared distance from the sphere
// center to the nearest cube point.
func (RoundTip) Overlaps(tipCenter types.Vec3, tipSize float32, cubeCenter types.Vec3, cubeSize float32) bool {
	half := cubeSize * 0.5
	distSq := float32(0)
	for axis := 0; axis < 3; axis++ {
		d := abs32(tipCenter[axis]-cubeCenter[axis]) - half
		if d > 0 {
			distSq += d * d
		}
	}
	return distSq < tipSize*tipSize
}

// The cube is contained when its farthest corner from the sphere center
// still lies inside the sphere.
func (RoundTip) Contains(tipCenter types.Vec3, tipSize float32, cubeCenter types.Vec3, cubeSize float32) bool {
	half := cubeSize * 0.5
	distSq := float32(0)
	for axis := 0; axis < 3; axis++ {
		d := abs32(tipCenter[axis]-cubeCenter[axis]) + half
		distSq += d * d
	}
	return distSq <= tipSize*tipSize
}

// An axis-aligned cube tip with the given half extent.
type CubeTip struct{}

func (CubeTip) Name() string {
	return "cube"
}

func (CubeTip) Overlaps(tipCenter types.Vec3, tipSize float32, cubeCenter types.Vec3, cubeSize float32) bool {
	half := cubeSize * 0.5
	for axis := 0; axis < 3; axis++ {
		if abs32(tipCenter[axis]-cubeCenter[axis]) >= tipSize+half {
			return false
		}
	}
	return true
}

func (CubeTip) Contains(tipCenter types.Vec3, tipSize float32, cubeCenter types.Vec3, cubeSize float32) bool {
	half := cubeSize * 0.5
	for axis := 0; axis < 3; axis++ {
		if abs32(tipCenter[axis]-cubeCenter[axis])+half > tipSize {
			return false
		}
	}
	return true
}

// Look up a tip by its name.
func TipByName(name string) (Tip, bool) {
	switch name {
	case RoundTip{}.Name():
		return RoundTip{}, true
	case CubeTip{}.Name():
		return CubeTip{}, true
	}
	return nil, false
}

func abs32(s float32) float32 {
	if s < 0 {
		return -s
	}
	return s
}
