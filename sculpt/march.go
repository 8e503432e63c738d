package sculpt

import (
	"github.com/FluffyLoaf254/swirlix/types"
)

// Rays are abandoned after traveling this far through the unit volume.
const marchMaxDistance = 4.0

// Result of marching a single ray through a sculpt.
type Hit struct {
	// Whether the ray reached a surface.
	Hit bool

	// Point where the ray stopped.
	Position types.Vec3

	// Distance traveled from the ray origin.
	Distance float32

	// Material of the voxel that was hit.
	Material    Material
	MaterialRef MaterialRef

	// Estimated surface normal at the hit point.
	Normal types.Vec3

	// Number of sphere tracing steps taken.
	Steps int
}

// March a ray through the sculpt with sphere tracing: each step advances by
// the distance to the nearest filled voxel, which can never overshoot a
// surface. Steps are floored at one voxel so grazing rays keep moving, and
// the ray terminates once it comes within two voxels of a surface.
func (s *Snapshot) March(origin, dir types.Vec3) Hit {
	dir = dir.Normalize()

	minStep := 1 / float32(s.resolution)
	hitEps := 2 / float32(s.resolution)
	maxSteps := s.marchStepLimit()

	p := origin
	traveled := float32(0)

	for step := 1; step <= maxSteps && traveled <= marchMaxDistance; step++ {
		sp := s.NearestSurface(p, hitEps)
		if !sp.Hit {
			return Hit{Position: p, Distance: traveled, Steps: step}
		}

		if sp.Distance <= hitEps {
			return Hit{
				Hit:         true,
				Position:    p,
				Distance:    traveled,
				Material:    s.palette.Get(sp.Material),
				MaterialRef: sp.Material,
				Normal:      s.Normal(p, sp.Size, dir),
				Steps:       step,
			}
		}

		adv := sp.Distance
		if adv < minStep {
			adv = minStep
		}
		p = p.Add(dir.Mul(adv))
		traveled += adv
	}

	return Hit{Position: p, Distance: traveled, Steps: maxSteps}
}

func (s *Snapshot) marchStepLimit() int {
	limit := int(4 * s.resolution)
	if limit < 64 {
		limit = 64
	}
	if limit > 4096 {
		limit = 4096
	}
	return limit
}
