package sculpt

import (
	"github.com/FluffyLoaf254/swirlix/types"
)

// Estimate the surface normal at a hit point from central differences of
// the voxel distance field. voxelSize is the edge size of the voxel that
// was hit and sets the sampling radius; rayDir is the direction of the ray
// that produced the hit and backs the degenerate case.
func (s *Snapshot) Normal(p types.Vec3, voxelSize float32, rayDir types.Vec3) types.Vec3 {
	eps := voxelSize * 0.5

	grad := types.XYZ(
		s.distanceAt(p.Add(types.XYZ(eps, 0, 0)))-s.distanceAt(p.Sub(types.XYZ(eps, 0, 0))),
		s.distanceAt(p.Add(types.XYZ(0, eps, 0)))-s.distanceAt(p.Sub(types.XYZ(0, eps, 0))),
		s.distanceAt(p.Add(types.XYZ(0, 0, eps)))-s.distanceAt(p.Sub(types.XYZ(0, 0, eps))),
	)

	// A flat gradient carries no direction; face the ray instead.
	if grad.Len() < 1e-12 {
		return rayDir.Mul(-1)
	}
	return grad.Normalize()
}

// Sample the distance field at q. Samples that find no surface clamp to a
// large constant so the gradient still points away from nearby matter.
func (s *Snapshot) distanceAt(q types.Vec3) float32 {
	sp := s.NearestSurface(q, -1)
	if !sp.Hit {
		return 1
	}
	return sp.Distance
}
