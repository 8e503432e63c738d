// Package brush turns tip volumes into batches of voxel edits. A stroke
// walks the octree from the root, descends into cells the tip overlaps and
// stamps whole cells once the tip contains them, so a stroke touches a
// number of voxels proportional to the tip surface instead of its volume.
package brush

import (
	"errors"

	"github.com/FluffyLoaf254/swirlix/sculpt"
	"github.com/FluffyLoaf254/swirlix/types"
)

var ErrInvalidSize = errors.New("brush: tip size must be positive")

// A Brush binds a tip shape to a material.
type Brush struct {
	Tip      Tip
	Size     float32
	Material sculpt.MaterialRef
}

// Stamp the brush at a point, filling every voxel the tip volume covers.
func (b Brush) Add(bld *sculpt.Builder, at types.Vec3) error {
	return b.apply(bld, at, true)
}

// Stamp the brush at a point, clearing every voxel the tip volume covers.
func (b Brush) Remove(bld *sculpt.Builder, at types.Vec3) error {
	return b.apply(bld, at, false)
}

func (b Brush) apply(bld *sculpt.Builder, at types.Vec3, add bool) error {
	if b.Size <= 0 {
		return ErrInvalidSize
	}
	return b.carve(bld, at, add, types.XYZ(0.5, 0.5, 0.5), 1, 0)
}

func (b Brush) carve(bld *sculpt.Builder, at types.Vec3, add bool, center types.Vec3, size float32, depth uint32) error {
	childSize := size * 0.5
	childDepth := depth + 1

	for oct := 0; oct < 8; oct++ {
		childCenter := octantCenter(center, size, oct)
		if !b.Tip.Overlaps(at, b.Size, childCenter, childSize) {
			continue
		}

		if childDepth == bld.MaxDepth() || b.Tip.Contains(at, b.Size, childCenter, childSize) {
			var err error
			if add {
				err = bld.SetVoxel(childCenter, childDepth, b.Material)
			} else {
				err = bld.ClearVoxel(childCenter, childDepth)
			}
			if err != nil {
				return err
			}
			continue
		}

		if err := b.carve(bld, at, add, childCenter, childSize, childDepth); err != nil {
			return err
		}
	}
	return nil
}

func octantCenter(center types.Vec3, size float32, oct int) types.Vec3 {
	quarter := size * 0.25
	out := center
	if oct&1 != 0 {
		out[0] += quarter
	} else {
		out[0] -= quarter
	}
	if oct&2 != 0 {
		out[1] += quarter
	} else {
		out[1] -= quarter
	}
	if oct&4 != 0 {
		out[2] += quarter
	} else {
		out[2] -= quarter
	}
	return out
}
