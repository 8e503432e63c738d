package sculpt

import (
	"math"

	"github.com/FluffyLoaf254/swirlix/types"
)

// The nearest filled voxel reported by a distance query.
type SurfacePoint struct {
	// Whether any filled voxel was found.
	Hit bool

	// Clamped axis-aligned box distance from the query point to the voxel.
	// Zero when the point lies inside the voxel.
	Distance float32

	// Material of the voxel.
	Material MaterialRef

	// Voxel center and edge size.
	Center types.Vec3
	Size   float32
}

// Hard cap on traversal iterations. Bounds the walk even when a corrupt
// buffer encodes pointer cycles.
func stepBudget(maxDepth uint32) int {
	return int(8 * (maxDepth + 1) * 4)
}

// Clamped distance from a point to an axis-aligned cube with the given
// center and half extent, measured with the Chebyshev metric. It never
// exceeds the Euclidean distance, which makes it a safe sphere tracing step.
func boxDistance(p, center types.Vec3, half float32) float32 {
	d := p.Sub(center).Abs().MaxComponent() - half
	if d < 0 {
		return 0
	}
	return d
}

type traverseFrame struct {
	base    uint32
	word    uint32
	visited uint8
	center  types.Vec3
	size    float32
	depth   uint32
}

// Find the filled voxel nearest to p by box distance. The walk descends
// nearest child first and prunes octants that cannot beat the best leaf
// found so far. A non-negative eps stops the search as soon as a leaf
// within eps is found; pass a negative eps for the exact nearest voxel.
//
// Malformed buffer content never fails the query; unreachable or corrupt
// regions simply read as empty space.
func (s *Snapshot) NearestSurface(p types.Vec3, eps float32) SurfacePoint {
	best := SurfacePoint{Distance: math.MaxFloat32}

	stack := make([]traverseFrame, 0, s.maxDepth+1)
	if fr, ok := s.frameAt(RootOffset, types.XYZ(0.5, 0.5, 0.5), 1, 0); ok {
		stack = append(stack, fr)
	}

	for budget := stepBudget(s.maxDepth); len(stack) > 0 && budget > 0; budget-- {
		top := &stack[len(stack)-1]
		children := nodeChildren(top.word)
		half := top.size * 0.25

		// Nearest unvisited octant; ties keep the lowest octant index.
		oct := -1
		var octDist float32
		for o := 0; o < octantCount; o++ {
			bit := octantBit(o)
			if children&bit == 0 || top.visited&bit != 0 {
				continue
			}
			d := boxDistance(p, octantCenter(top.center, top.size, o), half)
			if oct < 0 || d < octDist {
				oct, octDist = o, d
			}
		}

		// Every remaining octant is at least as far as the nearest one, so
		// the whole frame is done when that one cannot improve on the best.
		if oct < 0 || octDist >= best.Distance {
			stack = stack[:len(stack)-1]
			continue
		}
		top.visited |= octantBit(oct)

		slot := top.base + childRank(children, oct)
		center := octantCenter(top.center, top.size, oct)

		if nodeLeaves(top.word)&octantBit(oct) != 0 {
			best = SurfacePoint{
				Hit:      true,
				Distance: octDist,
				Material: MaterialRef(s.word(slot)),
				Center:   center,
				Size:     top.size * 0.5,
			}
			if eps >= 0 && best.Distance <= eps {
				return best
			}
			continue
		}

		if top.depth+1 < s.maxDepth {
			if fr, ok := s.frameAt(slot, center, top.size*0.5, top.depth+1); ok {
				stack = append(stack, fr)
			}
		}
	}

	return best
}

// Build a traversal frame for an interior node, resolving its child block
// once. Nodes without resolvable children yield no frame.
func (s *Snapshot) frameAt(off uint32, center types.Vec3, size float32, depth uint32) (traverseFrame, bool) {
	word := s.word(off)
	base, ok := s.childBase(off, word)
	if !ok {
		return traverseFrame{}, false
	}
	return traverseFrame{
		base:   base,
		word:   word,
		center: center,
		size:   size,
		depth:  depth,
	}, true
}
