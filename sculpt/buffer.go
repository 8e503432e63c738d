package sculpt

import (
	"math/bits"

	"github.com/FluffyLoaf254/swirlix/types"
)

// The voxel buffer is a flat []uint32 arena. The first two words form a
// header (magic marker and total word count) and the root node word always
// lives right after it. Each interior node is a single word:
//
//	bit  31     far pointer flag
//	bits 16-30  15-bit child block pointer
//	bits  8-15  child occupancy mask
//	bits  0-7   leaf mask (subset of the child mask)
//
// Occupied children of a node are packed into one contiguous block of
// popcount(childMask) words in ascending octant order. The pointer is the
// forward offset from the node word to that block; when the block lives too
// far ahead the far flag is set and the pointer indexes a trailer of
// absolute offsets that grows downward from the end of the buffer.
const (
	// "SWLX" marker identifying a voxel buffer.
	bufferMagic uint32 = 0x53574c58

	headerWords = 2

	// Offset of the root node word. The root is never relocated.
	RootOffset uint32 = headerWords

	farFlag      uint32 = 1 << 31
	pointerShift        = 16
	pointerMask  uint32 = 0x7fff
	childShift          = 8
	octantCount         = 8

	// Largest forward offset a node can encode without a far pointer.
	maxLocalOffset = pointerMask

	// Largest supported sculpt resolution; keeps tree depth at or below 16.
	MaxResolution uint32 = 1 << 16
)

// Octant indices follow the left/right (x), front/back (y), bottom/top (z)
// split: bit 0 selects the high x half, bit 1 the high y half and bit 2 the
// high z half. LFB is octant 0 and RBT is octant 7.
func octantIndex(p, center types.Vec3) int {
	oct := 0
	if p[0] >= center[0] {
		oct |= 1
	}
	if p[1] >= center[1] {
		oct |= 2
	}
	if p[2] >= center[2] {
		oct |= 4
	}
	return oct
}

// Get the center of an octant of a node with the given center and edge size.
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

func packNode(far bool, pointer uint32, children, leaves uint8) uint32 {
	word := pointer<<pointerShift | uint32(children)<<childShift | uint32(leaves)
	if far {
		word |= farFlag
	}
	return word
}

func nodeFar(word uint32) bool {
	return word&farFlag != 0
}

func nodePointer(word uint32) uint32 {
	return word >> pointerShift & pointerMask
}

func nodeChildren(word uint32) uint8 {
	return uint8(word >> childShift)
}

func nodeLeaves(word uint32) uint8 {
	return uint8(word)
}

func octantBit(oct int) uint8 {
	return 1 << uint(oct)
}

// Get the slot index of an octant inside a packed child block. Only valid
// when the octant bit is set in the mask.
func childRank(children uint8, oct int) uint32 {
	return uint32(bits.OnesCount8(children & (octantBit(oct) - 1)))
}

func childBlockLen(children uint8) uint32 {
	return uint32(bits.OnesCount8(children))
}

// A Snapshot is an immutable view of an encoded sculpt: the packed voxel
// buffer plus the material palette it references. Snapshots are safe for
// concurrent readers and remain valid while the builder that produced them
// keeps mutating its own arena.
type Snapshot struct {
	words      []uint32
	palette    *Palette
	resolution uint32
	maxDepth   uint32
}

// Get the sculpt resolution (voxels per axis at the finest depth).
func (s *Snapshot) Resolution() uint32 {
	return s.resolution
}

// Get the maximum tree depth, with leaves of edge size 1/resolution.
func (s *Snapshot) MaxDepth() uint32 {
	return s.maxDepth
}

// Get the total size of the encoded buffer in words.
func (s *Snapshot) WordCount() int {
	return len(s.words)
}

// Get the material palette referenced by the buffer leaves.
func (s *Snapshot) Palette() *Palette {
	return s.palette
}

// Read a buffer word, treating out of range offsets as empty nodes. Corrupt
// pointers must degrade to empty space instead of failing a query.
func (s *Snapshot) word(off uint32) uint32 {
	if off < headerWords || off >= uint32(len(s.words)) {
		return 0
	}
	return s.words[off]
}

// Resolve the absolute offset of a node's child block. Reports false when
// the word encodes no children or the pointer escapes the buffer.
func (s *Snapshot) childBase(nodeOff, word uint32) (uint32, bool) {
	children := nodeChildren(word)
	if children == 0 {
		return 0, false
	}

	var base uint32
	if nodeFar(word) {
		farOff := uint32(len(s.words)) - 1 - nodePointer(word)
		if farOff < headerWords || farOff >= uint32(len(s.words)) {
			return 0, false
		}
		base = s.words[farOff]
	} else {
		base = nodeOff + nodePointer(word)
	}

	if base < headerWords || base+childBlockLen(children) > uint32(len(s.words)) {
		return 0, false
	}
	return base, true
}

// Aggregate counters describing an encoded sculpt.
type BufferStats struct {
	// Total buffer size in words.
	TotalWords int

	// Interior nodes reachable from the root.
	NodeCount int

	// Filled leaves reachable from the root.
	LeafCount int

	// Nodes that required a far pointer.
	FarPointerCount int

	// Distinct materials in the palette.
	MaterialCount int

	// Deepest level reached by any filled leaf.
	MaxFilledDepth uint32
}

// Walk the reachable tree and gather stats. The walk is capped at two
// visits per buffer word so a corrupt buffer cannot wedge it.
func (s *Snapshot) Stats() BufferStats {
	stats := BufferStats{
		TotalWords:    len(s.words),
		MaterialCount: s.palette.Count(),
	}

	type visit struct {
		off   uint32
		depth uint32
	}

	budget := 2 * len(s.words)
	pending := []visit{{off: RootOffset, depth: 0}}
	for len(pending) > 0 && budget > 0 {
		budget--

		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		word := s.word(cur.off)
		children := nodeChildren(word)
		if children == 0 {
			continue
		}
		stats.NodeCount++
		if nodeFar(word) {
			stats.FarPointerCount++
		}

		base, ok := s.childBase(cur.off, word)
		if !ok {
			continue
		}

		leaves := nodeLeaves(word)
		for oct := 0; oct < octantCount; oct++ {
			if children&octantBit(oct) == 0 {
				continue
			}
			slot := base + childRank(children, oct)
			if leaves&octantBit(oct) != 0 {
				stats.LeafCount++
				if cur.depth+1 > stats.MaxFilledDepth {
					stats.MaxFilledDepth = cur.depth + 1
				}
				continue
			}
			if cur.depth+1 < s.maxDepth {
				pending = append(pending, visit{off: slot, depth: cur.depth + 1})
			}
		}
	}

	return stats
}

func log2u32(v uint32) uint32 {
	return uint32(bits.Len32(v)) - 1
}

func isPow2(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}
