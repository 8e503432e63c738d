package sculpt

import (
	"github.com/FluffyLoaf254/swirlix/types"
)

// Default arena capacity in words.
const DefaultCapacity uint32 = 1 << 20

// Builder configuration options.
type Config struct {
	// Voxels per axis at the finest depth. Must be a power of two in
	// [2, MaxResolution].
	Resolution uint32

	// Arena capacity in words. Defaults to DefaultCapacity.
	Capacity uint32
}

// The Builder owns a mutable voxel arena and applies voxel edits to it.
// A single goroutine drives edits; renderers work off immutable snapshots
// instead of touching the arena.
//
// Child blocks are never resized in place. Growing or shrinking a node's
// block allocates a fresh block, migrates the surviving slots and returns
// the old block to a size-keyed free list. Every edit runs under a journal
// so a failed allocation rolls the arena back to its pre-edit state.
type Builder struct {
	words      []uint32
	arenaEnd   uint32
	farCount   uint32
	resolution uint32
	maxDepth   uint32
	palette    *Palette

	// Free child blocks keyed by block length (1 to 8 words).
	freeBlocks [octantCount + 1][]uint32
	freeFar    []uint32

	journal editJournal
}

// Create an empty sculpt builder.
func NewBuilder(cfg Config) (*Builder, error) {
	if !isPow2(cfg.Resolution) || cfg.Resolution < 2 || cfg.Resolution > MaxResolution {
		return nil, ErrInvalidResolution
	}
	if cfg.Capacity == 0 {
		cfg.Capacity = DefaultCapacity
	}
	// Room for the header, the root and at least one full path of blocks.
	if cfg.Capacity < headerWords+1+9*(log2u32(cfg.Resolution)+1) {
		return nil, ErrInvalidCapacity
	}

	b := &Builder{
		words:      make([]uint32, cfg.Capacity),
		arenaEnd:   RootOffset + 1,
		resolution: cfg.Resolution,
		maxDepth:   log2u32(cfg.Resolution),
		palette:    NewPalette(),
	}
	b.words[0] = bufferMagic
	return b, nil
}

// Get the sculpt resolution.
func (b *Builder) Resolution() uint32 {
	return b.resolution
}

// Get the maximum tree depth.
func (b *Builder) MaxDepth() uint32 {
	return b.maxDepth
}

// Register a material with the sculpt, returning a reference that voxel
// edits can use. Equal materials share a reference.
func (b *Builder) AddMaterial(m Material) MaterialRef {
	return b.palette.Add(m)
}

// Fill the voxel that contains p at the given depth with the material. The
// edit subdivides coarser leaves and empty octants along the path and
// replaces any finer subtree under the target voxel. Failed edits leave the
// sculpt untouched.
func (b *Builder) SetVoxel(p types.Vec3, depth uint32, ref MaterialRef) error {
	if depth < 1 || depth > b.maxDepth {
		return ErrInvalidDepth
	}
	if !inVolume(p) {
		return ErrOutOfBounds
	}
	if !b.palette.Contains(ref) {
		return ErrUnknownMaterial
	}

	b.begin()
	if err := b.setVoxel(p, depth, uint32(ref)); err != nil {
		b.rollback()
		return err
	}
	b.commit()
	return nil
}

// Empty the voxel that contains p at the given depth. Clearing already
// empty space is a no-op. Nodes left without children merge away upward;
// the root always survives. Failed edits leave the sculpt untouched.
func (b *Builder) ClearVoxel(p types.Vec3, depth uint32) error {
	if depth < 1 || depth > b.maxDepth {
		return ErrInvalidDepth
	}
	if !inVolume(p) {
		return ErrOutOfBounds
	}

	b.begin()
	if err := b.clearVoxel(p, depth); err != nil {
		b.rollback()
		return err
	}
	b.commit()
	return nil
}

func inVolume(p types.Vec3) bool {
	return p[0] >= 0 && p[0] < 1 &&
		p[1] >= 0 && p[1] < 1 &&
		p[2] >= 0 && p[2] < 1
}

func (b *Builder) setVoxel(p types.Vec3, depth uint32, ref uint32) error {
	nodeOff := RootOffset
	center := types.XYZ(0.5, 0.5, 0.5)
	size := float32(1)

	for d := uint32(0); ; d++ {
		oct := octantIndex(p, center)
		bit := octantBit(oct)
		word := b.words[nodeOff]
		children := nodeChildren(word)
		leaves := nodeLeaves(word)
		last := d+1 == depth

		if children&bit == 0 {
			slotVal := uint32(0)
			if last {
				slotVal = ref
			}
			slotOff, err := b.insertChild(nodeOff, oct, last, slotVal)
			if err != nil {
				return err
			}
			if last {
				return nil
			}
			nodeOff = slotOff
		} else {
			slotOff := b.childBaseOf(nodeOff) + childRank(children, oct)
			isLeaf := leaves&bit != 0

			if last {
				if !isLeaf {
					b.freeSubtree(slotOff, d+1)
				}
				b.setWord(slotOff, ref)
				return b.writeNode(nodeOff, b.childBaseOf(nodeOff), children, leaves|bit)
			}

			if isLeaf {
				// A coarser leaf blocks the path. It becomes an interior
				// node with no children; only the target voxel survives
				// the subdivision.
				b.setWord(slotOff, 0)
				if err := b.writeNode(nodeOff, b.childBaseOf(nodeOff), children, leaves&^bit); err != nil {
					return err
				}
			}
			nodeOff = slotOff
		}

		center = octantCenter(center, size, oct)
		size *= 0.5
	}
}

func (b *Builder) clearVoxel(p types.Vec3, depth uint32) error {
	type pathEntry struct {
		off uint32
		oct int
	}
	path := make([]pathEntry, 0, b.maxDepth+1)

	nodeOff := RootOffset
	center := types.XYZ(0.5, 0.5, 0.5)
	size := float32(1)

	for d := uint32(0); ; d++ {
		oct := octantIndex(p, center)
		bit := octantBit(oct)
		word := b.words[nodeOff]
		children := nodeChildren(word)
		leaves := nodeLeaves(word)

		if children&bit == 0 {
			// Nothing along the path; the voxel is already empty.
			return nil
		}

		slotOff := b.childBaseOf(nodeOff) + childRank(children, oct)
		isLeaf := leaves&bit != 0

		if d+1 == depth {
			if !isLeaf {
				b.freeSubtree(slotOff, d+1)
			}
			path = append(path, pathEntry{off: nodeOff, oct: oct})
			for i := len(path) - 1; i >= 0; i-- {
				ent := path[i]
				if err := b.removeChild(ent.off, ent.oct); err != nil {
					return err
				}
				if ent.off == RootOffset || nodeChildren(b.words[ent.off]) != 0 {
					break
				}
			}
			return nil
		}

		if isLeaf {
			// A coarser leaf covers the target. Split it into eight leaves
			// of the same material so the untouched octants keep their
			// matter, then keep descending.
			mat := b.words[slotOff]
			blockOff, err := b.allocBlock(octantCount)
			if err != nil {
				return err
			}
			for i := uint32(0); i < octantCount; i++ {
				b.setWord(blockOff+i, mat)
			}
			b.setWord(slotOff, 0)
			if err := b.writeNode(slotOff, blockOff, 0xff, 0xff); err != nil {
				return err
			}
			if err := b.writeNode(nodeOff, b.childBaseOf(nodeOff), children, leaves&^bit); err != nil {
				return err
			}
		}

		path = append(path, pathEntry{off: nodeOff, oct: oct})
		nodeOff = slotOff
		center = octantCenter(center, size, oct)
		size *= 0.5
	}
}

// Resolve the absolute child block offset of one of the builder's own nodes.
func (b *Builder) childBaseOf(nodeOff uint32) uint32 {
	word := b.words[nodeOff]
	if nodeFar(word) {
		return b.words[b.farWordOff(nodePointer(word))]
	}
	return nodeOff + nodePointer(word)
}

// Encode a node word pointing at the child block at base. Reuses or
// releases the node's existing far slot as the pointer range demands.
func (b *Builder) writeNode(nodeOff, base uint32, children, leaves uint8) error {
	old := b.words[nodeOff]
	oldFar := nodeChildren(old) != 0 && nodeFar(old)

	if children == 0 {
		if oldFar {
			b.releaseFar(nodePointer(old))
		}
		b.setWord(nodeOff, 0)
		return nil
	}

	if base > nodeOff && base-nodeOff <= maxLocalOffset {
		if oldFar {
			b.releaseFar(nodePointer(old))
		}
		b.setWord(nodeOff, packNode(false, base-nodeOff, children, leaves))
		return nil
	}

	var idx uint32
	if oldFar {
		idx = nodePointer(old)
	} else {
		var err error
		idx, err = b.allocFar()
		if err != nil {
			return err
		}
	}
	b.setWord(b.farWordOff(idx), base)
	b.setWord(nodeOff, packNode(true, idx, children, leaves))
	return nil
}

// Add a child slot to a node, relocating its child block. The new slot is
// written with slotVal, which must not carry slot-relative state.
func (b *Builder) insertChild(nodeOff uint32, oct int, leaf bool, slotVal uint32) (uint32, error) {
	word := b.words[nodeOff]
	children := nodeChildren(word)
	leaves := nodeLeaves(word)
	bit := octantBit(oct)

	newChildren := children | bit
	newBase, err := b.allocBlock(childBlockLen(newChildren))
	if err != nil {
		return 0, err
	}

	if children != 0 {
		oldBase := b.childBaseOf(nodeOff)
		for o := 0; o < octantCount; o++ {
			if children&octantBit(o) == 0 {
				continue
			}
			from := oldBase + childRank(children, o)
			to := newBase + childRank(newChildren, o)
			if err := b.moveSlot(from, to, leaves&octantBit(o) != 0); err != nil {
				return 0, err
			}
		}
		b.freeBlock(oldBase, childBlockLen(children))
	}

	slotOff := newBase + childRank(newChildren, oct)
	b.setWord(slotOff, slotVal)

	newLeaves := leaves
	if leaf {
		newLeaves |= bit
	}
	if err := b.writeNode(nodeOff, newBase, newChildren, newLeaves); err != nil {
		return 0, err
	}
	return slotOff, nil
}

// Drop a child slot from a node, relocating the surviving slots. The caller
// must have released any subtree hanging off the removed slot.
func (b *Builder) removeChild(nodeOff uint32, oct int) error {
	word := b.words[nodeOff]
	children := nodeChildren(word)
	leaves := nodeLeaves(word)
	bit := octantBit(oct)

	oldBase := b.childBaseOf(nodeOff)
	newChildren := children &^ bit
	newLeaves := leaves &^ bit

	if newChildren == 0 {
		b.freeBlock(oldBase, childBlockLen(children))
		return b.writeNode(nodeOff, 0, 0, 0)
	}

	newBase, err := b.allocBlock(childBlockLen(newChildren))
	if err != nil {
		return err
	}
	for o := 0; o < octantCount; o++ {
		if newChildren&octantBit(o) == 0 {
			continue
		}
		from := oldBase + childRank(children, o)
		to := newBase + childRank(newChildren, o)
		if err := b.moveSlot(from, to, leaves&octantBit(o) != 0); err != nil {
			return err
		}
	}
	b.freeBlock(oldBase, childBlockLen(children))
	return b.writeNode(nodeOff, newBase, newChildren, newLeaves)
}

// Migrate a child slot word to a new offset. Interior nodes with a local
// pointer re-encode it relative to the destination; the child block itself
// never moves, so far pointers and their trailer words carry over as is.
func (b *Builder) moveSlot(from, to uint32, isLeaf bool) error {
	word := b.words[from]
	if isLeaf || nodeChildren(word) == 0 || nodeFar(word) {
		b.setWord(to, word)
		return nil
	}

	base := from + nodePointer(word)
	if base > to && base-to <= maxLocalOffset {
		b.setWord(to, packNode(false, base-to, nodeChildren(word), nodeLeaves(word)))
		return nil
	}

	idx, err := b.allocFar()
	if err != nil {
		return err
	}
	b.setWord(b.farWordOff(idx), base)
	b.setWord(to, packNode(true, idx, nodeChildren(word), nodeLeaves(word)))
	return nil
}

// Release every block and far slot under an interior node about to be
// discarded. The node's own slot word is left for the caller to overwrite.
func (b *Builder) freeSubtree(nodeOff, depth uint32) {
	word := b.words[nodeOff]
	children := nodeChildren(word)
	if children == 0 {
		return
	}

	base := b.childBaseOf(nodeOff)
	leaves := nodeLeaves(word)
	if depth < b.maxDepth {
		for o := 0; o < octantCount; o++ {
			if children&octantBit(o) == 0 || leaves&octantBit(o) != 0 {
				continue
			}
			b.freeSubtree(base+childRank(children, o), depth+1)
		}
	}
	if nodeFar(word) {
		b.releaseFar(nodePointer(word))
	}
	b.freeBlock(base, childBlockLen(children))
}

// Take an immutable snapshot of the current sculpt. The arena is compacted
// to its used prefix and the far pointer trailer is repacked at the tail so
// trailer indexing stays valid. The snapshot shares nothing with the
// builder and never changes.
func (b *Builder) Snapshot() *Snapshot {
	total := b.arenaEnd + b.farCount
	words := make([]uint32, total)
	copy(words, b.words[:b.arenaEnd])
	for i := uint32(0); i < b.farCount; i++ {
		words[total-1-i] = b.words[uint32(len(b.words))-1-i]
	}
	words[0] = bufferMagic
	words[1] = total

	return &Snapshot{
		words:      words,
		palette:    b.palette.clone(),
		resolution: b.resolution,
		maxDepth:   b.maxDepth,
	}
}
