package sculpt

// Every voxel edit runs under a journal so a mid-edit allocation failure
// can unwind cleanly. Word writes are recorded with their previous value,
// allocations are recorded so rollback can hand them back, and frees are
// deferred until commit so a block released early in an edit can never be
// handed out again by the same edit.

type wordWrite struct {
	off uint32
	old uint32
}

type blockSpan struct {
	off  uint32
	size uint32
}

type editJournal struct {
	writes      []wordWrite
	arenaEnd    uint32
	farCount    uint32
	takenBlocks []blockSpan
	takenFar    []uint32
	freedBlocks []blockSpan
	freedFar    []uint32
}

func (b *Builder) begin() {
	b.journal.writes = b.journal.writes[:0]
	b.journal.takenBlocks = b.journal.takenBlocks[:0]
	b.journal.takenFar = b.journal.takenFar[:0]
	b.journal.freedBlocks = b.journal.freedBlocks[:0]
	b.journal.freedFar = b.journal.freedFar[:0]
	b.journal.arenaEnd = b.arenaEnd
	b.journal.farCount = b.farCount
}

func (b *Builder) commit() {
	for _, span := range b.journal.freedBlocks {
		b.freeBlocks[span.size] = append(b.freeBlocks[span.size], span.off)
	}
	for _, idx := range b.journal.freedFar {
		b.freeFar = append(b.freeFar, idx)
	}
}

func (b *Builder) rollback() {
	for i := len(b.journal.writes) - 1; i >= 0; i-- {
		w := b.journal.writes[i]
		b.words[w.off] = w.old
	}
	b.arenaEnd = b.journal.arenaEnd
	b.farCount = b.journal.farCount
	for _, span := range b.journal.takenBlocks {
		b.freeBlocks[span.size] = append(b.freeBlocks[span.size], span.off)
	}
	for _, idx := range b.journal.takenFar {
		b.freeFar = append(b.freeFar, idx)
	}
}

func (b *Builder) setWord(off, val uint32) {
	b.journal.writes = append(b.journal.writes, wordWrite{off: off, old: b.words[off]})
	b.words[off] = val
}

// Allocate a child block of n words, preferring the free list for that
// block length over growing the arena. The arena may not grow into the far
// pointer trailer.
func (b *Builder) allocBlock(n uint32) (uint32, error) {
	if list := b.freeBlocks[n]; len(list) > 0 {
		off := list[len(list)-1]
		b.freeBlocks[n] = list[:len(list)-1]
		b.journal.takenBlocks = append(b.journal.takenBlocks, blockSpan{off: off, size: n})
		return off, nil
	}

	if b.arenaEnd+n > uint32(len(b.words))-b.farCount {
		return 0, ErrCapacityExceeded
	}
	off := b.arenaEnd
	b.arenaEnd += n
	return off, nil
}

func (b *Builder) freeBlock(off, size uint32) {
	b.journal.freedBlocks = append(b.journal.freedBlocks, blockSpan{off: off, size: size})
}

// Allocate a far pointer trailer slot, growing the trailer downward when
// the free list is empty.
func (b *Builder) allocFar() (uint32, error) {
	if len(b.freeFar) > 0 {
		idx := b.freeFar[len(b.freeFar)-1]
		b.freeFar = b.freeFar[:len(b.freeFar)-1]
		b.journal.takenFar = append(b.journal.takenFar, idx)
		return idx, nil
	}

	if b.farCount > pointerMask || b.arenaEnd > uint32(len(b.words))-b.farCount-1 {
		return 0, ErrCapacityExceeded
	}
	idx := b.farCount
	b.farCount++
	return idx, nil
}

func (b *Builder) releaseFar(idx uint32) {
	b.journal.freedFar = append(b.journal.freedFar, idx)
}

func (b *Builder) farWordOff(idx uint32) uint32 {
	return uint32(len(b.words)) - 1 - idx
}
