package sculpt

// The serializable form of a sculpt: the compacted voxel buffer together
// with the palette wire words and the arena parameters needed to resume
// editing. The scene writer persists this struct as is.
type Encoded struct {
	Resolution uint32
	Capacity   uint32
	FarCount   uint32
	Words      []uint32
	Materials  []uint32
}

// Encode the builder state for persistence.
func (b *Builder) Encode() Encoded {
	snap := b.Snapshot()
	return Encoded{
		Resolution: b.resolution,
		Capacity:   uint32(len(b.words)),
		FarCount:   b.farCount,
		Words:      snap.words,
		Materials:  b.palette.Encode(),
	}
}

func validateEncoded(e Encoded) error {
	if !isPow2(e.Resolution) || e.Resolution < 2 || e.Resolution > MaxResolution {
		return ErrInvalidResolution
	}
	total := uint32(len(e.Words))
	if total < headerWords+1 || e.Words[0] != bufferMagic || e.Words[1] != total {
		return ErrMalformedBuffer
	}
	if e.FarCount > total-headerWords-1 {
		return ErrMalformedBuffer
	}
	return nil
}

// Decode an encoded sculpt into an immutable snapshot for querying.
func DecodeSnapshot(e Encoded) (*Snapshot, error) {
	if err := validateEncoded(e); err != nil {
		return nil, err
	}
	palette, err := DecodePalette(e.Materials)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		words:      append([]uint32(nil), e.Words...),
		palette:    palette,
		resolution: e.Resolution,
		maxDepth:   log2u32(e.Resolution),
	}, nil
}

// Decode an encoded sculpt into a builder that can keep editing it. The
// compacted arena is copied into a fresh arena of the encoded capacity and
// the far pointer trailer is unpacked back to the arena tail. Free lists do
// not survive a round trip; space freed before encoding is reclaimed only
// as blocks churn again.
func DecodeBuilder(e Encoded) (*Builder, error) {
	if err := validateEncoded(e); err != nil {
		return nil, err
	}
	palette, err := DecodePalette(e.Materials)
	if err != nil {
		return nil, err
	}

	total := uint32(len(e.Words))
	arenaEnd := total - e.FarCount
	capacity := e.Capacity
	if capacity < total {
		capacity = total
	}

	words := make([]uint32, capacity)
	copy(words[:arenaEnd], e.Words[:arenaEnd])
	for i := uint32(0); i < e.FarCount; i++ {
		words[capacity-1-i] = e.Words[total-1-i]
	}

	return &Builder{
		words:      words,
		arenaEnd:   arenaEnd,
		farCount:   e.FarCount,
		resolution: e.Resolution,
		maxDepth:   log2u32(e.Resolution),
		palette:    palette,
	}, nil
}
