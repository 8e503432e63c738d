package sculpt

import (
	"math"

	"github.com/FluffyLoaf254/swirlix/types"
)

// A reference to a material record in the palette. It is the value stored
// in leaf words of the voxel buffer.
type MaterialRef uint32

// Materials encode the surface attributes of a voxel. Records are immutable
// once pushed to a palette; leaves reference them by index and never own them.
type Material struct {
	// RGBA color with each channel in [0, 1].
	Color types.Vec4

	// Surface roughness in [0, 1].
	Roughness float32

	// Metalness in [0, 1].
	Metallic float32
}

// Number of words in the wire representation of a single material record:
// 4 color channels followed by roughness and metallic.
const materialWords = 6

// Encode the material into its wire representation.
func (m Material) encode(out []uint32) {
	out[0] = math.Float32bits(m.Color[0])
	out[1] = math.Float32bits(m.Color[1])
	out[2] = math.Float32bits(m.Color[2])
	out[3] = math.Float32bits(m.Color[3])
	out[4] = math.Float32bits(m.Roughness)
	out[5] = math.Float32bits(m.Metallic)
}

func decodeMaterial(in []uint32) Material {
	return Material{
		Color: types.XYZW(
			math.Float32frombits(in[0]),
			math.Float32frombits(in[1]),
			math.Float32frombits(in[2]),
			math.Float32frombits(in[3]),
		),
		Roughness: math.Float32frombits(in[4]),
		Metallic:  math.Float32frombits(in[5]),
	}
}

// The Palette stores the distinct materials used by a sculpt. Equal records
// are deduplicated so that repeated brush strokes with the same material do
// not grow the table.
type Palette struct {
	materials []Material
	index     map[Material]MaterialRef
}

// Create a palette seeded with the default material at index 0.
func NewPalette() *Palette {
	p := &Palette{
		materials: make([]Material, 0, 8),
		index:     make(map[Material]MaterialRef),
	}
	p.Add(DefaultMaterial)
	return p
}

// The material referenced by leaves that were written without an explicit
// material selection.
var DefaultMaterial = Material{
	Color:     types.XYZW(0.8, 0.8, 0.8, 1),
	Roughness: 0.5,
	Metallic:  0,
}

// Add a material to the palette, returning its reference. Pushing a record
// equal to an existing one returns the existing reference.
func (p *Palette) Add(m Material) MaterialRef {
	if ref, exists := p.index[m]; exists {
		return ref
	}

	ref := MaterialRef(len(p.materials))
	p.materials = append(p.materials, m)
	p.index[m] = ref
	return ref
}

// Look up a material record. Out of range references resolve to the default
// material; queries must never fail on a dangling reference.
func (p *Palette) Get(ref MaterialRef) Material {
	if int(ref) >= len(p.materials) {
		return DefaultMaterial
	}
	return p.materials[ref]
}

// Get the number of stored materials.
func (p *Palette) Count() int {
	return len(p.materials)
}

// Check whether ref addresses a stored material.
func (p *Palette) Contains(ref MaterialRef) bool {
	return int(ref) < len(p.materials)
}

// Copy the palette. Snapshots carry their own copy so concurrent readers
// never observe a builder-side Add.
func (p *Palette) clone() *Palette {
	out := &Palette{
		materials: append([]Material(nil), p.materials...),
		index:     make(map[Material]MaterialRef, len(p.index)),
	}
	for m, ref := range p.index {
		out.index[m] = ref
	}
	return out
}

// Encode the palette into its wire representation.
func (p *Palette) Encode() []uint32 {
	out := make([]uint32, len(p.materials)*materialWords)
	for idx, m := range p.materials {
		m.encode(out[idx*materialWords:])
	}
	return out
}

// Decode a palette from its wire representation.
func DecodePalette(words []uint32) (*Palette, error) {
	if len(words) == 0 || len(words)%materialWords != 0 {
		return nil, ErrMalformedPalette
	}

	p := &Palette{
		materials: make([]Material, 0, len(words)/materialWords),
		index:     make(map[Material]MaterialRef),
	}
	for off := 0; off < len(words); off += materialWords {
		m := decodeMaterial(words[off : off+materialWords])
		p.materials = append(p.materials, m)
		if _, exists := p.index[m]; !exists {
			p.index[m] = MaterialRef(off / materialWords)
		}
	}
	return p, nil
}
