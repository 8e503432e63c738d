package sculpt

import (
	"testing"

	"github.com/FluffyLoaf254/swirlix/types"
)

func TestPaletteDeduplicatesMaterials(t *testing.T) {
	p := NewPalette()
	red := Material{Color: types.XYZW(1, 0, 0, 1), Roughness: 0.3}

	ref1 := p.Add(red)
	ref2 := p.Add(red)
	if ref1 != ref2 {
		t.Fatalf("expected equal materials to share a reference; got %d and %d", ref1, ref2)
	}
	if p.Count() != 2 {
		t.Fatalf("expected the default material plus one; got %d records", p.Count())
	}

	blue := Material{Color: types.XYZW(0, 0, 1, 1), Roughness: 0.3}
	if ref3 := p.Add(blue); ref3 == ref1 {
		t.Fatalf("expected a distinct material to get its own reference")
	}
}

func TestPaletteAbsorbsDanglingReferences(t *testing.T) {
	p := NewPalette()
	if m := p.Get(MaterialRef(42)); m != DefaultMaterial {
		t.Fatalf("expected the default material for a dangling reference; got %+v", m)
	}
	if p.Contains(MaterialRef(42)) {
		t.Fatalf("expected Contains to reject a dangling reference")
	}
}

func TestPaletteWireRoundTrip(t *testing.T) {
	p := NewPalette()
	p.Add(Material{Color: types.XYZW(1, 0.5, 0, 1), Roughness: 0.7, Metallic: 1})

	decoded, err := DecodePalette(p.Encode())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Count() != p.Count() {
		t.Fatalf("expected %d records; got %d", p.Count(), decoded.Count())
	}
	for ref := 0; ref < p.Count(); ref++ {
		if decoded.Get(MaterialRef(ref)) != p.Get(MaterialRef(ref)) {
			t.Fatalf("record %d changed across the round trip", ref)
		}
	}

	// Decoded palettes keep deduplicating new pushes against old records.
	if ref := decoded.Add(Material{Color: types.XYZW(1, 0.5, 0, 1), Roughness: 0.7, Metallic: 1}); ref != 1 {
		t.Fatalf("expected the existing record to be reused; got reference %d", ref)
	}
}
