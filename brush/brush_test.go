package brush

import (
	"testing"

	"github.com/FluffyLoaf254/swirlix/sculpt"
	"github.com/FluffyLoaf254/swirlix/types"
)

func TestRoundTipPredicates(t *testing.T) {
	type spec struct {
		tipCenter   types.Vec3
		tipSize     float32
		cubeCenter  types.Vec3
		cubeSize    float32
		expOverlaps bool
		expContains bool
	}
	specs := []spec{
		// Cube at the sphere center.
		spec{types.XYZ(0.5, 0.5, 0.5), 0.25, types.XYZ(0.5, 0.5, 0.5), 0.25, true, true},
		// Cube corner pokes out of the sphere.
		spec{types.XYZ(0.5, 0.5, 0.5), 0.25, types.XYZ(0.5, 0.5, 0.5), 0.5, true, false},
		// Cube face touches the sphere without entering it.
		spec{types.XYZ(0.5, 0.5, 0.5), 0.25, types.XYZ(0.875, 0.5, 0.5), 0.25, false, false},
		// Cube face dips into the sphere.
		spec{types.XYZ(0.5, 0.5, 0.5), 0.25, types.XYZ(0.85, 0.5, 0.5), 0.25, true, false},
		// Sphere fully inside the cube.
		spec{types.XYZ(0.5, 0.5, 0.5), 0.1, types.XYZ(0.5, 0.5, 0.5), 1, true, false},
	}

	for index, s := range specs {
		tip := RoundTip{}
		if got := tip.Overlaps(s.tipCenter, s.tipSize, s.cubeCenter, s.cubeSize); got != s.expOverlaps {
			t.Fatalf("[spec %d] expected overlaps %v; got %v", index, s.expOverlaps, got)
		}
		if got := tip.Contains(s.tipCenter, s.tipSize, s.cubeCenter, s.cubeSize); got != s.expContains {
			t.Fatalf("[spec %d] expected contains %v; got %v", index, s.expContains, got)
		}
	}
}

func TestCubeTipPredicates(t *testing.T) {
	type spec struct {
		tipCenter   types.Vec3
		tipSize     float32
		cubeCenter  types.Vec3
		cubeSize    float32
		expOverlaps bool
		expContains bool
	}
	specs := []spec{
		spec{types.XYZ(0.5, 0.5, 0.5), 0.25, types.XYZ(0.5, 0.5, 0.5), 0.25, true, true},
		// Cube exactly fills the tip volume.
		spec{types.XYZ(0.5, 0.5, 0.5), 0.25, types.XYZ(0.5, 0.5, 0.5), 0.5, true, true},
		spec{types.XYZ(0.5, 0.5, 0.5), 0.25, types.XYZ(0.5, 0.5, 0.5), 0.6, true, false},
		// Touching faces do not overlap.
		spec{types.XYZ(0.25, 0.5, 0.5), 0.125, types.XYZ(0.5, 0.5, 0.5), 0.25, false, false},
		spec{types.XYZ(0.3, 0.5, 0.5), 0.125, types.XYZ(0.5, 0.5, 0.5), 0.25, true, false},
	}

	for index, s := range specs {
		tip := CubeTip{}
		if got := tip.Overlaps(s.tipCenter, s.tipSize, s.cubeCenter, s.cubeSize); got != s.expOverlaps {
			t.Fatalf("[spec %d] expected overlaps %v; got %v", index, s.expOverlaps, got)
		}
		if got := tip.Contains(s.tipCenter, s.tipSize, s.cubeCenter, s.cubeSize); got != s.expContains {
			t.Fatalf("[spec %d] expected contains %v; got %v", index, s.expContains, got)
		}
	}
}

func TestTipByName(t *testing.T) {
	if tip, ok := TipByName("round"); !ok || tip.Name() != "round" {
		t.Fatalf("expected the round tip; got %v, %v", tip, ok)
	}
	if tip, ok := TipByName("cube"); !ok || tip.Name() != "cube" {
		t.Fatalf("expected the cube tip; got %v, %v", tip, ok)
	}
	if _, ok := TipByName("chisel"); ok {
		t.Fatalf("expected unknown tip names to be rejected")
	}
}

func TestRoundStrokeFillsSphere(t *testing.T) {
	bld, err := sculpt.NewBuilder(sculpt.Config{Resolution: 16})
	if err != nil {
		t.Fatalf("builder creation failed: %v", err)
	}
	red := bld.AddMaterial(sculpt.Material{Color: types.XYZW(1, 0, 0, 1)})

	b := Brush{Tip: RoundTip{}, Size: 0.25, Material: red}
	if err := b.Add(bld, types.XYZ(0.5, 0.5, 0.5)); err != nil {
		t.Fatalf("stroke failed: %v", err)
	}

	snap := bld.Snapshot()
	// Points well inside the sphere are filled, points outside stay empty.
	inside := []types.Vec3{
		types.XYZ(0.5, 0.5, 0.5),
		types.XYZ(0.6, 0.5, 0.5),
		types.XYZ(0.5, 0.35, 0.5),
	}
	for _, p := range inside {
		if sp := snap.NearestSurface(p, -1); !sp.Hit || sp.Distance != 0 {
			t.Fatalf("expected %v to be inside the stroke; got %+v", p, sp)
		}
	}
	outside := []types.Vec3{
		types.XYZ(0.9, 0.9, 0.9),
		types.XYZ(0.1, 0.5, 0.5),
	}
	for _, p := range outside {
		if sp := snap.NearestSurface(p, -1); sp.Hit && sp.Distance == 0 {
			t.Fatalf("expected %v to be outside the stroke; got %+v", p, sp)
		}
	}
}

func TestRemoveStrokeCarvesHole(t *testing.T) {
	bld, err := sculpt.NewBuilder(sculpt.Config{Resolution: 16})
	if err != nil {
		t.Fatalf("builder creation failed: %v", err)
	}
	red := bld.AddMaterial(sculpt.Material{Color: types.XYZW(1, 0, 0, 1)})

	fill := Brush{Tip: CubeTip{}, Size: 0.3, Material: red}
	if err := fill.Add(bld, types.XYZ(0.5, 0.5, 0.5)); err != nil {
		t.Fatalf("fill stroke failed: %v", err)
	}
	carve := Brush{Tip: RoundTip{}, Size: 0.15}
	if err := carve.Remove(bld, types.XYZ(0.5, 0.5, 0.5)); err != nil {
		t.Fatalf("carve stroke failed: %v", err)
	}

	snap := bld.Snapshot()
	if sp := snap.NearestSurface(types.XYZ(0.5, 0.5, 0.5), -1); sp.Distance == 0 {
		t.Fatalf("expected the cube center to be carved out; got %+v", sp)
	}
	if sp := snap.NearestSurface(types.XYZ(0.72, 0.72, 0.72), -1); !sp.Hit || sp.Distance != 0 {
		t.Fatalf("expected the cube corner to survive the carve; got %+v", sp)
	}
}

func TestStrokeRejectsBadSize(t *testing.T) {
	bld, err := sculpt.NewBuilder(sculpt.Config{Resolution: 16})
	if err != nil {
		t.Fatalf("builder creation failed: %v", err)
	}

	b := Brush{Tip: RoundTip{}, Size: 0}
	if err := b.Add(bld, types.XYZ(0.5, 0.5, 0.5)); err != ErrInvalidSize {
		t.Fatalf("expected ErrInvalidSize; got %v", err)
	}
}
