package tracer

import (
	"image"
	"testing"
	"time"

	"github.com/FluffyLoaf254/swirlix/scene"
	"github.com/FluffyLoaf254/swirlix/sculpt"
	"github.com/FluffyLoaf254/swirlix/types"
)

func TestCPUTracerRejectsIncompleteSetup(t *testing.T) {
	tr := NewCPU("cpu-test")
	if err := tr.Setup(Setup{}); err != ErrNotSetup {
		t.Fatalf("expected ErrNotSetup; got %v", err)
	}
}

func TestCPUTracerRendersBlock(t *testing.T) {
	bld, err := sculpt.NewBuilder(sculpt.Config{Resolution: 8})
	if err != nil {
		t.Fatalf("builder creation failed: %v", err)
	}
	red := bld.AddMaterial(sculpt.Material{Color: types.XYZW(1, 0, 0, 1)})

	// Fill the whole volume so the camera faces a solid wall of matter.
	for oct := 0; oct < 8; oct++ {
		p := types.XYZ(0.25, 0.25, 0.25)
		if oct&1 != 0 {
			p[0] = 0.75
		}
		if oct&2 != 0 {
			p[1] = 0.75
		}
		if oct&4 != 0 {
			p[2] = 0.75
		}
		if err = bld.SetVoxel(p, 1, red); err != nil {
			t.Fatalf("set failed: %v", err)
		}
	}

	cam := scene.NewCamera(45)
	cam.Update(1)
	target := image.NewRGBA(image.Rect(0, 0, 16, 16))

	tr := NewCPU("cpu-test")
	err = tr.Setup(Setup{
		FrameW:   16,
		FrameH:   16,
		Snapshot: bld.Snapshot(),
		Camera:   cam,
		BgColor:  types.Vec3{0, 0, 1},
		Target:   target,
	})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	defer tr.Close()

	doneChan := make(chan uint32, 1)
	errChan := make(chan error, 1)
	tr.Enqueue(BlockRequest{BlockY: 0, BlockH: 16, DoneChan: doneChan, ErrChan: errChan})

	select {
	case rows := <-doneChan:
		if rows != 16 {
			t.Fatalf("expected 16 completed rows; got %d", rows)
		}
	case err = <-errChan:
		t.Fatalf("tracer failed: %v", err)
	case <-time.After(10 * time.Second):
		t.Fatalf("timed out waiting for the block to render")
	}

	// The center ray hits the front face head on.
	center := target.RGBAAt(8, 8)
	if center.R < 200 || center.B > 50 {
		t.Fatalf("expected a red center pixel; got %+v", center)
	}

	// Corner rays pass wide of the volume and resolve to the background.
	corner := target.RGBAAt(0, 0)
	if corner.B != 255 || corner.R != 0 {
		t.Fatalf("expected a background corner pixel; got %+v", corner)
	}

	if stats := tr.Stats(); stats.BlockH != 16 {
		t.Fatalf("expected stats for a 16 row block; got %+v", stats)
	}
}
