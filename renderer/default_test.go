package renderer

import (
	"testing"

	"github.com/FluffyLoaf254/swirlix/scene"
	"github.com/FluffyLoaf254/swirlix/sculpt"
	"github.com/FluffyLoaf254/swirlix/types"
)

func TestNewDefaultValidation(t *testing.T) {
	sc := makeScene(t)

	if _, err := NewDefault(nil, Options{FrameW: 8, FrameH: 8}); err != ErrSceneNotDefined {
		t.Fatalf("expected ErrSceneNotDefined; got %v", err)
	}
	if _, err := NewDefault(sc, Options{FrameW: 0, FrameH: 8}); err != ErrInvalidDims {
		t.Fatalf("expected ErrInvalidDims; got %v", err)
	}
	if _, err := NewDefault(sc, Options{FrameW: 8, FrameH: 8, Scheduler: "psychic"}); err != ErrUnknownScheduler {
		t.Fatalf("expected ErrUnknownScheduler; got %v", err)
	}

	noCam := makeScene(t)
	noCam.Camera = nil
	if _, err := NewDefault(noCam, Options{FrameW: 8, FrameH: 8}); err != ErrCameraNotDefined {
		t.Fatalf("expected ErrCameraNotDefined; got %v", err)
	}
}

func TestDefaultRendererRendersFrames(t *testing.T) {
	sc := makeScene(t)

	r, err := NewDefault(sc, Options{FrameW: 16, FrameH: 16, NumTracers: 2, Scheduler: SchedulerPerfect})
	if err != nil {
		t.Fatalf("renderer creation failed: %v", err)
	}
	defer r.Close()

	// Two frames so the perfect scheduler gets to use block feedback.
	for frame := 0; frame < 2; frame++ {
		img, err := r.Render()
		if err != nil {
			t.Fatalf("[frame %d] render failed: %v", frame, err)
		}
		if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
			t.Fatalf("[frame %d] expected a 16x16 frame; got %v", frame, img.Bounds())
		}
	}

	stats := r.Stats()
	if len(stats.Tracers) != 2 {
		t.Fatalf("expected stats for 2 tracers; got %d", len(stats.Tracers))
	}
	var rows uint32
	for _, ts := range stats.Tracers {
		rows += ts.BlockH
	}
	if rows != 16 {
		t.Fatalf("expected the tracer blocks to cover all 16 rows; got %d", rows)
	}
}

func makeScene(t *testing.T) *scene.Scene {
	t.Helper()
	b, err := sculpt.NewBuilder(sculpt.Config{Resolution: 8})
	if err != nil {
		t.Fatalf("builder creation failed: %v", err)
	}
	red := b.AddMaterial(sculpt.Material{Color: types.XYZW(1, 0, 0, 1)})
	if err = b.SetVoxel(types.XYZ(0.5, 0.5, 0.5), 1, red); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	return scene.NewScene(b.Encode())
}
