package tracer

import (
	"image"

	"github.com/FluffyLoaf254/swirlix/scene"
	"github.com/FluffyLoaf254/swirlix/sculpt"
	"github.com/FluffyLoaf254/swirlix/types"
)

// Everything a tracer needs before it can accept block requests: the frame
// dimensions, the sculpt snapshot to march rays through, the camera that
// generates the rays and the shared frame buffer to write pixels into.
// Tracers work on disjoint pixel rows, so the frame buffer needs no locking.
type Setup struct {
	FrameW uint32
	FrameH uint32

	Snapshot *sculpt.Snapshot
	Camera   *scene.Camera
	BgColor  types.Vec3

	Target *image.RGBA
}

// A unit of work that is processed by a tracer.
type BlockRequest struct {
	// Block start row and height.
	BlockY uint32
	BlockH uint32

	// A channel to signal on block completion with the number of completed rows.
	DoneChan chan<- uint32

	// A channel to signal if an error occurs.
	ErrChan chan<- error
}

// Tracer statistics.
type Stats struct {
	// The rendered block height.
	BlockH uint32

	// The time for rendering this block (in nanoseconds).
	BlockTime int64
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Shutdown and cleanup tracer.
	Close()

	// Get the tracer's computation speed estimate compared to a baseline
	// (single core cpu) implementation.
	SpeedEstimate() float32

	// Setup the tracer.
	Setup(setup Setup) error

	// Enqueue block request.
	Enqueue(BlockRequest)

	// Retrieve last block statistics.
	Stats() *Stats
}
