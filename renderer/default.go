package renderer

import (
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/FluffyLoaf254/swirlix/log"
	"github.com/FluffyLoaf254/swirlix/scene"
	"github.com/FluffyLoaf254/swirlix/sculpt"
	"github.com/FluffyLoaf254/swirlix/tracer"
)

var logger = log.New("renderer")

// The default renderer spawns a pool of cpu tracers, carves each frame into
// horizontal blocks and hands one block to every tracer. Block heights are
// rebalanced between frames using the scheduler feedback.
type defaultRenderer struct {
	options Options

	snapshot *sculpt.Snapshot
	camera   *scene.Camera

	tracers   []tracer.Tracer
	scheduler tracer.BlockScheduler

	target *image.RGBA
	stats  FrameStats

	doneChan chan uint32
	errChan  chan error
}

// Create a renderer for the given scene. The sculpt is decoded once; every
// frame renders from the same immutable snapshot.
func NewDefault(sc *scene.Scene, options Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	if options.FrameW == 0 || options.FrameH == 0 {
		return nil, ErrInvalidDims
	}
	if options.NumTracers <= 0 {
		options.NumTracers = runtime.NumCPU()
	}

	var scheduler tracer.BlockScheduler
	switch options.Scheduler {
	case SchedulerNaive:
		scheduler = tracer.NewNaiveScheduler()
	case SchedulerPerfect, "":
		scheduler = tracer.NewPerfectScheduler()
	default:
		return nil, ErrUnknownScheduler
	}

	snapshot, err := sculpt.DecodeSnapshot(sc.Sculpt)
	if err != nil {
		return nil, err
	}

	r := &defaultRenderer{
		options:   options,
		snapshot:  snapshot,
		camera:    sc.Camera,
		scheduler: scheduler,
		target:    image.NewRGBA(image.Rect(0, 0, int(options.FrameW), int(options.FrameH))),
		doneChan:  make(chan uint32, options.NumTracers),
		errChan:   make(chan error, options.NumTracers),
	}

	r.camera.Update(float32(options.FrameW) / float32(options.FrameH))

	setup := tracer.Setup{
		FrameW:   options.FrameW,
		FrameH:   options.FrameH,
		Snapshot: snapshot,
		Camera:   sc.Camera,
		BgColor:  sc.BgColor,
		Target:   r.target,
	}
	for idx := 0; idx < options.NumTracers; idx++ {
		tr := tracer.NewCPU(fmt.Sprintf("cpu-%d", idx))
		if err := tr.Setup(setup); err != nil {
			r.Close()
			return nil, err
		}
		r.tracers = append(r.tracers, tr)
	}

	logger.Noticef("using %d tracers for a %dx%d frame", options.NumTracers, options.FrameW, options.FrameH)
	return r, nil
}

func (r *defaultRenderer) Render() (*image.RGBA, error) {
	if len(r.tracers) == 0 {
		return nil, ErrNoTracers
	}

	start := time.Now()
	blockAssignment := r.scheduler.Schedule(r.tracers, r.options.FrameH)

	r.stats = FrameStats{Tracers: make([]TracerStat, len(r.tracers))}

	var blockY uint32
	for idx, tr := range r.tracers {
		tr.Enqueue(tracer.BlockRequest{
			BlockY:   blockY,
			BlockH:   blockAssignment[idx],
			DoneChan: r.doneChan,
			ErrChan:  r.errChan,
		})
		blockY += blockAssignment[idx]
	}

	var pendingRows = r.options.FrameH
	for pendingRows > 0 {
		select {
		case rows := <-r.doneChan:
			pendingRows -= rows
		case err := <-r.errChan:
			return nil, err
		}
	}

	for idx, tr := range r.tracers {
		stats := tr.Stats()
		r.stats.Tracers[idx] = TracerStat{
			Id:           tr.Id(),
			BlockH:       stats.BlockH,
			FramePercent: 100 * float32(stats.BlockH) / float32(r.options.FrameH),
			RenderTime:   time.Duration(stats.BlockTime),
		}
	}
	r.stats.RenderTime = time.Since(start)

	logger.Noticef("rendered frame in %d ms", r.stats.RenderTime.Nanoseconds()/1000000)
	return r.target, nil
}

func (r *defaultRenderer) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
	r.tracers = nil
}

func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}
