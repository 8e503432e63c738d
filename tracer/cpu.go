package tracer

import (
	"errors"
	"image/color"
	"time"

	"github.com/FluffyLoaf254/swirlix/log"
	"github.com/FluffyLoaf254/swirlix/types"
)

var ErrNotSetup = errors.New("tracer: tracer has not been setup")

// Ambient term so faces turned away from the light stay visible.
const ambientLight = 0.2

// A cpuTracer marches rays through a sculpt snapshot on a single goroutine.
// Spawn one per core and let the scheduler balance rows between them.
type cpuTracer struct {
	id     string
	logger log.Logger

	setup Setup
	stats Stats

	workChan  chan BlockRequest
	closeChan chan struct{}
}

// Create a new cpu tracer.
func NewCPU(id string) Tracer {
	return &cpuTracer{
		id:     id,
		logger: log.New(id),
	}
}

func (tr *cpuTracer) Id() string {
	return tr.id
}

// All cpu tracers march at the baseline speed.
func (tr *cpuTracer) SpeedEstimate() float32 {
	return 1.0
}

func (tr *cpuTracer) Setup(setup Setup) error {
	if setup.Snapshot == nil || setup.Camera == nil || setup.Target == nil {
		return ErrNotSetup
	}

	tr.setup = setup
	tr.workChan = make(chan BlockRequest)
	tr.closeChan = make(chan struct{})
	go tr.worker()
	return nil
}

func (tr *cpuTracer) Close() {
	if tr.closeChan == nil {
		return
	}
	close(tr.closeChan)
	tr.closeChan = nil
}

func (tr *cpuTracer) Enqueue(req BlockRequest) {
	if tr.workChan == nil {
		req.ErrChan <- ErrNotSetup
		return
	}
	tr.workChan <- req
}

func (tr *cpuTracer) Stats() *Stats {
	return &tr.stats
}

func (tr *cpuTracer) worker() {
	for {
		select {
		case <-tr.closeChan:
			return
		case req := <-tr.workChan:
			start := time.Now()
			tr.renderBlock(req)
			tr.stats.BlockH = req.BlockH
			tr.stats.BlockTime = time.Since(start).Nanoseconds()
			req.DoneChan <- req.BlockH
		}
	}
}

func (tr *cpuTracer) renderBlock(req BlockRequest) {
	frameW := tr.setup.FrameW
	frameH := tr.setup.FrameH

	for y := req.BlockY; y < req.BlockY+req.BlockH && y < frameH; y++ {
		v := (float32(y) + 0.5) / float32(frameH)
		for x := uint32(0); x < frameW; x++ {
			u := (float32(x) + 0.5) / float32(frameW)
			tr.setup.Target.SetRGBA(int(x), int(y), tr.tracePixel(u, v))
		}
	}
}

func (tr *cpuTracer) tracePixel(u, v float32) color.RGBA {
	dir := tr.setup.Camera.RayDir(u, v)
	hit := tr.setup.Snapshot.March(tr.setup.Camera.Position, dir)
	if !hit.Hit {
		return vecToRGBA(tr.setup.BgColor, 1)
	}

	// Headlight shading: the light rides on the camera, so the diffuse term
	// falls off with the angle between the normal and the reversed ray.
	lambert := hit.Normal.Dot(dir.Mul(-1))
	if lambert < 0 {
		lambert = 0
	}
	intensity := ambientLight + (1-ambientLight)*lambert

	return vecToRGBA(hit.Material.Color.Vec3().Mul(intensity), hit.Material.Color[3])
}

func vecToRGBA(c types.Vec3, alpha float32) color.RGBA {
	return color.RGBA{
		R: channelToByte(c[0]),
		G: channelToByte(c[1]),
		B: channelToByte(c[2]),
		A: channelToByte(alpha),
	}
}

func channelToByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
