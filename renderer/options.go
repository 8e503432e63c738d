package renderer

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of cpu tracers to spawn. Defaults to the number of cores.
	NumTracers int

	// Scheduler used to balance rows between tracers. Defaults to the
	// perfect scheduler.
	Scheduler string
}

// Recognized scheduler names.
const (
	SchedulerNaive   = "naive"
	SchedulerPerfect = "perfect"
)
