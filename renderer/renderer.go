package renderer

import "image"

type Renderer interface {
	// Render a frame of the attached scene.
	Render() (*image.RGBA, error)

	// Shutdown renderer and any attached tracer.
	Close()

	// Get render statistics.
	Stats() FrameStats
}
