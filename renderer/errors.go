package renderer

import "errors"

var (
	ErrNoTracers        = errors.New("renderer: no tracers attached")
	ErrSceneNotDefined  = errors.New("renderer: no scene defined")
	ErrCameraNotDefined = errors.New("renderer: no camera defined")
	ErrInvalidDims      = errors.New("renderer: frame dimensions must be positive")
	ErrUnknownScheduler = errors.New("renderer: unknown scheduler")
)
