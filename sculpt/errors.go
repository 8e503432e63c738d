package sculpt

import "errors"

var (
	ErrInvalidResolution = errors.New("sculpt: resolution must be a power of two in [2, 65536]")
	ErrInvalidCapacity   = errors.New("sculpt: capacity too small for the requested resolution")
	ErrInvalidDepth      = errors.New("sculpt: depth must be in [1, log2(resolution)]")
	ErrOutOfBounds       = errors.New("sculpt: point outside the [0, 1) sculpting volume")
	ErrUnknownMaterial   = errors.New("sculpt: material reference not present in palette")
	ErrCapacityExceeded  = errors.New("sculpt: voxel buffer capacity exceeded")
	ErrMalformedBuffer   = errors.New("sculpt: malformed voxel buffer")
	ErrMalformedPalette  = errors.New("sculpt: malformed material palette")
)
