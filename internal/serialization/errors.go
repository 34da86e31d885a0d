package serialization

import "errors"

// Sentinel errors for snapshot encoding and decoding.
var (
	ErrBadSnapshot    = errors.New("snapshot is malformed")
	ErrShapeMismatch  = errors.New("snapshot tensor shape disagrees with node counts")
	ErrMissingTensors = errors.New("snapshot tensor count disagrees with node counts")
)
