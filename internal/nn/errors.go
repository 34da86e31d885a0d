package nn

import "errors"

// Sentinel errors returned by network configuration and cost evaluation.
var (
	// ErrConfiguration is returned when a network is asked to do something
	// its current configuration cannot support: an activation count that
	// does not match the layer count, training without loaded samples, or
	// a batch size larger than the training set.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrSingular is returned by cost gradients that divide by the
	// residual norm when the residual is exactly zero.
	ErrSingular = errors.New("division by singularity")
)
