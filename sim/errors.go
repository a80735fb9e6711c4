package sim

import "errors"

var (
	// ErrConfiguration reports an invalid SystemConfiguration. Returned before
	// the event loop starts; no partial result is produced.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrEmptyInput reports a run with no arrivals, for which normalized
	// statistics are undefined.
	ErrEmptyInput = errors.New("no arrivals supplied")
)
