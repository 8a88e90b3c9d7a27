package forecast

import "errors"

var (
	// ErrInvalidRange is returned when a requested date range has start > end.
	ErrInvalidRange = errors.New("forecast: start date after end date")

	// ErrInsufficientData marks inputs too thin for a full computation.
	// Components use it to select conservative fallbacks, never to abort.
	ErrInsufficientData = errors.New("forecast: insufficient data")

	// ErrMalformedSeries is returned for caller-supplied series with
	// duplicate or non-monotonic dates.
	ErrMalformedSeries = errors.New("forecast: series dates must be strictly increasing")
)
