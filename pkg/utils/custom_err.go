package utils

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrPrecondition means required trip data was missing before any external call.
	ErrPrecondition = errors.New("missing required trip data")

	// ErrGenerationFailed and ErrParse never reach the caller, the pipeline
	// swaps in the fallback itinerary instead.
	ErrGenerationFailed = errors.New("itinerary generation failed")
	ErrParse            = errors.New("generated itinerary is not valid JSON")

	ErrUnhandled = errors.New("unexpected error while assembling itinerary")

	ErrFlightProviderUnavailable = errors.New("flight provider unavailable")
	ErrUnauthorized              = errors.New("invalid or missing credentials")
)
