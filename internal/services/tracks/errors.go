package tracks

import "errors"

var (
	// ErrTrackNotFound is returned when no track row matches
	ErrTrackNotFound = errors.New("track not found")

	// ErrDuplicateTrack is returned when the (asset, surah) slot is already taken
	ErrDuplicateTrack = errors.New("track already exists for asset and surah")

	// ErrInvalidTiming is returned when an ayah timing fails validation
	ErrInvalidTiming = errors.New("invalid ayah timing")
)
