package manifest

import "errors"

var (
	// ErrAssetNotFound is returned when the asset id does not exist
	ErrAssetNotFound = errors.New("asset not found")

	// ErrNoAssetVersion is returned when the asset has no version to attach the manifest to
	ErrNoAssetVersion = errors.New("asset has no version")
)
