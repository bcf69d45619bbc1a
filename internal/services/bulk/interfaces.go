package bulk

import (
	"context"
	"io"
)

// File is one MP3 offered for ingestion. Open may be called more than once.
type File struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// Result reports what a batch did
type Result struct {
	Created           int      `json:"created"`
	FilenameErrors    int      `json:"filename_errors"`
	SkippedDuplicates int      `json:"skipped_duplicates"`
	OtherErrors       int      `json:"other_errors"`
	CleanupErrors     int      `json:"cleanup_errors"`
	DuplicateDetails  []string `json:"duplicate_details"`
	OtherErrorDetails []string `json:"other_error_details"`
}

// Service ingests whole MP3 files without the multipart protocol
type Service interface {
	// Ingest stores every acceptable file of the batch as a finalized track.
	// Either all accepted files become tracks or none do.
	Ingest(ctx context.Context, assetID uint, files []File) (*Result, error)
}
