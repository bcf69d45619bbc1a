package uploads

import (
	"time"

	"github.com/qurancms/recitation-api/internal/objectstore"
)

// StartRequest is the input of StartUpload
type StartRequest struct {
	AssetID        uint
	Filename       string
	DurationMSHint int64
}

// StartResult is returned by StartUpload
type StartResult struct {
	Key         objectstore.DBKey
	UploadID    string
	ContentType string
	SurahNumber int
}

// FinishResult is returned by FinishUpload
type FinishResult struct {
	TrackID     uint
	AssetID     uint
	SurahNumber int
	SizeBytes   int64
	DurationMS  int64
	FinishedAt  time.Time
	Key         objectstore.DBKey
}

// AbortResult is returned by AbortUpload
type AbortResult struct {
	Key              objectstore.DBKey
	UploadID         string
	Aborted          bool
	DBRecordsDeleted int64
}

// FilenameResult is one entry of ValidateFilenames
type FilenameResult struct {
	Filename     string `json:"filename"`
	Valid        bool   `json:"valid"`
	SurahNumber  int    `json:"surah_number,omitempty"`
	Exists       *bool  `json:"exists,omitempty"`
	SurahNameEn  string `json:"surah_name_en,omitempty"`
	SurahNameAr  string `json:"surah_name_ar,omitempty"`
	ErrorName    string `json:"error_name,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// SweepReport summarizes one stuck-upload sweep
type SweepReport struct {
	Scanned          int          `json:"scanned"`
	Stale            int          `json:"stale"`
	Aborted          int          `json:"aborted"`
	Skipped          int          `json:"skipped"`
	DBRecordsDeleted int64        `json:"dbRecordsDeleted"`
	DryRun           bool         `json:"dryRun"`
	Errors           []SweepError `json:"errors"`
}

// SweepError records one entry the sweep could not abort
type SweepError struct {
	Key      string `json:"key"`
	UploadID string `json:"uploadId"`
	Error    string `json:"error"`
}
