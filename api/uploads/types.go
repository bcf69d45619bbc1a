package uploads

import (
	"time"

	"github.com/qurancms/recitation-api/internal/objectstore"
	uploadsService "github.com/qurancms/recitation-api/internal/services/uploads"
)

// StartRequest opens a multipart upload for one surah
type StartRequest struct {
	AssetID    uint   `json:"assetId" binding:"required" example:"42"`
	Filename   string `json:"filename" binding:"required" example:"husary_007.mp3"`
	DurationMS int64  `json:"durationMs,omitempty" example:"0"`
}

// StartResponse tells the browser where to send parts
type StartResponse struct {
	Key         string `json:"key" example:"uploads/assets/42/recitations/007.mp3"`
	UploadID    string `json:"uploadId"`
	ContentType string `json:"contentType" example:"audio/mpeg"`
	SurahNumber int    `json:"surahNumber" example:"7"`
}

// SignPartRequest asks for a presigned PUT URL for one part
type SignPartRequest struct {
	Key        string `json:"key" binding:"required"`
	UploadID   string `json:"uploadId" binding:"required"`
	PartNumber int    `json:"partNumber" example:"1"`
}

// SignPartResponse carries the presigned URL
type SignPartResponse struct {
	URL string `json:"url"`
}

// FinishRequest completes an upload with the parts the browser sent
type FinishRequest struct {
	Key      string                      `json:"key" binding:"required"`
	UploadID string                      `json:"uploadId" binding:"required"`
	Parts    []objectstore.CompletedPart `json:"parts"`
}

// FinishResponse describes the finalized track
type FinishResponse struct {
	TrackID     uint      `json:"trackId"`
	AssetID     uint      `json:"assetId"`
	SurahNumber int       `json:"surahNumber"`
	SizeBytes   int64     `json:"sizeBytes"`
	DurationMS  int64     `json:"durationMs"`
	FinishedAt  time.Time `json:"finishedAt"`
	Key         string    `json:"key"`
}

// AbortRequest cancels an upload
type AbortRequest struct {
	Key      string `json:"key" binding:"required"`
	UploadID string `json:"uploadId" binding:"required"`
}

// AbortResponse reports what an abort removed
type AbortResponse struct {
	Key              string `json:"key"`
	UploadID         string `json:"uploadId"`
	Aborted          bool   `json:"aborted"`
	DBRecordsDeleted int64  `json:"dbRecordsDeleted"`
}

// ValidateFilenamesRequest is a dry run of filename parsing
type ValidateFilenamesRequest struct {
	Filenames []string `json:"filenames" binding:"required"`
	AssetID   *uint    `json:"asset_id,omitempty"`
}

// ValidateFilenamesResponse holds one result per submitted filename, in order
type ValidateFilenamesResponse struct {
	Results []uploadsService.FilenameResult `json:"results"`
}
