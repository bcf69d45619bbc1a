// Package events publishes recitation lifecycle notifications.
package events

import (
	"context"
	"time"
)

// Routing keys on the recitations exchange
const (
	TrackFinalizedKey    = "recitation.track.finalized"
	TrackAbortedKey      = "recitation.track.aborted"
	ManifestPublishedKey = "recitation.manifest.published"
)

// TrackFinalized is emitted after an upload reaches the finalized state
type TrackFinalized struct {
	TrackID     uint      `json:"track_id"`
	AssetID     uint      `json:"asset_id"`
	SurahNumber int       `json:"surah_number"`
	Key         string    `json:"key"`
	SizeBytes   int64     `json:"size_bytes"`
	DurationMS  int64     `json:"duration_ms"`
	FinishedAt  time.Time `json:"finished_at"`
}

// TrackAborted is emitted when an abort removed reservation rows
type TrackAborted struct {
	Key              string `json:"key"`
	UploadID         string `json:"upload_id"`
	DBRecordsDeleted int64  `json:"db_records_deleted"`
	Reason           string `json:"reason"` // client or sweep
}

// ManifestPublished is emitted after a manifest replaced the latest asset version file
type ManifestPublished struct {
	AssetID   uint   `json:"asset_id"`
	VersionID uint   `json:"version_id"`
	Filename  string `json:"filename"`
	FileURL   string `json:"file_url"`
	SizeBytes int64  `json:"size_bytes"`
	Tracks    int    `json:"tracks"`
}

// Notifier delivers events. Callers treat delivery as best effort.
type Notifier interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// Noop drops every event
type Noop struct{}

func (Noop) Publish(ctx context.Context, routingKey string, payload any) error { return nil }

func (Noop) Close() error { return nil }
