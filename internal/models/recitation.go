package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MinSurahNumber = 1
	MaxSurahNumber = 114
)

// RecitationSurahTrack is one MP3 recording of one surah within a recitation asset.
// A row with a nil UploadFinishedAt is a reservation held while the upload runs.
// Rows are hard-deleted so the (asset_id, surah_number) slot is freed on abort.
type RecitationSurahTrack struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	AssetID          uint       `json:"asset_id" gorm:"not null;uniqueIndex:idx_track_asset_surah,priority:1"`
	SurahNumber      int        `json:"surah_number" gorm:"not null;uniqueIndex:idx_track_asset_surah,priority:2;check:chk_track_surah_range,surah_number >= 1 AND surah_number <= 114"`
	AudioFile        string     `json:"audio_file" gorm:"not null;size:512;uniqueIndex:idx_track_audio_file"`
	OriginalFilename string     `json:"original_filename" gorm:"size:255"`
	DurationMS       int64      `json:"duration_ms" gorm:"column:duration_ms;not null;default:0"`
	SizeBytes        int64      `json:"size_bytes" gorm:"column:size_bytes;not null;default:0"`
	UploadFinishedAt *time.Time `json:"upload_finished_at" gorm:"index"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	Timings []RecitationAyahTiming `json:"timings,omitempty" gorm:"foreignKey:TrackID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the RecitationSurahTrack model
func (RecitationSurahTrack) TableName() string {
	return "recitation_surah_tracks"
}

// IsFinalized reports whether the upload for this track has been completed
func (t *RecitationSurahTrack) IsFinalized() bool {
	return t.UploadFinishedAt != nil
}

// RecitationAyahTiming is the start/end offset of one ayah inside a track
type RecitationAyahTiming struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	TrackID    uint   `json:"track_id" gorm:"not null;uniqueIndex:idx_timing_track_ayah,priority:1"`
	AyahKey    string `json:"ayah_key" gorm:"not null;size:16;uniqueIndex:idx_timing_track_ayah,priority:2"`
	StartMS    int64  `json:"start_ms" gorm:"column:start_ms;not null"`
	EndMS      int64  `json:"end_ms" gorm:"column:end_ms;not null"`
	DurationMS int64  `json:"duration_ms" gorm:"column:duration_ms;not null"`
}

// TableName returns the table name for the RecitationAyahTiming model
func (RecitationAyahTiming) TableName() string {
	return "recitation_ayah_timings"
}

// AyahKey formats a "surah:ayah" key
func AyahKey(surah, ayah int) string {
	return strconv.Itoa(surah) + ":" + strconv.Itoa(ayah)
}

// ParseAyahKey splits a "surah:ayah" key into its integer parts
func ParseAyahKey(key string) (surah int, ayah int, err error) {
	left, right, ok := strings.Cut(strings.TrimSpace(key), ":")
	if !ok {
		return 0, 0, fmt.Errorf("ayah key %q: missing ':'", key)
	}
	surah, err = strconv.Atoi(left)
	if err != nil {
		return 0, 0, fmt.Errorf("ayah key %q: bad surah: %w", key, err)
	}
	ayah, err = strconv.Atoi(right)
	if err != nil {
		return 0, 0, fmt.Errorf("ayah key %q: bad ayah: %w", key, err)
	}
	if surah < MinSurahNumber || surah > MaxSurahNumber || ayah < 1 {
		return 0, 0, fmt.Errorf("ayah key %q out of range", key)
	}
	return surah, ayah, nil
}
