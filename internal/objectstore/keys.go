package objectstore

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MediaPrefix separates the storage namespace from the keys kept in the database
const MediaPrefix = "media/"

// TracksPrefix is the store prefix under which every track upload lives
const TracksPrefix = StoreKey(MediaPrefix + "uploads/assets/")

// DBKey is a storage key as persisted in the database, without MediaPrefix
type DBKey string

// StoreKey is the key actually used against the bucket
type StoreKey string

var trackKeyPattern = regexp.MustCompile(`^uploads/assets/(\d+)/recitations/(\d{3})\.mp3$`)

// TrackKey builds the canonical database key for an asset's surah track
func TrackKey(assetID uint, surahNumber int) DBKey {
	return DBKey(fmt.Sprintf("uploads/assets/%d/recitations/%03d.mp3", assetID, surahNumber))
}

// StoreKey maps a database key into the bucket namespace
func (k DBKey) StoreKey() StoreKey {
	return StoreKey(MediaPrefix + string(k))
}

func (k DBKey) String() string { return string(k) }

// DBKey strips the bucket namespace
func (k StoreKey) DBKey() DBKey {
	return DBKey(strings.TrimPrefix(string(k), MediaPrefix))
}

func (k StoreKey) String() string { return string(k) }

// ParseTrackKey validates a client supplied key and returns its database form.
// Keys are accepted with or without MediaPrefix.
func ParseTrackKey(raw string) (key DBKey, assetID uint, surahNumber int, err error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), MediaPrefix)
	m := trackKeyPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", 0, 0, fmt.Errorf("%q is not a recitation track key", raw)
	}
	id, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("%q: bad asset id: %w", raw, err)
	}
	surahNumber, _ = strconv.Atoi(m[2])
	return DBKey(trimmed), uint(id), surahNumber, nil
}

// ManifestKey is the database key of an asset's published manifest
func ManifestKey(assetID uint, filename string) DBKey {
	return DBKey(fmt.Sprintf("uploads/assets/%d/manifests/%s", assetID, filename))
}

// PublicURL joins a CDN base URL with the store form of key
func PublicURL(baseURL string, key DBKey) string {
	return strings.TrimRight(baseURL, "/") + "/" + string(key.StoreKey())
}
