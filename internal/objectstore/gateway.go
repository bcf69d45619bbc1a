// Package objectstore wraps the S3 multipart protocol against a single bucket.
package objectstore

import (
	"context"
	"errors"
	"io"
	"time"
)

const (
	// ContentTypeMP3 is the only content type accepted for track uploads
	ContentTypeMP3 = "audio/mpeg"

	// MinPartNumber and MaxPartNumber bound S3 multipart part numbers
	MinPartNumber = 1
	MaxPartNumber = 10000

	// DefaultPartURLTTL is the presigned part URL lifetime when none is configured
	DefaultPartURLTTL = time.Hour
)

var (
	// ErrNoSuchUpload is returned when the store does not know the upload id
	ErrNoSuchUpload = errors.New("objectstore: no such upload")
	// ErrNotFound is returned when an object does not exist
	ErrNotFound = errors.New("objectstore: object not found")
	// ErrInvalidPart is returned when a completion part list does not match the uploaded parts
	ErrInvalidPart = errors.New("objectstore: invalid part list")
)

// CompletedPart is one (part number, etag) pair echoed back by the browser
type CompletedPart struct {
	PartNumber int32  `json:"PartNumber"`
	ETag       string `json:"ETag"`
}

// ObjectInfo is the subset of object metadata the coordinator needs
type ObjectInfo struct {
	ContentLength int64
	LastModified  time.Time
}

// MultipartUpload is an in-progress upload reported by the store
type MultipartUpload struct {
	Key         StoreKey
	UploadID    string
	InitiatedAt time.Time
}

// Gateway is the object store surface used by the ingestion services.
// Implementations normalize every returned timestamp to UTC.
type Gateway interface {
	CreateMultipart(ctx context.Context, key StoreKey, contentType string) (string, error)
	SignPartURL(ctx context.Context, key StoreKey, uploadID string, partNumber int32, ttl time.Duration) (string, error)
	// CompleteMultipart is not idempotent and is never retried
	CompleteMultipart(ctx context.Context, key StoreKey, uploadID string, parts []CompletedPart) error
	// AbortMultipart treats an unknown upload as already aborted
	AbortMultipart(ctx context.Context, key StoreKey, uploadID string) error
	HeadObject(ctx context.Context, key StoreKey) (ObjectInfo, error)
	GetObject(ctx context.Context, key StoreKey) (io.ReadCloser, error)
	PutObject(ctx context.Context, key StoreKey, body io.Reader, size int64, contentType, cacheControl string) error
	DeleteObject(ctx context.Context, key StoreKey) error
	ListInProgressMultiparts(ctx context.Context, prefix StoreKey) ([]MultipartUpload, error)
}

// Pinger is implemented by gateways that can check bucket reachability
type Pinger interface {
	Ping(ctx context.Context) error
}
