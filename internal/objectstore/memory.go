package objectstore

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Operation names accepted by Memory.FailNext and Memory.Calls
const (
	OpCreateMultipart   = "CreateMultipart"
	OpSignPartURL       = "SignPartURL"
	OpCompleteMultipart = "CompleteMultipart"
	OpAbortMultipart    = "AbortMultipart"
	OpHeadObject        = "HeadObject"
	OpGetObject         = "GetObject"
	OpPutObject         = "PutObject"
	OpDeleteObject      = "DeleteObject"
	OpListMultiparts    = "ListInProgressMultiparts"
)

type memoryPart struct {
	etag string
	data []byte
}

type memoryUpload struct {
	key         StoreKey
	contentType string
	initiatedAt time.Time
	parts       map[int32]memoryPart
}

// StoredObject is a finished object held by the Memory gateway
type StoredObject struct {
	Data         []byte
	ContentType  string
	CacheControl string
	LastModified time.Time
}

// Memory is an in-process Gateway. It backs the "memory" storage driver for
// local development and stands in for the bucket in tests.
type Memory struct {
	mu       sync.Mutex
	bucket   string
	now      func() time.Time
	uploads  map[string]*memoryUpload
	objects  map[StoreKey]StoredObject
	failures map[string]error
	calls    map[string]int
}

// NewMemory creates an empty in-memory bucket
func NewMemory(bucket string) *Memory {
	if bucket == "" {
		bucket = "memory"
	}
	return &Memory{
		bucket:   bucket,
		now:      func() time.Time { return time.Now().UTC() },
		uploads:  make(map[string]*memoryUpload),
		objects:  make(map[StoreKey]StoredObject),
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
}

// SetClock replaces the time source used for initiation and modification times
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// FailNext makes the next call to op return err
func (m *Memory) FailNext(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op] = err
}

// Calls returns how many times op has been invoked
func (m *Memory) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// enter records a call and pops an injected failure. Caller holds mu.
func (m *Memory) enter(op string) error {
	m.calls[op]++
	if err, ok := m.failures[op]; ok {
		delete(m.failures, op)
		return err
	}
	return nil
}

func (m *Memory) CreateMultipart(ctx context.Context, key StoreKey, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(OpCreateMultipart); err != nil {
		return "", err
	}

	uploadID := uuid.NewString()
	m.uploads[uploadID] = &memoryUpload{
		key:         key,
		contentType: contentType,
		initiatedAt: m.now().UTC(),
		parts:       make(map[int32]memoryPart),
	}
	return uploadID, nil
}

// SignPartURL does not consult the upload table, matching S3 presigning
func (m *Memory) SignPartURL(ctx context.Context, key StoreKey, uploadID string, partNumber int32, ttl time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(OpSignPartURL); err != nil {
		return "", err
	}
	if ttl <= 0 {
		ttl = DefaultPartURLTTL
	}

	q := url.Values{}
	q.Set("partNumber", fmt.Sprint(partNumber))
	q.Set("uploadId", uploadID)
	q.Set("X-Amz-Expires", fmt.Sprint(int(ttl.Seconds())))
	u := url.URL{Scheme: "memory", Host: m.bucket, Path: "/" + string(key), RawQuery: q.Encode()}
	return u.String(), nil
}

// UploadPart stores one part the way a browser PUT to a presigned URL would
// and returns its ETag.
func (m *Memory) UploadPart(key StoreKey, uploadID string, partNumber int32, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	up, ok := m.uploads[uploadID]
	if !ok || up.key != key {
		return "", ErrNoSuchUpload
	}
	if partNumber < MinPartNumber || partNumber > MaxPartNumber {
		return "", fmt.Errorf("%w: part number %d", ErrInvalidPart, partNumber)
	}
	sum := md5.Sum(data)
	etag := `"` + hex.EncodeToString(sum[:]) + `"`
	up.parts[partNumber] = memoryPart{etag: etag, data: append([]byte(nil), data...)}
	return etag, nil
}

func (m *Memory) CompleteMultipart(ctx context.Context, key StoreKey, uploadID string, parts []CompletedPart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(OpCompleteMultipart); err != nil {
		return err
	}

	up, ok := m.uploads[uploadID]
	if !ok || up.key != key {
		return fmt.Errorf("complete multipart %s: %w", key, ErrNoSuchUpload)
	}
	if len(parts) == 0 {
		return fmt.Errorf("complete multipart %s: %w: empty part list", key, ErrInvalidPart)
	}

	var buf bytes.Buffer
	var last int32
	for _, p := range parts {
		if p.PartNumber <= last {
			return fmt.Errorf("complete multipart %s: %w: parts out of order", key, ErrInvalidPart)
		}
		last = p.PartNumber
		stored, ok := up.parts[p.PartNumber]
		if !ok || normalizeETag(stored.etag) != normalizeETag(p.ETag) {
			return fmt.Errorf("complete multipart %s: %w: part %d", key, ErrInvalidPart, p.PartNumber)
		}
		buf.Write(stored.data)
	}

	m.objects[key] = StoredObject{
		Data:         buf.Bytes(),
		ContentType:  up.contentType,
		LastModified: m.now().UTC(),
	}
	delete(m.uploads, uploadID)
	return nil
}

func (m *Memory) AbortMultipart(ctx context.Context, key StoreKey, uploadID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(OpAbortMultipart); err != nil {
		return err
	}
	if up, ok := m.uploads[uploadID]; ok && up.key == key {
		delete(m.uploads, uploadID)
	}
	return nil
}

func (m *Memory) HeadObject(ctx context.Context, key StoreKey) (ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(OpHeadObject); err != nil {
		return ObjectInfo{}, err
	}
	obj, ok := m.objects[key]
	if !ok {
		return ObjectInfo{}, fmt.Errorf("head %s: %w", key, ErrNotFound)
	}
	return ObjectInfo{ContentLength: int64(len(obj.Data)), LastModified: obj.LastModified}, nil
}

func (m *Memory) GetObject(ctx context.Context, key StoreKey) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(OpGetObject); err != nil {
		return nil, err
	}
	obj, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", key, ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(obj.Data)), nil
}

func (m *Memory) PutObject(ctx context.Context, key StoreKey, body io.Reader, size int64, contentType, cacheControl string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(OpPutObject); err != nil {
		return err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	m.objects[key] = StoredObject{
		Data:         data,
		ContentType:  contentType,
		CacheControl: cacheControl,
		LastModified: m.now().UTC(),
	}
	return nil
}

func (m *Memory) DeleteObject(ctx context.Context, key StoreKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(OpDeleteObject); err != nil {
		return err
	}
	delete(m.objects, key)
	return nil
}

func (m *Memory) ListInProgressMultiparts(ctx context.Context, prefix StoreKey) ([]MultipartUpload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(OpListMultiparts); err != nil {
		return nil, err
	}

	uploads := make([]MultipartUpload, 0, len(m.uploads))
	for id, up := range m.uploads {
		if !strings.HasPrefix(string(up.key), string(prefix)) {
			continue
		}
		uploads = append(uploads, MultipartUpload{Key: up.key, UploadID: id, InitiatedAt: up.initiatedAt})
	}
	sort.Slice(uploads, func(i, j int) bool {
		if uploads[i].Key != uploads[j].Key {
			return uploads[i].Key < uploads[j].Key
		}
		return uploads[i].UploadID < uploads[j].UploadID
	})
	return uploads, nil
}

// Ping always succeeds
func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

// Backdate moves an in-progress upload's initiation time
func (m *Memory) Backdate(uploadID string, initiatedAt time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	up, ok := m.uploads[uploadID]
	if ok {
		up.initiatedAt = initiatedAt.UTC()
	}
	return ok
}

// HasUpload reports whether an upload is still in progress
func (m *Memory) HasUpload(uploadID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.uploads[uploadID]
	return ok
}

// UploadCount returns the number of in-progress uploads
func (m *Memory) UploadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.uploads)
}

// Object returns a stored object
func (m *Memory) Object(key StoreKey) (StoredObject, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	return obj, ok
}

func normalizeETag(etag string) string {
	return strings.Trim(etag, `"`)
}
