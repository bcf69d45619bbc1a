package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/qurancms/recitation-api/pkg/config"
)

// Minio is a Gateway for self-hosted MinIO (or any store speaking the same
// dialect) built on minio-go's low level Core API.
type Minio struct {
	core   *minio.Core
	bucket string
}

// NewMinio builds a MinIO gateway. The endpoint may carry an http(s) scheme.
func NewMinio(cfg config.StorageConfig) (*Minio, error) {
	host, secure, err := splitEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	lookup := minio.BucketLookupPath
	if cfg.AddressingStyle == "virtual" {
		lookup = minio.BucketLookupDNS
	}

	core, err := minio.NewCore(host, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure:       secure,
		Region:       cfg.Region,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}

	return &Minio{core: core, bucket: cfg.Bucket}, nil
}

func splitEndpoint(endpoint string) (host string, secure bool, err error) {
	if !strings.Contains(endpoint, "://") {
		return endpoint, true, nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("parsing endpoint %q: %w", endpoint, err)
	}
	return u.Host, u.Scheme == "https", nil
}

func (g *Minio) CreateMultipart(ctx context.Context, key StoreKey, contentType string) (string, error) {
	uploadID, err := g.core.NewMultipartUpload(ctx, g.bucket, string(key), minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("create multipart %s: %w", key, classifyMinioError(err))
	}
	return uploadID, nil
}

func (g *Minio) SignPartURL(ctx context.Context, key StoreKey, uploadID string, partNumber int32, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultPartURLTTL
	}
	params := url.Values{}
	params.Set("partNumber", strconv.Itoa(int(partNumber)))
	params.Set("uploadId", uploadID)

	u, err := g.core.Presign(ctx, http.MethodPut, g.bucket, string(key), ttl, params)
	if err != nil {
		return "", fmt.Errorf("presign part %d of %s: %w", partNumber, key, err)
	}
	return u.String(), nil
}

func (g *Minio) CompleteMultipart(ctx context.Context, key StoreKey, uploadID string, parts []CompletedPart) error {
	completed := make([]minio.CompletePart, 0, len(parts))
	for _, p := range parts {
		completed = append(completed, minio.CompletePart{PartNumber: int(p.PartNumber), ETag: p.ETag})
	}
	if _, err := g.core.CompleteMultipartUpload(ctx, g.bucket, string(key), uploadID, completed, minio.PutObjectOptions{}); err != nil {
		return fmt.Errorf("complete multipart %s: %w", key, classifyMinioError(err))
	}
	return nil
}

func (g *Minio) AbortMultipart(ctx context.Context, key StoreKey, uploadID string) error {
	err := g.core.AbortMultipartUpload(ctx, g.bucket, string(key), uploadID)
	if err == nil {
		return nil
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchUpload", "NoSuchKey", "NotFound":
		return nil
	}
	return fmt.Errorf("abort multipart %s: %w", key, err)
}

func (g *Minio) HeadObject(ctx context.Context, key StoreKey) (ObjectInfo, error) {
	info, err := g.core.StatObject(ctx, g.bucket, string(key), minio.StatObjectOptions{})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("head %s: %w", key, classifyMinioError(err))
	}
	return ObjectInfo{ContentLength: info.Size, LastModified: info.LastModified.UTC()}, nil
}

func (g *Minio) GetObject(ctx context.Context, key StoreKey) (io.ReadCloser, error) {
	obj, err := g.core.Client.GetObject(ctx, g.bucket, string(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, classifyMinioError(err))
	}
	return obj, nil
}

func (g *Minio) PutObject(ctx context.Context, key StoreKey, body io.Reader, size int64, contentType, cacheControl string) error {
	_, err := g.core.Client.PutObject(ctx, g.bucket, string(key), body, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: cacheControl,
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, classifyMinioError(err))
	}
	return nil
}

func (g *Minio) DeleteObject(ctx context.Context, key StoreKey) error {
	if err := g.core.Client.RemoveObject(ctx, g.bucket, string(key), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete %s: %w", key, classifyMinioError(err))
	}
	return nil
}

func (g *Minio) ListInProgressMultiparts(ctx context.Context, prefix StoreKey) ([]MultipartUpload, error) {
	var (
		uploads        []MultipartUpload
		keyMarker      string
		uploadIDMarker string
	)

	for {
		result, err := g.core.ListMultipartUploads(ctx, g.bucket, string(prefix), keyMarker, uploadIDMarker, "", 1000)
		if err != nil {
			return nil, fmt.Errorf("list multipart uploads under %s: %w", prefix, classifyMinioError(err))
		}

		for _, u := range result.Uploads {
			uploads = append(uploads, MultipartUpload{
				Key:         StoreKey(u.Key),
				UploadID:    u.UploadID,
				InitiatedAt: u.Initiated.UTC(),
			})
		}

		if !result.IsTruncated {
			return uploads, nil
		}
		keyMarker = result.NextKeyMarker
		uploadIDMarker = result.NextUploadIDMarker
	}
}

// Ping checks that the bucket exists
func (g *Minio) Ping(ctx context.Context) error {
	ok, err := g.core.Client.BucketExists(ctx, g.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist", g.bucket)
	}
	return nil
}

func classifyMinioError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchUpload":
		return fmt.Errorf("%w: %v", ErrNoSuchUpload, err)
	case "NoSuchKey", "NotFound":
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case "InvalidPart", "InvalidPartOrder", "EntityTooSmall":
		return fmt.Errorf("%w: %v", ErrInvalidPart, err)
	}
	return err
}
