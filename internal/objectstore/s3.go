package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/qurancms/recitation-api/pkg/config"
)

// S3 is a Gateway backed by the AWS SDK, configured for Cloudflare R2 style
// endpoints (custom endpoint, path-style addressing, SigV4, region "auto").
type S3 struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

// NewS3 builds an S3 gateway from storage settings
func NewS3(ctx context.Context, cfg config.StorageConfig) (*S3, error) {
	if cfg.SignatureVersion != "" && cfg.SignatureVersion != "s3v4" {
		return nil, fmt.Errorf("unsupported signature version %q: only s3v4 is available", cfg.SignatureVersion)
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.AddressingStyle == "" || cfg.AddressingStyle == "path"
		// R2 rejects the default trailing CRC checksums on multipart parts
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	return &S3{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
	}, nil
}

func (g *S3) CreateMultipart(ctx context.Context, key StoreKey, contentType string) (string, error) {
	out, err := g.client.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(string(key)),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("create multipart %s: %w", key, classifyS3Error(err))
	}
	return aws.ToString(out.UploadId), nil
}

func (g *S3) SignPartURL(ctx context.Context, key StoreKey, uploadID string, partNumber int32, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultPartURLTTL
	}
	req, err := g.presigner.PresignUploadPart(ctx, &s3.UploadPartInput{
		Bucket:     aws.String(g.bucket),
		Key:        aws.String(string(key)),
		UploadId:   aws.String(uploadID),
		PartNumber: aws.Int32(partNumber),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign part %d of %s: %w", partNumber, key, err)
	}
	return req.URL, nil
}

func (g *S3) CompleteMultipart(ctx context.Context, key StoreKey, uploadID string, parts []CompletedPart) error {
	completed := make([]s3types.CompletedPart, 0, len(parts))
	for _, p := range parts {
		completed = append(completed, s3types.CompletedPart{
			ETag:       aws.String(p.ETag),
			PartNumber: aws.Int32(p.PartNumber),
		})
	}

	_, err := g.client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(g.bucket),
		Key:             aws.String(string(key)),
		UploadId:        aws.String(uploadID),
		MultipartUpload: &s3types.CompletedMultipartUpload{Parts: completed},
	}, func(o *s3.Options) {
		o.RetryMaxAttempts = 1
	})
	if err != nil {
		return fmt.Errorf("complete multipart %s: %w", key, classifyS3Error(err))
	}
	return nil
}

func (g *S3) AbortMultipart(ctx context.Context, key StoreKey, uploadID string) error {
	_, err := g.client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(g.bucket),
		Key:      aws.String(string(key)),
		UploadId: aws.String(uploadID),
	})
	if err != nil {
		classified := classifyS3Error(err)
		if errors.Is(classified, ErrNoSuchUpload) || errors.Is(classified, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("abort multipart %s: %w", key, classified)
	}
	return nil
}

func (g *S3) HeadObject(ctx context.Context, key StoreKey) (ObjectInfo, error) {
	out, err := g.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(string(key)),
	})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("head %s: %w", key, classifyS3Error(err))
	}
	return ObjectInfo{
		ContentLength: aws.ToInt64(out.ContentLength),
		LastModified:  aws.ToTime(out.LastModified).UTC(),
	}, nil
}

func (g *S3) GetObject(ctx context.Context, key StoreKey) (io.ReadCloser, error) {
	out, err := g.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(string(key)),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, classifyS3Error(err))
	}
	return out.Body, nil
}

func (g *S3) PutObject(ctx context.Context, key StoreKey, body io.Reader, size int64, contentType, cacheControl string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(g.bucket),
		Key:           aws.String(string(key)),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	}
	if cacheControl != "" {
		input.CacheControl = aws.String(cacheControl)
	}
	if _, err := g.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put %s: %w", key, classifyS3Error(err))
	}
	return nil
}

func (g *S3) DeleteObject(ctx context.Context, key StoreKey) error {
	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(string(key)),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, classifyS3Error(err))
	}
	return nil
}

func (g *S3) ListInProgressMultiparts(ctx context.Context, prefix StoreKey) ([]MultipartUpload, error) {
	var (
		uploads        []MultipartUpload
		keyMarker      *string
		uploadIDMarker *string
	)

	for {
		out, err := g.client.ListMultipartUploads(ctx, &s3.ListMultipartUploadsInput{
			Bucket:         aws.String(g.bucket),
			Prefix:         aws.String(string(prefix)),
			KeyMarker:      keyMarker,
			UploadIdMarker: uploadIDMarker,
		})
		if err != nil {
			return nil, fmt.Errorf("list multipart uploads under %s: %w", prefix, classifyS3Error(err))
		}

		for _, u := range out.Uploads {
			uploads = append(uploads, MultipartUpload{
				Key:         StoreKey(aws.ToString(u.Key)),
				UploadID:    aws.ToString(u.UploadId),
				InitiatedAt: aws.ToTime(u.Initiated).UTC(),
			})
		}

		if !aws.ToBool(out.IsTruncated) {
			return uploads, nil
		}
		keyMarker = out.NextKeyMarker
		uploadIDMarker = out.NextUploadIdMarker
	}
}

// Ping checks that the bucket is reachable with the configured credentials
func (g *S3) Ping(ctx context.Context) error {
	_, err := g.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(g.bucket)})
	return err
}

// classifyS3Error maps S3 error codes onto the package sentinels
func classifyS3Error(err error) error {
	var nsu *s3types.NoSuchUpload
	if errors.As(err, &nsu) {
		return fmt.Errorf("%w: %v", ErrNoSuchUpload, err)
	}
	var nf *s3types.NotFound
	var nsk *s3types.NoSuchKey
	if errors.As(err, &nf) || errors.As(err, &nsk) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchUpload":
			return fmt.Errorf("%w: %v", ErrNoSuchUpload, err)
		case "NotFound", "NoSuchKey":
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case "InvalidPart", "InvalidPartOrder", "EntityTooSmall":
			return fmt.Errorf("%w: %v", ErrInvalidPart, err)
		}
	}

	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
