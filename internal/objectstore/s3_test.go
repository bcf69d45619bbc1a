package objectstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qurancms/recitation-api/pkg/config"
)

func memoryConfig() config.StorageConfig {
	return config.StorageConfig{Driver: "memory", Bucket: "test"}
}

func r2Config() config.StorageConfig {
	return config.StorageConfig{
		Driver:           "s3",
		Bucket:           "recitations",
		Endpoint:         "https://account.r2.cloudflarestorage.com",
		AccessKeyID:      "AKIDEXAMPLE",
		SecretAccessKey:  "secret",
		Region:           "auto",
		AddressingStyle:  "path",
		SignatureVersion: "s3v4",
	}
}

func TestNewS3_RejectsOtherSignatureVersions(t *testing.T) {
	cfg := r2Config()
	cfg.SignatureVersion = "s3"
	_, err := NewS3(context.Background(), cfg)
	assert.Error(t, err)
}

func TestS3_SignPartURL(t *testing.T) {
	gw, err := NewS3(context.Background(), r2Config())
	require.NoError(t, err)

	raw, err := gw.SignPartURL(context.Background(), TrackKey(42, 7).StoreKey(), "upload-1", 3, 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "account.r2.cloudflarestorage.com", u.Host)
	// path-style addressing puts the bucket in the path
	assert.Equal(t, "/recitations/media/uploads/assets/42/recitations/007.mp3", u.Path)

	q := u.Query()
	assert.Equal(t, "3", q.Get("partNumber"))
	assert.Equal(t, "upload-1", q.Get("uploadId"))
	assert.Equal(t, "900", q.Get("X-Amz-Expires"))
	assert.Equal(t, "AWS4-HMAC-SHA256", q.Get("X-Amz-Algorithm"))
	assert.True(t, strings.HasPrefix(q.Get("X-Amz-Credential"), "AKIDEXAMPLE/"))
}

func TestClassifyS3Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "typed no such upload", err: &s3types.NoSuchUpload{}, want: ErrNoSuchUpload},
		{name: "typed no such key", err: &s3types.NoSuchKey{}, want: ErrNotFound},
		{name: "typed not found", err: &s3types.NotFound{}, want: ErrNotFound},
		{name: "generic no such upload", err: &smithy.GenericAPIError{Code: "NoSuchUpload"}, want: ErrNoSuchUpload},
		{name: "invalid part", err: &smithy.GenericAPIError{Code: "InvalidPart"}, want: ErrInvalidPart},
		{name: "invalid part order", err: fmt.Errorf("op: %w", &smithy.GenericAPIError{Code: "InvalidPartOrder"}), want: ErrInvalidPart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classifyS3Error(tt.err), tt.want)
		})
	}

	t.Run("unknown code passes through", func(t *testing.T) {
		orig := &smithy.GenericAPIError{Code: "AccessDenied"}
		got := classifyS3Error(orig)
		assert.Same(t, error(orig), got)
		assert.False(t, errors.Is(got, ErrNotFound))
	})
}

func TestMinio_SignPartURL(t *testing.T) {
	cfg := r2Config()
	cfg.Driver = "minio"
	cfg.Endpoint = "http://localhost:9000"
	cfg.Region = "us-east-1"

	gw, err := NewMinio(cfg)
	require.NoError(t, err)

	raw, err := gw.SignPartURL(context.Background(), TrackKey(1, 114).StoreKey(), "upload-2", 10000, 0)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "10000", u.Query().Get("partNumber"))
	assert.Equal(t, "upload-2", u.Query().Get("uploadId"))
	assert.Equal(t, "3600", u.Query().Get("X-Amz-Expires"))
}

func TestSplitEndpoint(t *testing.T) {
	tests := []struct {
		endpoint   string
		wantHost   string
		wantSecure bool
	}{
		{endpoint: "minio.internal:9000", wantHost: "minio.internal:9000", wantSecure: true},
		{endpoint: "http://localhost:9000", wantHost: "localhost:9000", wantSecure: false},
		{endpoint: "https://r2.example.com", wantHost: "r2.example.com", wantSecure: true},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			host, secure, err := splitEndpoint(tt.endpoint)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantSecure, secure)
		})
	}
}
