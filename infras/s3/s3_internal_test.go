package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodging/config"
	"lodging/infras/otel/mocks"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)

	return &s3.PutObjectOutput{}, f.err
}

func newTestS3(putter *fakePutter, publicDomain string) *s3Impl {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "reports"
	cfg.External.S3.APIEndpoint = "http://minio:9000"
	cfg.External.S3.PublicDomain = publicDomain

	return &s3Impl{client: putter, config: cfg, otel: mocks.NewOtel()}
}

func TestUploadFileBytes(t *testing.T) {
	t.Run("uses default bucket and public domain", func(t *testing.T) {
		putter := &fakePutter{}
		svc := newTestS3(putter, "https://cdn.example.com/")

		url, err := svc.UploadFileBytes(context.Background(), "", "revenue", "2024-03.json", "application/json", []byte(`{"revenue":"300.00"}`))

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/revenue/2024-03.json", url)
		assert.Equal(t, "reports", aws.ToString(putter.input.Bucket))
		assert.Equal(t, "revenue/2024-03.json", aws.ToString(putter.input.Key))
		assert.Equal(t, int64(20), aws.ToInt64(putter.input.ContentLength))
		assert.JSONEq(t, `{"revenue":"300.00"}`, string(putter.body))
	})

	t.Run("falls back to the api endpoint", func(t *testing.T) {
		svc := newTestS3(&fakePutter{}, "")

		url, err := svc.UploadFileBytes(context.Background(), "archive", "revenue", "2024-03.json", "application/json", []byte(`{}`))

		require.NoError(t, err)
		assert.Equal(t, "http://minio:9000/archive/revenue/2024-03.json", url)
	})

	t.Run("put failure", func(t *testing.T) {
		svc := newTestS3(&fakePutter{err: errors.New("access denied")}, "")

		url, err := svc.UploadFileBytes(context.Background(), "", "revenue", "x.json", "application/json", nil)

		assert.Error(t, err)
		assert.Empty(t, url)
	})
}
