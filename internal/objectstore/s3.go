package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/punchamoorthee/backoffice/internal/domain"
)

var ErrNoBucket = errors.New("object storage bucket not configured")

// Uploader stores a blob under key and returns its public URL.
type Uploader interface {
	Put(ctx context.Context, body []byte, contentType, key string) (string, error)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader writes objects to a single bucket.
type S3Uploader struct {
	client putObjectAPI
	bucket string
	region string
}

// NewS3Uploader resolves credentials through the default AWS chain
// (environment, shared config, instance role).
func NewS3Uploader(ctx context.Context, region, bucket string) (*S3Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Uploader{client: s3.NewFromConfig(cfg), bucket: bucket, region: region}, nil
}

func (u *S3Uploader) Put(ctx context.Context, body []byte, contentType, key string) (string, error) {
	if u.bucket == "" {
		return "", fmt.Errorf("%w: %w", domain.ErrUpstream, ErrNoBucket)
	}
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: put %s: %w", domain.ErrUpstream, key, err)
	}
	return u.URL(key), nil
}

func (u *S3Uploader) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
}
