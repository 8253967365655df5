// Package archive copies generated report exports to S3-compatible storage.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/cloksy/cloksy-backend/pkg/config"
)

// overridden in tests
var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

// ObjectPutter is the subset of *s3.Client the archiver needs
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archiver uploads export files under a dated key prefix
type Archiver struct {
	client ObjectPutter
	bucket string
	prefix string
	now    func() time.Time
}

// New builds an S3 client from cfg. A non-empty Endpoint selects an
// S3-compatible store (MinIO) with path-style addressing.
func New(ctx context.Context, cfg config.ArchiveConfig) (*Archiver, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewWithClient wraps an existing client
func NewWithClient(client ObjectPutter, bucket, prefix string) *Archiver {
	return &Archiver{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

// Key returns the object key for an export named name
func (a *Archiver) Key(name string) string {
	d := a.now().UTC()
	return path.Join(a.prefix, d.Format("2006/01/02"), uuid.New().String()+"-"+name)
}

// Store uploads data and returns the object key
func (a *Archiver) Store(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := a.Key(name)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", name, err)
	}
	return key, nil
}
