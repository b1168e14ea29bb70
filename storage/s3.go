// Package storage uploads finished render artifacts to S3-compatible
// object storage.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const videoContentType = "video/mp4"

// Config carries the bucket target for artifact uploads. Credentials and
// anything unset here come from the standard AWS config chain.
type Config struct {
	Region string
	Bucket string
	// Prefix is joined in front of every object key, e.g. "renders".
	Prefix string
	// UsePathStyle forces path-style addressing for S3-compatible providers.
	UsePathStyle bool
}

// S3 stores render outputs in a single bucket. It satisfies
// jobs.ArtifactUploader.
type S3 struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3(ctx context.Context, cfg Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})
	return &S3{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Upload puts the local file at key (under the configured prefix) and
// returns the object's s3:// URL.
func (s *S3) Upload(ctx context.Context, localPath, key string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("s3: open artifact: %w", err)
	}
	defer f.Close()

	objectKey := s.objectKey(key)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        f,
		ContentType: aws.String(videoContentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3: put %s: %w", objectKey, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, objectKey), nil
}

// Delete removes the object stored under key.
func (s *S3) Delete(ctx context.Context, key string) error {
	objectKey := s.objectKey(key)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("s3: delete %s: %w", objectKey, err)
	}
	return nil
}

func (s *S3) objectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}
