// Package blob uploads exported files to S3 compatible object storage.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config holds the bucket location. Credentials fall back to the default AWS
// chain when the static keys are empty.
type Config struct {
	Bucket          string `json:"bucket" koanf:"bucket"`
	Region          string `json:"region" koanf:"region"`
	Endpoint        string `json:"endpoint" koanf:"endpoint"`
	PathStyle       bool   `json:"path_style" koanf:"path_style"`
	Prefix          string `json:"prefix" koanf:"prefix"`
	AccessKeyID     string `json:"access_key_id" koanf:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" koanf:"secret_access_key"`
}

// Uploader writes objects into a single bucket.
type Uploader struct {
	client *s3.Client
	bucket string
	prefix string
}

// New creates an Uploader from cfg.
func New(ctx context.Context, cfg Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// S3 compatible stores often reject streaming checksum trailers.
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		}
	})
	return &Uploader{client: client, bucket: cfg.Bucket, prefix: strings.Trim(cfg.Prefix, "/")}, nil
}

// Key returns the object key used for name.
func (u *Uploader) Key(name string) string {
	if u.prefix == "" {
		return name
	}
	return path.Join(u.prefix, name)
}

// Upload stores r under the prefixed name and returns the s3:// location.
func (u *Uploader) Upload(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	key := u.Key(name)
	input := &s3.PutObjectInput{Bucket: &u.bucket, Key: &key, Body: r}
	if contentType != "" {
		input.ContentType = &contentType
	}
	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", u.bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", u.bucket, key), nil
}
