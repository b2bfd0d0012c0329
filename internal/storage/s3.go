// Package storage uploads binary assets to an S3-compatible bucket and
// resolves their public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/atelierdv/portfolio-migrator/internal/config"
)

// ObjectStore is the storage surface the loaders and the upload endpoint
// need: write an object, look up its public URL.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PublicURL(key string) string
}

// Store implements ObjectStore against AWS S3 or any S3-compatible backend
// (MinIO, Supabase storage) via a custom endpoint.
type Store struct {
	client  *s3.Client
	bucket  string
	region  string
	baseURL *url.URL // set when a custom endpoint is configured
}

// New creates an object store from configuration. The bucket is required;
// credentials come from the default AWS chain.
func New(ctx context.Context, cfg config.Storage) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load storage credentials: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	var base *url.URL
	if cfg.Endpoint != "" {
		if u, err := url.Parse(cfg.Endpoint); err == nil {
			base = u
		}
	}

	return &Store{
		client:  client,
		bucket:  cfg.Bucket,
		region:  region,
		baseURL: base,
	}, nil
}

// Upload writes an object under key. Existing objects are overwritten; the
// loaders build collision-free keys from timestamps.
func (s *Store) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = &contentType
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// PublicURL returns the unauthenticated URL of an uploaded object. With a
// custom endpoint the path-style form is used; otherwise the standard
// virtual-hosted S3 form.
func (s *Store) PublicURL(key string) string {
	key = strings.TrimPrefix(key, "/")
	if s.baseURL != nil {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.baseURL.String(), "/"), s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
