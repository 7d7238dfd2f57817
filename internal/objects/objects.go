// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package objects

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
)

var ErrStorageDisabled = errors.New("object storage is not configured")

const publicReadPolicy = `{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"AWS": ["*"]},
    "Action": ["s3:GetObject"],
    "Resource": ["arn:aws:s3:::%s/*"]
  }]
}`

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	// PublicURL is the base of the URLs handed to browsers, derived from the
	// endpoint when empty.
	PublicURL string
}

// Store keeps files in an S3 compatible object store.
type Store struct {
	client    *minio.Client
	publicURL *url.URL

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Store) availability(err error) {
	v := 1.0
	if err != nil {
		v = 0
	}
	_ = s.monitor.SetDependencyAvailability(map[string]string{"component": "object-storage"}, v)
}

// EnsureBucket creates bucket when missing and makes its objects publicly readable.
func (s *Store) EnsureBucket(ctx context.Context, bucket string) error {
	ctx, span := s.tracer.Start(ctx, "objects.Store.EnsureBucket")
	defer span.End()

	exists, err := s.client.BucketExists(ctx, bucket)
	s.availability(err)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		s.logger.Infof("created bucket %s", bucket)
	}

	if err := s.client.SetBucketPolicy(ctx, bucket, fmt.Sprintf(publicReadPolicy, bucket)); err != nil {
		return fmt.Errorf("failed to set policy on bucket %s: %w", bucket, err)
	}

	return nil
}

func (s *Store) Upload(ctx context.Context, bucket, path string, r io.Reader, size int64, contentType string) error {
	ctx, span := s.tracer.Start(ctx, "objects.Store.Upload")
	defer span.End()

	_, err := s.client.PutObject(ctx, bucket, path, r, size, minio.PutObjectOptions{ContentType: contentType})
	s.availability(err)
	if err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", bucket, path, err)
	}

	return nil
}

func (s *Store) PublicURL(bucket, object string) string {
	u := *s.publicURL
	u.Path = path.Join("/", u.Path, bucket, object)
	return u.String()
}

func NewStore(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*Store, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Transport: tracing.NewHTTPClient().Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	public := client.EndpointURL()
	if cfg.PublicURL != "" {
		if public, err = url.Parse(cfg.PublicURL); err != nil {
			return nil, fmt.Errorf("invalid object storage public url: %w", err)
		}
	}

	s := new(Store)
	s.client = client
	s.publicURL = public
	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s, nil
}

// NoopStore is used when no object storage endpoint is configured.
type NoopStore struct{}

func (NoopStore) Upload(context.Context, string, string, io.Reader, int64, string) error {
	return ErrStorageDisabled
}

func (NoopStore) PublicURL(string, string) string {
	return ""
}

func NewNoopStore() NoopStore {
	return NoopStore{}
}
