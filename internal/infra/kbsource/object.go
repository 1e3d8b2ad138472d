package kbsource

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/ccs-faqbot/internal/domain/faq"
	"github.com/yanqian/ccs-faqbot/internal/infra/config"
)

// ObjectSource reads a YAML knowledge base from an S3-compatible bucket (R2, MinIO).
type ObjectSource struct {
	client *minio.Client
	bucket string
	key    string
	logger *slog.Logger
}

// NewObjectSource constructs the bucket reader.
func NewObjectSource(cfg config.S3Config, logger *slog.Logger) (*ObjectSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	useSSL := !strings.HasPrefix(strings.ToLower(strings.TrimSpace(cfg.Endpoint)), "http://")
	client, err := minio.New(sanitizeEndpoint(cfg.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       useSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, sourceError("init object storage client", err)
	}
	return &ObjectSource{
		client: client,
		bucket: cfg.Bucket,
		key:    cfg.Key,
		logger: logger.With("bucket", cfg.Bucket, "key", cfg.Key),
	}, nil
}

// Load implements Source.
func (s *ObjectSource) Load(ctx context.Context) (*faq.KnowledgeBase, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, sourceError(fmt.Sprintf("get object %s/%s", s.bucket, s.key), err)
	}
	defer obj.Close()
	info, err := obj.Stat()
	if err != nil {
		return nil, sourceError(fmt.Sprintf("stat object %s/%s", s.bucket, s.key), err)
	}
	s.logger.Debug("knowledge base object found", "size", info.Size, "etag", info.ETag)
	return Decode(obj)
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if idx := strings.Index(raw, "/"); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}
