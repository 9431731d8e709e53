package report

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	logger "github.com/tigerroll/stride/pkg/run/support/util/logger"
)

// GCSSink writes run summaries as JSON objects into a Cloud Storage
// bucket under an optional key prefix.
type GCSSink struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSSink creates a GCSSink for the given bucket. opts are passed to
// the storage client, e.g. option.WithCredentialsFile.
func NewGCSSink(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*GCSSink, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSSink{client: client, bucket: bucket, prefix: prefix}, nil
}

// Write implements Sink.
func (s *GCSSink) Write(ctx context.Context, summary *Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}

	object := path.Join(s.prefix, summary.RunID+".json")
	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to upload run summary to gs://%s/%s: %w", s.bucket, object, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize run summary upload to gs://%s/%s: %w", s.bucket, object, err)
	}
	logger.Debugf("Run summary uploaded to gs://%s/%s.", s.bucket, object)
	return nil
}

// Close releases the underlying storage client.
func (s *GCSSink) Close() error {
	return s.client.Close()
}

var _ Sink = (*GCSSink)(nil)
