package delivery

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"invoicer/internal/logger"
)

// GCSDeliverer uploads documents to a Cloud Storage bucket.
type GCSDeliverer struct {
	client *storage.Client
	bucket string
	folder string
	log    zerolog.Logger
}

// NewGCSDeliverer connects to Cloud Storage. Inline service-account JSON in
// GOOGLE_CREDENTIALS is used when set; otherwise Application Default
// Credentials apply.
func NewGCSDeliverer(ctx context.Context, bucket, folder string) (*GCSDeliverer, error) {
	const op = "NewGCSDeliverer"

	var opts []option.ClientOption
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); strings.TrimSpace(credJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create storage client: %w", op, err)
	}

	return &GCSDeliverer{
		client: client,
		bucket: bucket,
		folder: strings.Trim(folder, "/"),
		log:    logger.WithComponent("delivery"),
	}, nil
}

// ObjectName returns the object key name is stored under.
func (d *GCSDeliverer) ObjectName(name string) string {
	if d.folder == "" {
		return name
	}
	return path.Join(d.folder, name)
}

// Deliver uploads data and returns its gs:// URI.
func (d *GCSDeliverer) Deliver(ctx context.Context, name string, data []byte) (string, error) {
	const op = "GCSDeliverer.Deliver"

	object := d.ObjectName(name)

	w := d.client.Bucket(d.bucket).Object(object).NewWriter(ctx)
	w.ContentType = "application/pdf"

	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("%s: failed to upload %s: %w", op, object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%s: failed to finalize %s: %w", op, object, err)
	}

	location := fmt.Sprintf("gs://%s/%s", d.bucket, object)
	d.log.Info().
		Str("location", location).
		Int("bytes", len(data)).
		Msg("Document uploaded")

	return location, nil
}

// Close releases the storage client.
func (d *GCSDeliverer) Close() error {
	return d.client.Close()
}
