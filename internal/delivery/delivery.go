// Package delivery hands rendered documents to their destination.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"invoicer/internal/config"
)

// Channel names accepted in DELIVERY_CHANNEL.
const (
	ChannelFile = "file"
	ChannelGCS  = "gcs"
)

// ErrUnknownChannel is returned by New for an unsupported channel name.
var ErrUnknownChannel = errors.New("unknown delivery channel")

// Deliverer stores a finished document and reports where it went.
type Deliverer interface {
	Deliver(ctx context.Context, name string, data []byte) (location string, err error)
}

var fileNameReplacer = strings.NewReplacer(
	"/", "-", "\\", "-", ":", "-", "*", "-", "?", "-",
	"\"", "-", "<", "-", ">", "-", "|", "-",
)

// FileName returns the artifact name for an invoice: Invoice-{number}.pdf.
// Characters that are not allowed in file or object names are replaced.
func FileName(invoiceNumber string) string {
	return "Invoice-" + fileNameReplacer.Replace(strings.TrimSpace(invoiceNumber)) + ".pdf"
}

// New returns the Deliverer for the configured channel. channel overrides
// cfg.DeliveryChannel when non-empty.
func New(ctx context.Context, cfg *config.Config, channel string) (Deliverer, error) {
	const op = "New"

	if channel == "" {
		channel = cfg.DeliveryChannel
	}

	switch strings.ToLower(channel) {
	case ChannelFile:
		return NewFileDeliverer(cfg.OutputDir), nil
	case ChannelGCS:
		if cfg.GCSOutputBucket == "" {
			return nil, fmt.Errorf("%s: GCS_OUTPUT_BUCKET is required for gcs delivery", op)
		}
		return NewGCSDeliverer(ctx, cfg.GCSOutputBucket, cfg.GCSOutputFolder)
	default:
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownChannel, channel)
	}
}
