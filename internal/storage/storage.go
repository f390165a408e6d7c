package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/yoockh/folio/config"
)

type Uploader interface {
	// Upload stores r under objectName and returns its public URL.
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (publicURL string, err error)
}

type Store interface {
	Uploader
	Delete(ctx context.Context, objectName string) error
	Close() error
}

// New builds the Store selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "gcs":
		return NewGCSStore(ctx, cfg)
	case "s3":
		return NewS3Uploader(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.Driver)
	}
}

// Uploaded objects are content-addressed by key and never rewritten.
const immutableCache = "public, max-age=31536000, immutable"

// publicURL joins base and an object key, escaping each key segment.
func publicURL(base, objectName string) string {
	parts := strings.Split(strings.TrimLeft(objectName, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(parts, "/")
}
