// Package images stores uploaded product photos and hands back the public URL
// that is saved on the product row.
package images

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/config"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	"github.com/google/uuid"
)

var ErrUnsupportedType = errors.New("unsupported image type")

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

type Store interface {
	// Save writes the image under a fresh unique name and returns its public URL.
	Save(ctx context.Context, img *models.Image) (string, error)
	// Delete removes the object behind a URL previously returned by Save.
	// Unknown URLs are ignored.
	Delete(ctx context.Context, url string) error
}

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// New picks the driver named in cfg.Uploads.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Uploads.Driver {
	case "", DriverLocal:
		return NewDiskStore(cfg.Uploads.Dir, cfg.Uploads.URLPrefix)
	case DriverS3:
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, errors.New("unknown uploads driver: " + cfg.Uploads.Driver)
	}
}

// objectName keeps the uploaded extension when it matches the sniffed type.
func objectName(img *models.Image) (string, string, error) {
	contentType := img.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(img.Data)
	}

	defaultExt, ok := allowedTypes[contentType]
	if !ok {
		return "", "", ErrUnsupportedType
	}

	ext := strings.ToLower(filepath.Ext(img.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		ext = defaultExt
	}

	return uuid.NewString() + ext, contentType, nil
}
