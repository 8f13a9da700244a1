package images

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
)

// DiskStore keeps images in a directory served under urlPrefix.
type DiskStore struct {
	dir       string
	urlPrefix string
}

func NewDiskStore(dir, urlPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("images/disk: mkdir %s: %w", dir, err)
	}

	return &DiskStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (d *DiskStore) Save(_ context.Context, img *models.Image) (string, error) {

	name, _, err := objectName(img)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(d.dir, name), img.Data, 0o644); err != nil {
		return "", fmt.Errorf("images/disk: write %s: %w", name, err)
	}

	return d.urlPrefix + "/" + name, nil
}

func (d *DiskStore) Delete(_ context.Context, url string) error {

	if !strings.HasPrefix(url, d.urlPrefix+"/") {
		return nil
	}

	name := path.Base(url)

	err := os.Remove(filepath.Join(d.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("images/disk: delete %s: %w", name, err)
	}

	return nil
}

// Ping reports whether the upload directory is still writable.
func (d *DiskStore) Ping(_ context.Context) error {
	f, err := os.CreateTemp(d.dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("images/disk: %s not writable: %w", d.dir, err)
	}

	name := f.Name()
	f.Close()

	return os.Remove(name)
}
