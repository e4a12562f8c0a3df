package imagestore

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wearapp_hotels/internal/adapters/observability"
)

// URLPrefix is the public path prefix under which stored images are served.
const URLPrefix = "/uploads"

// Disk persists uploaded images in a single local directory. Filenames are
// generated, so concurrent saves never collide; only the extension of the
// client-supplied name is kept.
type Disk struct{ dir string }

func New(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Disk{dir: dir}, nil
}

func (d *Disk) Save(ctx context.Context, originalName string, data io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(originalName)
	dst := filepath.Join(d.dir, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		_ = os.Remove(dst)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", err
	}
	observability.ObserveFile("saved")
	return URLPrefix + "/" + name, nil
}

func (d *Disk) Remove(ctx context.Context, relPath string) error {
	// Only the basename is trusted; the stored path is client-visible data.
	abs := filepath.Join(d.dir, filepath.Base(relPath))
	if err := os.Remove(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("path", abs).Msg("image file already gone")
			return nil
		}
		return err
	}
	observability.ObserveFile("removed")
	return nil
}
