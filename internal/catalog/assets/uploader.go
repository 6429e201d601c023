// Package assets stores project images and resolves their public URLs.
package assets

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Uploader persists an object and returns the URL it is served from.
type Uploader interface {
	Upload(ctx context.Context, obj Object) (string, error)
}

type Object struct {
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
}

var extByType = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/jpg":     "jpg",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/avif":    "avif",
	"image/svg+xml": "svg",
}

// KeyFor builds a collision-free object key of the form <slug>/<uuid>.<ext>.
// The extension comes from filename when it has one, else from contentType.
func KeyFor(slug, filename, contentType string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		ext = extByType[strings.ToLower(contentType)]
	}
	if ext == "" {
		ext = "bin"
	}
	return slug + "/" + uuid.NewString() + "." + ext
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
