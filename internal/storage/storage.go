// Package storage persists uploaded product images and returns the reference
// that is stored in a product's image field.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Upload is a validated image ready to be written.
type Upload struct {
	Name        string // object name, see ObjectName
	ContentType string
	Data        []byte
}

// ImageStore saves images and returns the public path or URL they are served from.
type ImageStore interface {
	Save(ctx context.Context, upload Upload) (string, error)
}

// ObjectName builds a unique object name of the form image-<unixmillis>-<id><ext>.
func ObjectName(ext string, now time.Time) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("image-%d-%s%s", now.UnixMilli(), uuid.NewString()[:8], ext)
}

// joinURL joins a base URL and an object key with exactly one slash.
func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
