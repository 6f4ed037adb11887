// Package evidence stores proof-of-payment files in an opaque blob store.
package evidence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUpstream wraps blob-store failures so handlers can map them to a
// gateway-class error instead of a generic 500.
var ErrUpstream = errors.New("evidence store unavailable")

// Store is the blob-store contract: put a payload under a key and get it
// back by the URL returned from Put.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Get(ctx context.Context, rawURL string) (io.ReadCloser, error)
}

// AllowedExtension reports whether filename carries an accepted evidence
// type. The allow-list is pdf, png, jpg and jpeg, case-insensitive.
func AllowedExtension(filename string) bool {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "pdf", "png", "jpg", "jpeg":
		return true
	}
	return false
}

// ObjectKey builds a collision-resistant blob name from the record id, a
// random component and the original filename.
func ObjectKey(recordID uint, filename string) string {
	return fmt.Sprintf("%d_%s_%s", recordID, uuid.NewString(), filepath.Base(filename))
}
