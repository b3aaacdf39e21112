package objectstore

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/punchamoorthee/backoffice/internal/domain"
)

const defaultContentType = "image/png"

// Blob is a decoded upload.
type Blob struct {
	Body        []byte
	ContentType string
	Ext         string
}

// IsDataURL reports whether s is an inline "data:" payload rather than a
// stored reference.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// Decode parses "data:<mime>;base64,<payload>". Input without a recognised
// data URL header is decoded as plain base64 PNG.
func Decode(s string) (Blob, error) {
	contentType, payload := defaultContentType, s
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		if header, data, found := strings.Cut(rest, ";base64,"); found && header != "" {
			contentType, payload = header, data
		}
	}

	body, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Blob{}, fmt.Errorf("%w: invalid base64 payload", domain.ErrValidation)
	}
	return Blob{Body: body, ContentType: contentType, Ext: extension(contentType)}, nil
}

func extension(contentType string) string {
	switch {
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return "jpg"
	case strings.Contains(contentType, "pdf"):
		return "pdf"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return "png"
	}
}

// Key names an uploaded document. An empty name falls back to a generic
// file name carrying the blob's extension.
func Key(name, ext string, at time.Time) string {
	if name == "" {
		name = "document." + ext
	}
	return fmt.Sprintf("documents/%d_%s", at.UnixMilli(), name)
}

// UploadDataURL decodes data and stores it under a document key.
func UploadDataURL(ctx context.Context, u Uploader, data, name string, at time.Time) (string, error) {
	blob, err := Decode(data)
	if err != nil {
		return "", err
	}
	return u.Put(ctx, blob.Body, blob.ContentType, Key(name, blob.Ext, at))
}
