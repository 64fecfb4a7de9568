// Package sniff classifies fetched document bytes by magic numbers.
// Only the formats the scan pipeline can process are accepted.
package sniff

import (
	"errors"

	"github.com/gabriel-vasile/mimetype"
)

// Kind identifies an accepted document format.
type Kind string

const (
	JPEG Kind = "jpg"
	PNG  Kind = "png"
	PDF  Kind = "pdf"
)

// ErrUnsupported reports content outside the accepted formats.
var ErrUnsupported = errors.New("unsupported file format")

// IsImage reports whether the kind decodes directly as an image.
func (k Kind) IsImage() bool {
	return k == JPEG || k == PNG
}

// Detect classifies data by its leading bytes. Detection never trusts a
// declared content type; the remote frequently mislabels binaries.
func Detect(data []byte) (Kind, error) {
	mime := mimetype.Detect(data)

	switch {
	case mime.Is("image/jpeg"):
		return JPEG, nil
	case mime.Is("image/png"):
		return PNG, nil
	case mime.Is("application/pdf"):
		return PDF, nil
	default:
		return "", ErrUnsupported
	}
}
