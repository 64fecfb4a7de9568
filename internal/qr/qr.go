// Package qr decodes QR symbols from document rasters and image bytes.
package qr

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
)

// ErrNotFound reports that no QR symbol could be located in the image.
var ErrNotFound = errors.New("no qr code found")

// Decode scans img for a QR symbol and returns its textual payload.
// When several symbols are present the detector's first hit wins. Any
// detector failure collapses into ErrNotFound; callers degrade rather
// than fail on it.
func Decode(img image.Image) (string, error) {
	source := gozxing.NewLuminanceSourceFromImage(img)
	bitmap, err := gozxing.NewBinaryBitmap(gozxing.NewHybridBinarizer(source))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	result, err := zxqrcode.NewQRCodeReader().Decode(bitmap, map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	return result.GetText(), nil
}

// DecodeBytes decodes data as a PNG or JPEG image and scans it for a
// QR symbol.
func DecodeBytes(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	return Decode(img)
}
