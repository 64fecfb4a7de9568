package sniff

import (
	"errors"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    Kind
		wantErr bool
	}{
		{
			"png magic",
			[]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00},
			PNG, false,
		},
		{
			"jpeg magic",
			[]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46},
			JPEG, false,
		},
		{
			"pdf magic",
			[]byte("%PDF-1.7\n%\xE2\xE3\xCF\xD3\n"),
			PDF, false,
		},
		{
			"gif magic rejected",
			[]byte("GIF89a\x01\x00\x01\x00"),
			"", true,
		},
		{
			"plain text rejected",
			[]byte("hello world"),
			"", true,
		},
		{
			"empty rejected",
			nil,
			"", true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.data)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupported) {
					t.Fatalf("Detect() error = %v, want ErrUnsupported", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindIsImage(t *testing.T) {
	if !JPEG.IsImage() || !PNG.IsImage() {
		t.Error("jpeg and png must report as images")
	}
	if PDF.IsImage() {
		t.Error("pdf must not report as an image")
	}
}
