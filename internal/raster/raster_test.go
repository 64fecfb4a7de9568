package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"testing"

	"github.com/renapsi/fluigscan/internal/config"
)

func testRasterizer(t *testing.T) *Rasterizer {
	t.Helper()
	cfg := &config.RenderConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, logger)
}

// minimalPDF builds a valid single-page PDF with a correct xref table.
// The page is empty; rendering it produces a blank raster.
func minimalPDF(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 200] /Resources << >> >>\nendobj\n",
	}

	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		buf.WriteString(obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func TestFromImagePacked(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}

	r := FromImage(img)
	if r.Width != 3 || r.Height != 2 {
		t.Fatalf("dimensions = %dx%d, want 3x2", r.Width, r.Height)
	}
	if len(r.Pix) != 4*r.Width*r.Height {
		t.Fatalf("len(Pix) = %d, want %d", len(r.Pix), 4*r.Width*r.Height)
	}
	if !bytes.Equal(r.Pix, img.Pix) {
		t.Error("packed image must share pixel content")
	}
}

func TestFromImageRepacksSubImage(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range base.Pix {
		base.Pix[i] = uint8(i % 251)
	}

	sub := base.SubImage(image.Rect(2, 3, 6, 7)).(*image.RGBA)
	r := FromImage(sub)

	if r.Width != 4 || r.Height != 4 {
		t.Fatalf("dimensions = %dx%d, want 4x4", r.Width, r.Height)
	}
	if len(r.Pix) != 4*4*4 {
		t.Fatalf("len(Pix) = %d, want %d", len(r.Pix), 4*4*4)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := base.RGBAAt(x+2, y+3)
			got := r.Image().RGBAAt(x, y)
			if got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRasterImageRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 5, 7))
	r := FromImage(img)
	back := r.Image()

	if back.Bounds() != image.Rect(0, 0, 5, 7) {
		t.Errorf("bounds = %v", back.Bounds())
	}
	if back.Stride != 4*5 {
		t.Errorf("stride = %d, want %d", back.Stride, 4*5)
	}
}

func TestFirstPageRendersMinimalPDF(t *testing.T) {
	r := testRasterizer(t)

	raster, err := r.FirstPage(context.Background(), minimalPDF(t))
	if err != nil {
		t.Fatalf("FirstPage: %v", err)
	}

	if raster.Width <= 0 || raster.Height <= 0 {
		t.Fatalf("dimensions = %dx%d", raster.Width, raster.Height)
	}
	if len(raster.Pix) != 4*raster.Width*raster.Height {
		t.Errorf("len(Pix) = %d, want %d", len(raster.Pix), 4*raster.Width*raster.Height)
	}
}

func TestFirstPageRejectsGarbage(t *testing.T) {
	r := testRasterizer(t)

	if _, err := r.FirstPage(context.Background(), []byte("%PDF-not really")); err == nil {
		t.Error("expected error for corrupt pdf bytes")
	}
	if _, err := r.FirstPage(context.Background(), []byte("plain text")); err == nil {
		t.Error("expected error for non-pdf bytes")
	}
}

func TestFirstPageHonorsCancellation(t *testing.T) {
	r := testRasterizer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.FirstPage(ctx, minimalPDF(t)); err == nil {
		t.Error("expected error from cancelled context")
	}
}
