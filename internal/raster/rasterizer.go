package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/sync/semaphore"

	"github.com/renapsi/fluigscan/internal/config"
)

// ErrNoPages reports a structurally valid PDF without any pages.
var ErrNoPages = errors.New("pdf has no pages")

// baseDPI is the PDF user-space resolution; the configured scale is
// applied relative to it.
const baseDPI = 72

// Rasterizer renders first pages of PDFs on a bounded worker pool.
// Rendering is CPU and heap heavy, so concurrent renders are capped to
// keep a burst of PDF requests from starving other work.
type Rasterizer struct {
	scale  float64
	sem    *semaphore.Weighted
	logger *slog.Logger
}

// New creates a Rasterizer from the render configuration.
func New(cfg *config.RenderConfig, logger *slog.Logger) *Rasterizer {
	return &Rasterizer{
		scale:  cfg.Scale,
		sem:    semaphore.NewWeighted(cfg.Workers),
		logger: logger.With("component", "raster"),
	}
}

// FirstPage renders page 1 of the PDF at the configured scale. The document
// is validated and counted with pdfcpu before MuPDF touches it; a PDF that
// renders at all yields its first page, everything else is an error the
// caller treats as "no raster available".
func (r *Rasterizer) FirstPage(ctx context.Context, pdf []byte) (*Raster, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer r.sem.Release(1)

	count, err := api.PageCount(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}
	if count < 1 {
		return nil, ErrNoPages
	}

	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	img, err := doc.ImageDPI(0, baseDPI*r.scale)
	if err != nil {
		return nil, fmt.Errorf("render page 1: %w", err)
	}

	raster := FromImage(img)
	r.logger.Debug("page rendered",
		"pages", count,
		"width", raster.Width,
		"height", raster.Height,
	)
	return raster, nil
}
