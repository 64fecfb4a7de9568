// Package scan orchestrates the document ingest pipeline: fetch a document
// from a Fluig tenant, digest it, and extract the QR fields from its first
// page when one is present.
package scan

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"log/slog"

	"github.com/renapsi/fluigscan/internal/oauth1"
	"github.com/renapsi/fluigscan/internal/qr"
	"github.com/renapsi/fluigscan/internal/raster"
	"github.com/renapsi/fluigscan/internal/sniff"
)

// Fetcher retrieves raw document bytes from a Fluig tenant.
type Fetcher interface {
	FetchDocument(ctx context.Context, creds oauth1.Credentials, server, number string) ([]byte, error)
}

// Rasterizer renders the first page of a PDF to an RGBA raster.
type Rasterizer interface {
	FirstPage(ctx context.Context, pdf []byte) (*raster.Raster, error)
}

// Request identifies a document on a tenant together with the credentials
// to fetch it. Requests are immutable and scoped to a single HTTP call.
type Request struct {
	Server         string
	DocumentNumber string
	Credentials    oauth1.Credentials
}

func (r Request) validate() error {
	for _, field := range []string{
		r.Server,
		r.DocumentNumber,
		r.Credentials.ConsumerKey,
		r.Credentials.ConsumerSecret,
		r.Credentials.Token,
		r.Credentials.TokenSecret,
	} {
		if field == "" {
			return ErrMissingField
		}
	}
	return nil
}

// Result is the outcome of a successful scan. Fields is nil when the
// document carried no parseable QR payload; MD5 is always present.
type Result struct {
	MD5    string
	Fields *Fields
}

// System defines the document scan operations.
type System interface {
	Handler() *Handler
	Scan(ctx context.Context, req Request) (*Result, error)
}

type system struct {
	fetcher    Fetcher
	rasterizer Rasterizer
	logger     *slog.Logger
}

// New creates a scan system from its collaborators.
func New(fetcher Fetcher, rasterizer Rasterizer, logger *slog.Logger) System {
	return &system{
		fetcher:    fetcher,
		rasterizer: rasterizer,
		logger:     logger.With("component", "scan"),
	}
}

// Scan runs the ingest pipeline for a single request.
func (s *system) Scan(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	data, err := s.fetcher.FetchDocument(ctx, req.Credentials, req.Server, req.DocumentNumber)
	if err != nil {
		return nil, mapFetchError(err)
	}

	kind, err := sniff.Detect(data)
	if err != nil {
		return nil, ErrUnsupportedFormat
	}

	sum := md5.Sum(data)
	result := &Result{MD5: hex.EncodeToString(sum[:])}

	if payload, ok := s.decodePayload(ctx, kind, data); ok {
		if fields, ok := ParsePayload(payload); ok {
			result.Fields = &fields
		} else {
			s.logger.Debug("qr payload too short, responding digest only",
				"server", req.Server, "document", req.DocumentNumber)
		}
	}

	return result, nil
}

// decodePayload extracts the QR payload from the document. Every failure
// here is soft: the response degrades to digest-only. The raster is
// released before returning so it never outlives the decode.
func (s *system) decodePayload(ctx context.Context, kind sniff.Kind, data []byte) (string, bool) {
	var payload string
	var err error

	if kind == sniff.PDF {
		var page *raster.Raster
		page, err = s.rasterizer.FirstPage(ctx, data)
		if err == nil {
			payload, err = qr.Decode(page.Image())
		}
	} else {
		payload, err = qr.DecodeBytes(data)
	}

	if err != nil {
		s.logger.Debug("qr decode unavailable, responding digest only",
			"kind", kind, "error", err)
		return "", false
	}
	return payload, true
}
