// Package fluig fetches document content from a Fluig webdesk streamcontrol
// endpoint using OAuth 1.0a signed requests.
package fluig

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/renapsi/fluigscan/internal/config"
	"github.com/renapsi/fluigscan/internal/oauth1"
)

// Client issues signed document fetches against Fluig tenants. It is safe
// for concurrent use; credentials are per call, not per client.
type Client struct {
	cfg     *config.FluigConfig
	signer  *oauth1.Signer
	http    *http.Client
	logger  *slog.Logger
	maxSize int64
}

// NewClient creates a Client from the Fluig configuration.
func NewClient(cfg *config.FluigConfig, logger *slog.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		logger.Warn("TLS certificate verification is disabled for Fluig requests")
	}

	return &Client{
		cfg:    cfg,
		signer: oauth1.New(),
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.TimeoutDuration(),
		},
		logger:  logger.With("component", "fluig"),
		maxSize: cfg.MaxResponseSizeBytes(),
	}
}

// DocumentURL builds the streamcontrol URL for a tenant server and
// document number.
func (c *Client) DocumentURL(server, number string) string {
	return fmt.Sprintf(
		"https://%s.%s/webdesk/streamcontrol/?WDCompanyId=%d&WDNrDocto=%s&WDNrVersao=%d",
		server, c.cfg.BaseDomain, c.cfg.CompanyID, url.QueryEscape(number), c.cfg.DocVersion,
	)
}

// FetchDocument retrieves the raw bytes of a document version from the
// tenant's streamcontrol endpoint.
func (c *Client) FetchDocument(ctx context.Context, creds oauth1.Credentials, server, number string) ([]byte, error) {
	return c.fetch(ctx, creds, c.DocumentURL(server, number))
}

func (c *Client) fetch(ctx context.Context, creds oauth1.Credentials, rawURL string) ([]byte, error) {
	authorization, err := c.signer.Authorize(creds, http.MethodGet, rawURL)
	if err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", authorization)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reach fluig: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > c.maxSize {
		return nil, ErrResponseTooLarge
	}
	if len(data) == 0 {
		return nil, ErrEmptyBody
	}

	c.logger.Debug("document fetched", "bytes", len(data), "status", resp.StatusCode)
	return data, nil
}
