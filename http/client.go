// Package http provides the EDGAR-facing HTTP collaborators: the document
// fetcher and prober, the submissions metadata service, and the archive
// directory lister.
package http

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"io"
	"net/http"
	"time"

	nport "github.com/ChipDale729/nport-viewer"
)

// DefaultTimeout bounds every EDGAR request.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies this client to EDGAR. SEC fair-access
// guidance requires automated clients to declare a contact address.
const DefaultUserAgent = "NPORT HTML Viewer (caleb.mok@hotmail.com)"

// Ensure Client implements the fetch-side domain interfaces at compile time.
var (
	_ nport.DocumentFetcher = (*Client)(nil)
	_ nport.Prober          = (*Client)(nil)
)

// Client is an EDGAR HTTP client. Every request carries the identifying
// User-Agent, advertises gzip/deflate, and is bounded by a timeout.
type Client struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent to EDGAR.
// Defaults to DefaultUserAgent if not specified.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates an EDGAR HTTP client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// get performs a GET with the EDGAR headers applied.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	return c.client.Do(req)
}

// readBody reads the response body. Setting Accept-Encoding by hand
// disables the transport's transparent decompression, so content
// encodings are decoded here.
func readBody(resp *http.Response) ([]byte, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		return io.ReadAll(gz)
	case "deflate":
		return readDeflate(resp.Body)
	}

	return io.ReadAll(resp.Body)
}

// readDeflate decodes a deflate body. Servers send either the
// zlib-wrapped form or a bare flate stream; try zlib first and fall
// back to bare flate.
func readDeflate(body io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	if zr, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
		defer zr.Close()
		if out, err := io.ReadAll(zr); err == nil {
			return out, nil
		}
	}

	fr := flate.NewReader(bytes.NewReader(raw))
	defer fr.Close()
	return io.ReadAll(fr)
}

// FetchDocument fetches url and returns the body together with the final
// URL after redirects. This is the pipeline's one mandatory fetch: every
// failure comes back as EFETCH.
func (c *Client) FetchDocument(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, "", nport.Errorf(nport.EFETCH, "SEC request failed at %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", nport.Errorf(nport.EFETCH, "SEC request failed (%d) at %s", resp.StatusCode, url)
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, "", nport.Errorf(nport.EFETCH, "SEC request failed at %s", url)
	}

	return body, resp.Request.URL.String(), nil
}

// Probe fetches url and reports whether it serves a document. Probes are
// best-effort: every failure collapses to ok=false. On success the final
// URL after redirects is returned, which may differ from url.
func (c *Client) Probe(ctx context.Context, url string) (string, bool) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	return resp.Request.URL.String(), true
}
