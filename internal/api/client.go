package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"vizpro/internal/catalog"
	"vizpro/internal/chart"
)

const (
	DefaultBaseURL    = "http://localhost:8000/api"
	DefaultCSRFCookie = "csrftoken"
	DefaultCSRFHeader = "X-CSRFToken"
	DefaultTimeout    = 30 * time.Second
)

// maxBody caps how much of a response is read.
const maxBody = 64 << 20

// Config is the explicit HTTP configuration for talking to the backend.
type Config struct {
	BaseURL    string
	CSRFCookie string
	CSRFHeader string
	// WithCredentials keeps session cookies between requests.
	WithCredentials bool
	Timeout         time.Duration
	// HTTPClient overrides the client built from the fields above.
	HTTPClient *http.Client
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.CSRFCookie == "" {
		c.CSRFCookie = DefaultCSRFCookie
	}
	if c.CSRFHeader == "" {
		c.CSRFHeader = DefaultCSRFHeader
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Client calls the chart backend.
type Client struct {
	cfg  Config
	base *url.URL
	http *http.Client
}

// New builds a Client. The base URL must be absolute.
func New(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api: base url %q is not absolute", cfg.BaseURL)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
		if cfg.WithCredentials {
			jar, err := cookiejar.New(nil)
			if err != nil {
				return nil, fmt.Errorf("api: cookie jar: %w", err)
			}
			hc.Jar = jar
		}
	}
	return &Client{cfg: cfg, base: base, http: hc}, nil
}

func (c *Client) BaseURL() string { return c.base.String() }

func (c *Client) endpoint(path string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	return u.String()
}

// csrfToken reads the CSRF cookie the backend set for the base URL.
func (c *Client) csrfToken() string {
	if c.http.Jar == nil {
		return ""
	}
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == c.cfg.CSRFCookie {
			return ck.Value
		}
	}
	return ""
}

func (c *Client) newRequest(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return nil, fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		if tok := c.csrfToken(); tok != "" {
			req.Header.Set(c.cfg.CSRFHeader, tok)
		}
	}
	return req, nil
}

// do sends req and returns the body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, string, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("backend request failed", "method", req.Method, "url", req.URL.String(), "error", err)
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrNoResponse, ctxErr)
		}
		return nil, "", fmt.Errorf("%w: %w", ErrNoResponse, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, "", fmt.Errorf("api: read %s body: %w", req.URL.Path, err)
	}
	slog.Debug("backend request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", newError(resp.StatusCode, body)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) postJSON(ctx context.Context, path string, in any) ([]byte, string, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, "", fmt.Errorf("api: encode %s: %w", path, err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, "", err
	}
	return c.do(req)
}

// Upload sends a dataset as the multipart field "file" and returns its column names.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) ([]string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("api: multipart: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("api: read dataset %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("api: multipart: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload_file", mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	body, _, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	var out struct {
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("api: decode upload response: %w", err)
	}
	return out.Categories, nil
}

// Recommendations asks the backend which chart types suit the columns.
func (c *Client) Recommendations(ctx context.Context, columns []string) ([]catalog.Recommendation, error) {
	body, _, err := c.postJSON(ctx, "/get_recommendations", map[string][]string{"columns": columns})
	if err != nil {
		return nil, fmt.Errorf("recommendations: %w", err)
	}
	var out struct {
		Recommendations []catalog.Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("api: decode recommendations: %w", err)
	}
	return out.Recommendations, nil
}

// Generate renders a chart and decodes the image and point metadata.
func (c *Client) Generate(ctx context.Context, gr GraphRequest) (*chart.Chart, error) {
	gr.Download = false
	if err := gr.Validate(); err != nil {
		return nil, err
	}
	body, _, err := c.postJSON(ctx, "/generate_graph", gr)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", gr.GraphType, err)
	}
	ch, err := chart.DecodeResponse(body)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", gr.GraphType, err)
	}
	return ch, nil
}

// Download renders a chart as a PNG file body.
func (c *Client) Download(ctx context.Context, gr GraphRequest) ([]byte, error) {
	gr.Download = true
	if err := gr.Validate(); err != nil {
		return nil, err
	}
	body, ctype, err := c.postJSON(ctx, "/generate_graph", gr)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", gr.GraphType, err)
	}
	if strings.HasPrefix(ctype, "application/json") {
		return nil, errors.New("download: backend returned json instead of an image")
	}
	return body, nil
}
