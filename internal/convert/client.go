// Package convert talks to the external service that transcodes a source
// recording to WAV with cue points already embedded.
package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/simonhull/dawmark/internal/types"
)

// Endpoint is the conversion path below the service base URL.
const Endpoint = "/v1/convert"

// Marker is the wire form of one cue point.
type Marker struct {
	Time  float64 `json:"time"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// Request asks the service for a WAV rendition with cues. Either
// SourceURL or Audio is set; Audio is sent base64 encoded.
type Request struct {
	SourceURL string   `json:"source_url,omitempty"`
	Audio     []byte   `json:"audio,omitempty"`
	Format    string   `json:"format"`
	FileName  string   `json:"file_name"`
	Markers   []Marker `json:"markers"`
}

// NewRequest builds a Request from domain markers.
func NewRequest(audio []byte, format types.Format, fileName string, markers []types.Marker) Request {
	wire := make([]Marker, len(markers))
	for i, m := range markers {
		wire[i] = Marker{Time: m.Time, Label: m.Label, Color: m.Color.Hex()}
	}
	return Request{
		Audio:    audio,
		Format:   format.String(),
		FileName: fileName,
		Markers:  wire,
	}
}

type response struct {
	Audio []byte `json:"audio"`
	Error string `json:"error"`
}

// StatusError is returned for non-2xx replies.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("conversion service: HTTP %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("conversion service: HTTP %d", e.Code)
}

// Temporary reports whether retrying may help.
func (e *StatusError) Temporary() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests || e.Code == http.StatusRequestTimeout
}

// Client calls the conversion service. A single call is never retried
// here; the caller owns the retry policy.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sends a bearer token with each request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "dawmark",
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert submits req and returns the converted WAV bytes. The service
// may answer with raw audio (audio/wav) or a JSON envelope.
func (c *Client) Convert(ctx context.Context, req Request) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/wav, application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("submit conversion: %w", err)
	}
	defer resp.Body.Close()

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Code: resp.StatusCode}
		if mediaType == "application/json" {
			var r response
			if json.NewDecoder(resp.Body).Decode(&r) == nil {
				se.Message = r.Error
			}
		}
		return nil, se
	}

	if mediaType == "application/json" {
		var r response
		if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		if r.Error != "" {
			return nil, fmt.Errorf("conversion service: %s", r.Error)
		}
		if len(r.Audio) == 0 {
			return nil, fmt.Errorf("conversion service returned no audio")
		}
		return r.Audio, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}
