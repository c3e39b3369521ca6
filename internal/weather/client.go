// Package weather fetches current conditions from a wttr.in compatible API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrTransport marks connection failures, timeouts and non-2xx replies.
	ErrTransport = errors.New("weather transport failure")
	// ErrMalformed marks bodies that do not carry the expected fields.
	ErrMalformed = errors.New("malformed weather payload")
)

const (
	DefaultBaseURL   = "http://wttr.in"
	DefaultUserAgent = "WeatherClothingAdvisor/1.0"
	DefaultTimeout   = 10 * time.Second

	// bodies are small; cap to protect against a misbehaving endpoint
	maxBodySize = 4 << 20
)

// Conditions is the current weather for a location.
type Conditions struct {
	Location    string
	TempC       float64
	Description string
	Humidity    int
	WindKph     float64
	Raw         json.RawMessage
}

type Client struct {
	BaseURL   string
	UserAgent string
	HTTP      *http.Client
}

func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: userAgent,
		HTTP:      &http.Client{Timeout: timeout},
	}
}

// Current performs one GET {BaseURL}/{location}?format=j1.
func (c *Client) Current(ctx context.Context, location string) (Conditions, error) {
	endpoint := fmt.Sprintf("%s/%s?format=j1", c.BaseURL, url.PathEscape(location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Conditions{}, fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Conditions{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Conditions{}, fmt.Errorf("%w: status code %d", ErrTransport, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Conditions{}, fmt.Errorf("%w: failed to read body: %v", ErrTransport, err)
	}

	cond, err := Parse(body)
	if err != nil {
		return Conditions{}, err
	}
	cond.Location = location
	return cond, nil
}
