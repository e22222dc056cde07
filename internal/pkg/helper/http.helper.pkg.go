package helper

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"topup-store/internal/pkg/logger"
)

// HTTPClientConfig configures the outbound client used to fetch remote assets.
type HTTPClientConfig struct {
	ProxyURL       string
	SkipTLSVerify  bool
	RequestTimeout int // seconds, 0 leaves the transport default
	MaxBodyBytes   int64
}

type HTTPClient struct {
	Client *http.Client
	Config *HTTPClientConfig
}

// HTTPAPIResponse is a fully read response.
type HTTPAPIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

func NewHTTPClient(cfg *HTTPClientConfig) *HTTPClient {
	if cfg == nil {
		cfg = &HTTPClientConfig{}
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.SkipTLSVerify,
		},
	}

	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			logger.Error.Printf("Invalid proxy URL: %v", err)
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
			logger.Debug.Printf("Using proxy: %s", cfg.ProxyURL)
		}
	}

	client := &http.Client{Transport: transport}
	if cfg.RequestTimeout > 0 {
		client.Timeout = time.Duration(cfg.RequestTimeout) * time.Second
	}

	return &HTTPClient{
		Client: client,
		Config: cfg,
	}
}

// Fetch performs a GET and reads the whole body. Non-2xx statuses are returned as errors.
func (h *HTTPClient) Fetch(ctx context.Context, rawURL string) (*HTTPAPIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	logger.Debug.Printf("Fetching %s", req.URL.String())

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if h.Config.MaxBodyBytes > 0 {
		reader = io.LimitReader(resp.Body, h.Config.MaxBodyBytes)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}

	return &HTTPAPIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}
