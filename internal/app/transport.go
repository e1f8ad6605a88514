package app

import (
	"net/http"

	"github.com/inference-directory/infdir/internal/config"
	"github.com/inference-directory/infdir/internal/dataset"
)

const (
	userAgentHeader     = "User-Agent"
	authorizationHeader = "Authorization"
)

// transport sets default headers on every request that does not carry them.
type transport struct {
	headers map[string]string
	base    http.RoundTripper
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.headers) > 0 {
		req = req.Clone(req.Context())
		for k, v := range t.headers {
			if req.Header.Get(k) == "" {
				req.Header.Set(k, v)
			}
		}
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// NewHTTPClient returns the client used for dataset requests.
func NewHTTPClient(cfg config.DatasetConfig) *http.Client {
	headers := map[string]string{}
	if cfg.UserAgent != "" {
		headers[userAgentHeader] = cfg.UserAgent
	}
	if cfg.Token != "" {
		headers[authorizationHeader] = "Bearer " + cfg.Token
	}
	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &transport{headers: headers},
	}
}

// NewSource returns the HTTP dataset source described by cfg.
func NewSource(cfg config.DatasetConfig) *dataset.HTTPSource {
	return dataset.NewHTTPSource(cfg.BaseURL, NewHTTPClient(cfg))
}
