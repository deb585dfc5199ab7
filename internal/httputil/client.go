// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ClientOptions configures NewClient.
type ClientOptions struct {
	Timeout time.Duration
	// ProxyURL routes every request through an HTTP proxy when set.
	ProxyURL string
	// InsecureTLS skips certificate verification. The scraping proxy
	// re-signs traffic with its own certificate.
	InsecureTLS bool
}

// NewClient builds an http.Client with its own transport so proxy and TLS
// settings never leak into http.DefaultTransport.
func NewClient(opts ClientOptions) (*http.Client, error) {
	tr := http.DefaultTransport.(*http.Transport).Clone()

	if opts.ProxyURL != "" {
		u, err := url.Parse(opts.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("parsing proxy URL: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("proxy URL %q needs a scheme and host", opts.ProxyURL)
		}
		tr.Proxy = http.ProxyURL(u)
	}
	if opts.InsecureTLS {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return &http.Client{Timeout: opts.Timeout, Transport: tr}, nil
}
