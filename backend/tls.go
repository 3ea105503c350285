package backend

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/juju/errors"
)

const errNoCertificates = errors.ConstError("no PEM certificates found")

// TLSConfig describes the trust material for the API connection.
type TLSConfig struct {
	// CACertFile is a PEM file holding the certificates the server chain
	// must verify against.
	CACertFile string

	// ServerName overrides the name verified against the server
	// certificate. It defaults to the host of each request.
	ServerName string
}

// TLSConfigError is returned when the HTTPS client cannot be constructed.
// No requests can be dispatched without a client, so it is fatal at startup.
type TLSConfigError struct {
	Path  string
	Cause error
}

func (e *TLSConfigError) Error() string {
	return fmt.Sprintf("tls configuration from %q: %v", e.Path, e.Cause)
}

func (e *TLSConfigError) Unwrap() error {
	return e.Cause
}

// NewHTTPSClient returns a client that only trusts the configured CA,
// verifies the server name and opens a fresh connection for every request.
func NewHTTPSClient(cfg TLSConfig) (*http.Client, error) {
	pem, err := os.ReadFile(cfg.CACertFile)
	if err != nil {
		return nil, &TLSConfigError{Path: cfg.CACertFile, Cause: err}
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, &TLSConfigError{Path: cfg.CACertFile, Cause: errNoCertificates}
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			RootCAs:    pool,
			ServerName: cfg.ServerName,
			MinVersion: tls.VersionTLS12,
		},
		DisableKeepAlives:   true,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   false,
	}
	return &http.Client{Transport: transport}, nil
}
