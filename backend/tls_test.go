package backend

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/juju/errors"
)

func TestNewHTTPSClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		wantErr error
	}{
		{"missing file", nil, os.ErrNotExist},
		{"no certificates", []byte("not a certificate"), errNoCertificates},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := qt.New(t)
			path := filepath.Join(c.TempDir(), "ca.pem")
			if tc.content != nil {
				c.Assert(os.WriteFile(path, tc.content, 0o600), qt.IsNil)
			}

			client, err := NewHTTPSClient(TLSConfig{CACertFile: path})
			c.Assert(client, qt.IsNil)
			var tlsErr *TLSConfigError
			c.Assert(errors.As(err, &tlsErr), qt.IsTrue)
			c.Assert(tlsErr.Path, qt.Equals, path)
			c.Assert(err, qt.ErrorIs, tc.wantErr)
		})
	}
}

func TestNewHTTPSClientVerifiesServer(t *testing.T) {
	c := qt.New(t)
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "secure")
	}))
	defer srv.Close()
	caPath := writeCACert(c, srv)

	client, err := NewHTTPSClient(TLSConfig{CACertFile: caPath, ServerName: "example.com"})
	c.Assert(err, qt.IsNil)
	transport := client.Transport.(*http.Transport)
	c.Assert(transport.DisableKeepAlives, qt.IsTrue)

	resp, err := client.Get(srv.URL)
	c.Assert(err, qt.IsNil)
	resp.Body.Close()
	c.Assert(resp.StatusCode, qt.Equals, http.StatusOK)

	wrongName, err := NewHTTPSClient(TLSConfig{CACertFile: caPath, ServerName: "api.invalid"})
	c.Assert(err, qt.IsNil)
	_, err = wrongName.Get(srv.URL)
	c.Assert(err, qt.ErrorMatches, ".*certificate.*")
}

func TestNewHTTPSClientHandshakeFailure(t *testing.T) {
	c := qt.New(t)
	trusted := httptest.NewTLSServer(http.NotFoundHandler())
	defer trusted.Close()
	client, err := NewHTTPSClient(TLSConfig{CACertFile: writeCACert(c, trusted)})
	c.Assert(err, qt.IsNil)

	plain := httptest.NewServer(http.NotFoundHandler())
	defer plain.Close()
	_, err = client.Get("https://" + plain.Listener.Addr().String())
	c.Assert(err, qt.ErrorMatches, ".*(tls|TLS|http).*")
}
