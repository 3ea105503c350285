package backend

import (
	"encoding/pem"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// writeCACert writes the certificate of srv as a PEM file and returns its path.
func writeCACert(c *qt.C, srv *httptest.Server) string {
	path := filepath.Join(c.TempDir(), "ca.pem")
	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	c.Assert(os.WriteFile(path, data, 0o600), qt.IsNil)
	return path
}
