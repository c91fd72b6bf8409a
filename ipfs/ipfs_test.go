package ipfs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pdf = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")

// fakeNode serves the two node API commands the store uses.
func fakeNode(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v0/cat":
			if r.URL.Query().Get("arg") != "QmDoc" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"Message":"merkledag: not found","Code":0,"Type":"error"}`))
				return
			}
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write(pdf)
		case "/api/v0/add":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"Name":"","Hash":"QmAdded","Size":"42"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestInspect(t *testing.T) {
	s := New(fakeNode(t).URL, 5*time.Second)

	doc, err := s.Inspect(context.Background(), "ipfs://QmDoc")
	require.NoError(t, err)
	assert.Equal(t, "QmDoc", doc.CID)
	assert.Equal(t, len(pdf), doc.Size)
	assert.Equal(t, "application/pdf", doc.MimeType)
	assert.Equal(t, ".pdf", doc.Extension)
	assert.False(t, doc.Truncated)
}

func TestInspectMissing(t *testing.T) {
	s := New(fakeNode(t).URL, 5*time.Second)

	_, err := s.Inspect(context.Background(), "QmNope")
	assert.Error(t, err)

	_, err = s.Inspect(context.Background(), "  ")
	assert.Error(t, err)
}

func TestAddFile(t *testing.T) {
	s := New(fakeNode(t).URL, 5*time.Second)
	path := filepath.Join(t.TempDir(), "deed.pdf")
	require.NoError(t, os.WriteFile(path, pdf, 0644))

	cid, err := s.AddFile(path)
	require.NoError(t, err)
	assert.Equal(t, "QmAdded", cid)
}

func TestNilStore(t *testing.T) {
	s := New("", time.Second)
	_, err := s.Inspect(context.Background(), "QmDoc")
	assert.ErrorIs(t, err, ErrNoNode)
	_, err = s.AddFile("x")
	assert.ErrorIs(t, err, ErrNoNode)
}

func TestNormalizeAndGateway(t *testing.T) {
	assert.Equal(t, "QmX", Normalize("ipfs://QmX"))
	assert.Equal(t, "QmX/meta.json", Normalize("https://gateway.pinata.cloud/ipfs/QmX/meta.json"))
	assert.Equal(t, "https://ipfs.io/ipfs/QmX", GatewayURL("QmX"))
	assert.Equal(t, "", GatewayURL(""))
}
