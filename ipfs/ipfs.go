// Package ipfs reads and stores property documents on an IPFS node.
package ipfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	ipfsapi "github.com/ipfs/go-ipfs-api"
)

// PublicGateway is used to build shareable document links.
const PublicGateway = "https://ipfs.io/ipfs/"

// maxInspect caps how much of a document is read for inspection.
const maxInspect = 8 << 20

var ErrNoNode = errors.New("no IPFS node configured")

// Document describes content behind a hash.
type Document struct {
	CID       string
	Size      int
	MimeType  string
	Extension string
	Truncated bool
}

type Store struct {
	shell   *ipfsapi.Shell
	timeout time.Duration
}

// New returns a store for the node API at url (host:port or http URL).
// An empty url yields a nil store; its methods report ErrNoNode.
func New(url string, timeout time.Duration) *Store {
	if url == "" {
		return nil
	}
	return &Store{shell: ipfsapi.NewShell(url), timeout: timeout}
}

// Normalize strips ipfs:// and gateway prefixes from a hash reference.
func Normalize(ref string) string {
	ref = strings.TrimSpace(ref)
	ref = strings.TrimPrefix(ref, "ipfs://")
	if i := strings.Index(ref, "/ipfs/"); i >= 0 {
		ref = ref[i+len("/ipfs/"):]
	}
	return ref
}

// GatewayURL is the public link for a hash reference.
func GatewayURL(ref string) string {
	cid := Normalize(ref)
	if cid == "" {
		return ""
	}
	return PublicGateway + cid
}

// Inspect fetches the document and detects its type.
func (s *Store) Inspect(ctx context.Context, ref string) (Document, error) {
	if s == nil {
		return Document{}, ErrNoNode
	}
	cid := Normalize(ref)
	if cid == "" {
		return Document{}, fmt.Errorf("empty document hash")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.shell.Request("cat", cid).Send(ctx)
	if err != nil {
		return Document{}, err
	}
	if resp.Error != nil {
		return Document{}, resp.Error
	}
	defer resp.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Output, maxInspect+1))
	if err != nil {
		return Document{}, err
	}
	doc := Document{CID: cid}
	if len(data) > maxInspect {
		data = data[:maxInspect]
		doc.Truncated = true
	}
	mtype := mimetype.Detect(data)
	doc.Size = len(data)
	doc.MimeType = mtype.String()
	doc.Extension = mtype.Extension()
	return doc, nil
}

// Add uploads r and returns its hash.
func (s *Store) Add(r io.Reader) (string, error) {
	if s == nil {
		return "", ErrNoNode
	}
	return s.shell.Add(r, ipfsapi.Pin(true))
}

// AddFile uploads the file at path.
func (s *Store) AddFile(path string) (string, error) {
	if s == nil {
		return "", ErrNoNode
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return s.Add(f)
}
