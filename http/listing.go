package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	nport "github.com/ChipDale729/nport-viewer"
	"github.com/beevik/etree"
)

// Ensure DirectoryLister implements nport.DirectoryLister.
var _ nport.DirectoryLister = (*DirectoryLister)(nil)

// DirectoryLister lists filing archive folders. EDGAR publishes each
// folder as index.json and an equivalent index.xml; JSON is preferred and
// XML is the fallback. Listing is a best-effort aid to document
// resolution, so total failure yields an empty listing, never an error.
type DirectoryLister struct {
	client *Client
}

// NewDirectoryLister creates a DirectoryLister backed by client.
func NewDirectoryLister(client *Client) *DirectoryLister {
	return &DirectoryLister{client: client}
}

// List returns the file names in the folder, in listing order.
func (l *DirectoryLister) List(ctx context.Context, folderURL string) ([]string, error) {
	if names, ok := l.fetchJSON(ctx, folderURL+"index.json"); ok {
		return names, nil
	}
	if names, ok := l.fetchXML(ctx, folderURL+"index.xml"); ok {
		return names, nil
	}
	return nil, nil
}

// fetch retrieves a listing document, collapsing every failure to !ok.
func (l *DirectoryLister) fetch(ctx context.Context, url string) ([]byte, bool) {
	resp, err := l.client.get(ctx, url)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, false
	}
	return body, true
}

// listingPayload mirrors the EDGAR index.json shape:
// {"directory": {"item": [{"name": ...}, ...]}}.
type listingPayload struct {
	Directory struct {
		Item []struct {
			Name string `json:"name"`
		} `json:"item"`
	} `json:"directory"`
}

func (l *DirectoryLister) fetchJSON(ctx context.Context, url string) ([]string, bool) {
	body, ok := l.fetch(ctx, url)
	if !ok {
		return nil, false
	}

	var payload listingPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, false
	}

	names := make([]string, 0, len(payload.Directory.Item))
	for _, item := range payload.Directory.Item {
		if name := strings.TrimSpace(item.Name); name != "" {
			names = append(names, name)
		}
	}
	return names, true
}

func (l *DirectoryLister) fetchXML(ctx context.Context, url string) ([]string, bool) {
	body, ok := l.fetch(ctx, url)
	if !ok {
		return nil, false
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(bytes.NewReader(body)); err != nil {
		return nil, false
	}

	root := doc.Root()
	if root == nil {
		return nil, false
	}

	var names []string
	for _, item := range root.SelectElements("item") {
		name := item.SelectElement("name")
		if name == nil {
			continue
		}
		if text := strings.TrimSpace(name.Text()); text != "" {
			names = append(names, text)
		}
	}
	return names, true
}
