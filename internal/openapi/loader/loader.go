// Package loader fetches OpenAPI documents from disk, an fs.FS, or HTTP.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"

	pkgopenapi "github.com/goliatone/go-changewizard/pkg/openapi"
)

const maxRemoteDocument = 4 << 20

// Loader implements pkgopenapi.Loader.
type Loader struct {
	files  fs.FS
	client *http.Client
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New builds a Loader. URL sources are only served when options carry an
// HTTP client or ask for the default one.
func New(options pkgopenapi.LoaderOptions) *Loader {
	l := &Loader{files: options.FileSystem}
	switch {
	case options.HTTPClient != nil:
		client := *options.HTTPClient
		if client.Timeout == 0 {
			client.Timeout = options.Timeout
		}
		l.client = &client
	case options.Remote:
		l.client = &http.Client{Timeout: options.Timeout}
	}
	return l
}

// Load reads src and wraps the payload in a Document.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}
	if src.Location() == "" {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s source has no location", src.Kind())
	}

	var (
		raw []byte
		err error
	)
	switch src.Kind() {
	case pkgopenapi.SourceKindFile:
		raw, err = os.ReadFile(src.Location())
	case pkgopenapi.SourceKindFS:
		if l.files == nil {
			return pkgopenapi.Document{}, fmt.Errorf("openapi loader: no filesystem for %q", src.Location())
		}
		raw, err = fs.ReadFile(l.files, src.Location())
	case pkgopenapi.SourceKindURL:
		raw, err = l.fetch(ctx, src.Location())
	default:
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s: %w", src.Location(), err)
	}
	return pkgopenapi.NewDocument(src, raw)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if l.client == nil {
		return nil, errors.New("remote documents are disabled")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/yaml, application/json;q=0.9")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxRemoteDocument))
}
