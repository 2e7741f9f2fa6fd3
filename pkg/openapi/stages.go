package openapi

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches a Document.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// Parser extracts the operations of a Document keyed by operationId.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// LoaderOptions decides which source kinds a Loader can serve. URL sources
// need Remote or an HTTPClient.
type LoaderOptions struct {
	FileSystem fs.FS
	HTTPClient *http.Client
	Remote     bool
	Timeout    time.Duration
}

type LoaderOption func(*LoaderOptions)

// WithFileSystem serves SourceKindFS lookups from files.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(o *LoaderOptions) { o.FileSystem = files }
}

// WithHTTPClient serves URL sources with client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(o *LoaderOptions) { o.HTTPClient = client }
}

// WithHTTPFallback serves URL sources with a default client. A zero timeout
// leaves requests bounded only by the caller's context.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(o *LoaderOptions) {
		o.Remote = true
		o.Timeout = timeout
	}
}

func NewLoaderOptions(opts ...LoaderOption) LoaderOptions {
	var o LoaderOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// ParserOptions toggles parser behaviour.
type ParserOptions struct {
	// ResolveReferences validates the document and resolves $ref pointers.
	// The linter turns it off to inspect documents as written.
	ResolveReferences bool
}

type ParserOption func(*ParserOptions)

func WithReferenceResolution(enabled bool) ParserOption {
	return func(o *ParserOptions) { o.ResolveReferences = enabled }
}

// NewParserOptions resolves references unless told otherwise.
func NewParserOptions(opts ...ParserOption) ParserOptions {
	o := ParserOptions{ResolveReferences: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
