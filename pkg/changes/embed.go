package changes

import (
	"embed"
	"io/fs"
)

// CreateOperationID is the operation the wizard renders and submits.
const CreateOperationID = "createChange"

// OpenAPIDocumentName is the path of the embedded document inside FS.
const OpenAPIDocumentName = "openapi.yaml"

//go:embed openapi.yaml
var assets embed.FS

// FS exposes the embedded OpenAPI document describing POST /changes so the
// form pipeline can load it through an fs.FS source.
func FS() fs.FS {
	return assets
}

// OpenAPI returns the raw embedded OpenAPI document.
func OpenAPI() []byte {
	raw, err := fs.ReadFile(assets, OpenAPIDocumentName)
	if err != nil {
		panic(err)
	}
	return raw
}
