package model

import internalmodel "github.com/goliatone/go-changewizard/internal/model"

// ParseExtensions flattens x-changewizard extensions into string metadata.
func ParseExtensions(ext map[string]any) map[string]string {
	return internalmodel.ParseExtensions(ext)
}

// ExtensionNamespace is the OpenAPI vendor extension the builder reads.
const ExtensionNamespace = internalmodel.ExtensionNamespace

// CanonicalizeExtensionValue turns an extension value into a string.
func CanonicalizeExtensionValue(value any) (string, bool) {
	return internalmodel.CanonicalizeExtensionValue(value)
}

// AllowedExtensionKeys returns the supported extension keys in sorted order.
func AllowedExtensionKeys() []string {
	return internalmodel.AllowedExtensionKeys()
}

// IsAllowedExtensionKey reports whether key is read by the form pipeline.
func IsAllowedExtensionKey(key string) bool {
	return internalmodel.IsAllowedExtensionKey(key)
}
