package model

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

const (
	// ExtensionNamespace is the OpenAPI vendor extension read by the builder.
	ExtensionNamespace = "x-changewizard"
	extensionPrefix    = ExtensionNamespace + "-"
)

// ParseExtensions flattens x-changewizard extensions into string metadata.
// Both the namespaced object form ("x-changewizard": {widget: tags}) and the
// prefixed form ("x-changewizard-widget": tags) are accepted. It returns nil
// when nothing usable is present.
func ParseExtensions(ext map[string]any) map[string]string {
	if len(ext) == 0 {
		return nil
	}
	out := make(map[string]string)
	if nested, ok := ext[ExtensionNamespace].(map[string]any); ok {
		for key, value := range nested {
			if s, ok := CanonicalizeExtensionValue(value); ok {
				out[key] = s
			}
		}
	}
	for key, value := range ext {
		if !strings.HasPrefix(key, extensionPrefix) {
			continue
		}
		name := strings.TrimPrefix(key, extensionPrefix)
		if name == "" {
			continue
		}
		if s, ok := CanonicalizeExtensionValue(value); ok {
			out[name] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CanonicalizeExtensionValue turns an extension value into a deterministic
// string. Maps and slices are JSON encoded. Returns false for empty or
// unsupported values.
func CanonicalizeExtensionValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, v != ""
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case map[string]any, map[string]string, []any, []string:
		payload, err := json.Marshal(v)
		if err != nil || string(payload) == "{}" || string(payload) == "[]" {
			return "", false
		}
		return string(payload), true
	default:
		return "", false
	}
}

// uiHintKeys are the metadata keys that double as renderer hints.
var uiHintKeys = map[string]struct{}{
	"widget":      {},
	"placeholder": {},
	"helpText":    {},
}

// extensionKeys lists every key the pipeline reads from x-changewizard
// extensions.
var extensionKeys = map[string]struct{}{
	"widget":        {},
	"placeholder":   {},
	"helpText":      {},
	"labels":        {},
	"required-when": {},
}

// AllowedExtensionKeys returns the supported extension keys in sorted order.
func AllowedExtensionKeys() []string {
	keys := make([]string, 0, len(extensionKeys))
	for key := range extensionKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// IsAllowedExtensionKey reports whether key is read by the pipeline.
func IsAllowedExtensionKey(key string) bool {
	_, ok := extensionKeys[key]
	return ok
}

func filterUIHints(metadata map[string]string) map[string]string {
	var out map[string]string
	for key, value := range metadata {
		if _, ok := uiHintKeys[key]; !ok {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[key] = value
	}
	return out
}
