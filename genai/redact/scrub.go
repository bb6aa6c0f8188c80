package redact

import (
	"encoding/json"
	"io"
	"os"
	"strings"
)

// KeysEnv overrides the sensitive key list (comma-separated).
const KeysEnv = "AGNO_REDACT_KEYS"

const mask = "***REDACTED***"

var defaultKeys = []string{
	"api_key", "apikey", "authorization", "password", "secret", "token", "bearer", "client_secret",
}

// DefaultKeys returns the sensitive keys, honouring KeysEnv.
func DefaultKeys() []string {
	if env := strings.TrimSpace(os.Getenv(KeysEnv)); env != "" {
		parts := strings.Split(env, ",")
		for i := range parts {
			parts[i] = strings.ToLower(strings.TrimSpace(parts[i]))
		}
		return parts
	}
	return append([]string(nil), defaultKeys...)
}

// ScrubJSONBytes masks values of keys (case-insensitive) anywhere in a JSON
// document. Non-JSON input is returned unchanged.
func ScrubJSONBytes(data []byte, keys []string) []byte {
	if len(data) == 0 {
		return data
	}
	if len(keys) == 0 {
		keys = DefaultKeys()
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[strings.ToLower(strings.TrimSpace(k))] = struct{}{}
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return data
	}
	out, err := json.Marshal(scrubValue(v, set))
	if err != nil {
		return data
	}
	return out
}

func scrubValue(v interface{}, keys map[string]struct{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			if _, ok := keys[strings.ToLower(k)]; ok {
				t[k] = mask
				continue
			}
			t[k] = scrubValue(val, keys)
		}
		return t
	case []interface{}:
		for i := range t {
			t[i] = scrubValue(t[i], keys)
		}
		return t
	}
	return v
}

// Writer scrubs each write as one JSON document, as written by json.Encoder.
type Writer struct {
	w    io.Writer
	keys []string
}

// NewWriter wraps w; empty keys means DefaultKeys.
func NewWriter(w io.Writer, keys ...string) *Writer {
	if len(keys) == 0 {
		keys = DefaultKeys()
	}
	return &Writer{w: w, keys: keys}
}

func (w *Writer) Write(p []byte) (int, error) {
	trimmed := strings.TrimRight(string(p), "\n")
	out := ScrubJSONBytes([]byte(trimmed), w.keys)
	if len(trimmed) < len(p) {
		out = append(out, '\n')
	}
	if _, err := w.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}
