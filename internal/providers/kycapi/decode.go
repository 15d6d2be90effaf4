package kycapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// truthy follows loose upstream semantics: false, 0, "", and null are off; everything else is on.
// A rule that comes out on is locked downstream, so 1 locks the same way true does.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	default:
		return true
	}
}

func decodeRules(raw []byte) (map[string]bool, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode %s: %w", resourceBlockingRules, err)
	}
	out := make(map[string]bool, len(payload))
	for key, value := range payload {
		out[key] = truthy(value)
	}
	return out, nil
}

// decodeList decodes a JSON array; an empty object or null is treated as an empty list.
func decodeList[T any](raw []byte, resource string) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	if trimmed[0] == '{' {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("decode %s: %w", resource, err)
		}
		if len(obj) == 0 {
			return []T{}, nil
		}
		return nil, fmt.Errorf("decode %s: expected a list", resource)
	}
	var out []T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", resource, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
