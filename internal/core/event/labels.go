// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

package event

import (
	"encoding/json"
	"fmt"
	"strings"
)

// LabelParseError reports a malformed label payload.
// Callers treat it as "no labels" and keep routing.
type LabelParseError struct {
	Raw string
	Err error
}

func (e *LabelParseError) Error() string {
	return fmt.Sprintf("failed to parse labels %q: %v", e.Raw, e.Err)
}

func (e *LabelParseError) Unwrap() error {
	return e.Err
}

// label is the subset of the GitHub label object we care about.
type label struct {
	Name string `json:"name"`
}

// ParseLabels decodes a JSON array of label objects into label names.
// Empty input yields no labels. Objects without a name are skipped.
func ParseLabels(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var decoded []label
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, &LabelParseError{Raw: raw, Err: err}
	}

	names := make([]string, 0, len(decoded))
	for _, l := range decoded {
		if l.Name == "" {
			continue
		}
		names = append(names, l.Name)
	}
	return names, nil
}
