// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

package router

import (
	"fmt"
	"strings"
)

// Priority orders routing decisions. Lower values are more urgent and sort
// first.
type Priority int

const (
	Critical Priority = iota
	High
	Medium
	Low
)

var priorityNames = [...]string{
	Critical: "critical",
	High:     "high",
	Medium:   "medium",
	Low:      "low",
}

// String returns the lower-case name of the priority.
func (p Priority) String() string {
	if p < Critical || p > Low {
		return fmt.Sprintf("priority(%d)", int(p))
	}
	return priorityNames[p]
}

// Rank returns the sort rank of the priority.
func (p Priority) Rank() int {
	return int(p)
}

// ParsePriority converts a priority name into a Priority.
func ParsePriority(s string) (Priority, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for p, n := range priorityNames {
		if n == name {
			return Priority(p), nil
		}
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}

// MarshalText encodes the priority by name.
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a priority name.
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
