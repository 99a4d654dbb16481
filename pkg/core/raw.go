package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Raw is the nested key-value structure an interchange document decodes to.
// Values follow encoding/json (or yaml.v3) conventions: maps, slices, strings,
// numbers, bools and nil.
type Raw map[string]any

// rawList converts a decoded list value to []any.
func rawList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []Raw:
		out := make([]any, len(l))
		for i, r := range l {
			out[i] = r
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, r := range l {
			out[i] = r
		}
		return out, true
	}
	return nil, false
}

// rawMap converts a decoded mapping value to Raw.
func rawMap(v any) (Raw, bool) {
	switch m := v.(type) {
	case Raw:
		return m, true
	case map[string]any:
		return Raw(m), true
	}
	return nil, false
}

// rawInt converts any numeric representation produced by the decoders to an int.
// Fractional values are rejected.
func rawInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := strconv.Atoi(string(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// rawSource normalises a cell source. nbformat allows either a list of lines
// or a single multi-line string; the latter is split keeping line endings.
func rawSource(v any) ([]string, bool) {
	switch s := v.(type) {
	case string:
		return splitLines(s), true
	case []string:
		return append([]string(nil), s...), true
	}
	l, ok := rawList(v)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		line, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, line)
	}
	return out, true
}

func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// SplitVersion parses a "<major>.<minor>" version string.
func SplitVersion(version string) (major, minor int, err error) {
	parts := strings.Split(version, ".")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedVersion, version)
	}
	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedVersion, version)
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedVersion, version)
	}
	return major, minor, nil
}
