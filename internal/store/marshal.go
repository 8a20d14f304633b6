package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/floatlat/internal/ir"
)

// marshalFlags converts flags to canonical JSON TEXT for storage.
func marshalFlags(f ir.Flags) (string, error) {
	data, err := ir.MarshalCanonical(ir.FlagsValue(f))
	if err != nil {
		return "", fmt.Errorf("marshal flags: %w", err)
	}
	return string(data), nil
}

// unmarshalFlags parses flags written by marshalFlags.
func unmarshalFlags(data string) (ir.Flags, error) {
	var f ir.Flags
	if err := json.Unmarshal([]byte(data), &f); err != nil {
		return ir.Flags{}, fmt.Errorf("unmarshal flags: %w", err)
	}
	return f, nil
}

// boolToInt converts a Go bool to SQLite INTEGER.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
