package storage

import (
	"encoding/json"
	"fmt"
	"strings"
)

// encodeList renders a string list as JSON array text for a TEXT column.
func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

// decodeList is the inverse of encodeList. Blank text decodes to an empty,
// non-nil list.
func decodeList(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
