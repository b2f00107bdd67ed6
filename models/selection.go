package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FolderEntry is one subfolder of a project's preview tree and the image
// files inside it. It is derived from the filesystem on every read.
type FolderEntry struct {
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

// SelectionPaths accepts either a single string or an array of strings and
// always holds a sequence. A lone value becomes a one-element slice.
type SelectionPaths []string

func (s *SelectionPaths) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = SelectionPaths{}
		return nil
	}

	if data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return fmt.Errorf("invalid selection value: %w", err)
		}
		*s = SelectionPaths{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("selection must be a string or an array of strings: %w", err)
	}
	if many == nil {
		many = []string{}
	}
	*s = SelectionPaths(many)
	return nil
}

// SubmitSelectionRequest is the client's submission for a share token.
type SubmitSelectionRequest struct {
	Selected SelectionPaths `json:"selected"`
}

// CoerceSelection normalizes a dynamically shaped submission into a sequence.
// Strings become one-element slices; nil becomes an empty slice.
func CoerceSelection(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case string:
		return []string{v}, nil
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case SelectionPaths:
		return CoerceSelection([]string(v))
	case []interface{}:
		out := make([]string, 0, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, &ValidationError{
					Field:   "selected",
					Message: fmt.Sprintf("item %d is not a string", i),
				}
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, &ValidationError{Field: "selected", Message: fmt.Sprintf("unsupported type %T", value)}
	}
}
