package todo

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Encode serializes items into the slot format. An empty list encodes as [].
func Encode(items []Item) ([]byte, error) {
	if items == nil {
		items = make([]Item, 0)
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode items: %w", err)
	}
	return data, nil
}

// Decode parses slot contents.
//
// Returns an error for anything that is not a JSON array of item objects.
// Records that would break the list invariants are dropped rather than
// failing the whole load: a missing id, blank text, or an id seen earlier
// in the array. dropped counts them. Text is trimmed and a missing notes
// field decodes as "".
func Decode(data []byte) (items []Item, dropped int, err error) {
	var raw []Item
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("failed to decode items: %w", err)
	}
	if raw == nil {
		// JSON null
		return make([]Item, 0), 0, nil
	}

	items = make([]Item, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		item.Text = strings.TrimSpace(item.Text)
		if item.ID == "" || item.Text == "" {
			dropped++
			continue
		}
		if _, dup := seen[item.ID]; dup {
			dropped++
			continue
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}

	return items, dropped, nil
}
