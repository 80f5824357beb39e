package records

import "strings"

// SelectionItem is one cached entry of a selection field.
type SelectionItem struct {
	ID    string
	Label string
	Image string
}

// Selection is the decoded form of a multi-select reference field: the
// ordered ids plus the optional cache of labels and images keyed by id.
type Selection struct {
	IDs   []string
	Items []SelectionItem
	index map[string]int
}

// Item returns the cached entry for id.
func (s Selection) Item(id string) (SelectionItem, bool) {
	if s.index == nil {
		return SelectionItem{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return SelectionItem{}, false
	}
	return s.Items[i], true
}

// ParseSelection decodes value as a selection. Supported shapes are
// {ids: [...], selectedItems: [...]}, {selectedItems: [...]} on its own, and a
// bare list of ids or items. When ids are absent they are taken from the items.
func ParseSelection(value any) Selection {
	var sel Selection
	switch v := Decode(value).(type) {
	case map[string]any:
		sel.Items = parseItems(Decode(v["selectedItems"]))
		if len(sel.Items) == 0 {
			sel.Items = parseItems(Decode(v["items"]))
		}
		sel.IDs = parseIDs(Decode(v["ids"]))
	case []any:
		objects := make([]any, 0, len(v))
		for _, entry := range v {
			if _, isObject := Decode(entry).(map[string]any); isObject {
				objects = append(objects, entry)
			} else if id := String(entry); id != "" {
				sel.IDs = append(sel.IDs, id)
			}
		}
		sel.Items = parseItems(objects)
	}

	if len(sel.IDs) == 0 {
		for _, item := range sel.Items {
			if item.ID != "" {
				sel.IDs = append(sel.IDs, item.ID)
			}
		}
	}

	sel.index = make(map[string]int, len(sel.Items))
	for i, item := range sel.Items {
		if item.ID == "" {
			continue
		}
		if _, seen := sel.index[item.ID]; !seen {
			sel.index[item.ID] = i
		}
	}
	return sel
}

func parseIDs(value any) []string {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(list))
	for _, entry := range list {
		if id := String(entry); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func parseItems(value any) []SelectionItem {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	items := make([]SelectionItem, 0, len(list))
	for _, entry := range list {
		obj, ok := Decode(entry).(map[string]any)
		if !ok {
			if label := PlainText(entry); label != "" {
				items = append(items, SelectionItem{Label: label})
			}
			continue
		}
		items = append(items, SelectionItem{
			ID:    String(firstPresent(obj, "id", "value")),
			Label: PlainText(firstPresent(obj, "label", "name", "title")),
			Image: ImageSource(firstPresent(obj, "image", "photo", "avatar")),
		})
	}
	return items
}

func firstPresent(obj map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := obj[key]; ok && v != nil {
			if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
				continue
			}
			return v
		}
	}
	return nil
}

// Tags reads a {selectedItems: [{label}]} field into at most max labels,
// dropping empty entries and keeping the original order. max <= 0 disables
// truncation.
func Tags(value any, max int) []string {
	obj, ok := Decode(value).(map[string]any)
	if !ok {
		return []string{}
	}
	list, ok := Decode(obj["selectedItems"]).([]any)
	if !ok {
		return []string{}
	}
	tags := make([]string, 0, len(list))
	for _, entry := range list {
		var label string
		if item, isObject := Decode(entry).(map[string]any); isObject {
			label = PlainText(item["label"])
		} else {
			label = PlainText(entry)
		}
		if label == "" {
			continue
		}
		tags = append(tags, label)
		if max > 0 && len(tags) == max {
			break
		}
	}
	return tags
}
