package records

import (
	"slices"
	"sort"
	"strings"
)

// Block is an object-shaped entry of a rich content blocks array.
type Block struct {
	Type     string
	Order    float64
	HasOrder bool
	Position int
	Fields   map[string]any
}

// Blocks decodes a content blocks array, keeping object entries only, and
// stable-sorts them by their numeric order. Blocks without a valid order sort
// after every ordered block; ties keep their original position.
func Blocks(value any) []Block {
	list, ok := Decode(value).([]any)
	if !ok {
		return nil
	}
	blocks := make([]Block, 0, len(list))
	for i, entry := range list {
		obj, ok := Decode(entry).(map[string]any)
		if !ok {
			continue
		}
		block := Block{
			Type:     strings.ToLower(strings.TrimSpace(String(obj["type"]))),
			Position: i,
			Fields:   obj,
		}
		if raw, present := obj["order"]; present {
			block.Order, block.HasOrder = Number(Decode(raw))
		}
		blocks = append(blocks, block)
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		a, b := blocks[i], blocks[j]
		if a.HasOrder != b.HasOrder {
			return a.HasOrder
		}
		if a.HasOrder && a.Order != b.Order {
			return a.Order < b.Order
		}
		return false
	})
	return blocks
}

var imageBlockKeys = []string{"image", "src", "url", "value", "file"}

// BlockImages returns the raw image references carried by image and gallery
// blocks, in render order. Entries without a usable reference are skipped.
func BlockImages(value any) []string {
	var out []string
	for _, block := range Blocks(value) {
		switch block.Type {
		case "image":
			for _, key := range imageBlockKeys {
				if src := ImageSource(block.Fields[key]); src != "" {
					out = append(out, src)
					break
				}
			}
		case "gallery":
			list, _ := Decode(block.Fields["images"]).([]any)
			for _, entry := range list {
				if src := ImageSource(entry); src != "" {
					out = append(out, src)
				}
			}
		}
	}
	return out
}

// SortedKeys returns the record keys in lexical order.
func SortedKeys(record Record) []string {
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
