package records

import (
	"encoding/json"
	"strings"

	"github.com/goliatone/go-showcase/pkg/interfaces"
)

// Record is a loosely typed content entry.
type Record = interfaces.Record

// Kind tags the shape a field value was classified into.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindPlain
	KindNumber
	KindBool
	KindList
	KindObject
	KindRichText
	KindImageRef
	KindSelection
	KindFlag
)

var kindNames = [...]string{"empty", "plain", "number", "bool", "list", "object", "rich_text", "image_ref", "selection", "flag"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is the classified form of a raw field. Exactly one payload is
// meaningful for a given Kind:
//
//	Plain     -> Text
//	Number    -> Number
//	Bool      -> Bool
//	List      -> List
//	Object    -> Object
//	RichText  -> Object (the {type,value} / {content} / {text} node)
//	ImageRef  -> Object (the node carrying url/src/path)
//	Selection -> Object (the node carrying ids/selectedItems)
//	Flag      -> Object (the {value} node)
type Value struct {
	Kind   Kind
	Text   string
	Number float64
	Bool   bool
	List   []any
	Object map[string]any
	Raw    any
}

// IsZero reports whether the value carries nothing renderable.
func (v Value) IsZero() bool {
	switch v.Kind {
	case KindEmpty:
		return true
	case KindPlain:
		return strings.TrimSpace(v.Text) == ""
	case KindList:
		return len(v.List) == 0
	default:
		return false
	}
}

// Lookup resolves field on record and classifies the result.
func Lookup(record Record, field string) Value {
	return Classify(Resolve(record, field))
}

// Classify maps a decoded value onto its tagged variant.
func Classify(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Value{Kind: KindEmpty}
	case string:
		return Value{Kind: KindPlain, Text: v, Raw: raw}
	case bool:
		return Value{Kind: KindBool, Bool: v, Raw: raw}
	case json.Number, float64, float32, int, int32, int64, uint, uint32, uint64:
		n, _ := Number(v)
		return Value{Kind: KindNumber, Number: n, Raw: raw}
	case []any:
		return Value{Kind: KindList, List: v, Raw: raw}
	case []string:
		list := make([]any, len(v))
		for i, s := range v {
			list[i] = s
		}
		return Value{Kind: KindList, List: list, Raw: raw}
	case map[string]any:
		return Value{Kind: classifyObject(v), Object: v, Raw: raw}
	default:
		return Value{Kind: KindObject, Raw: raw}
	}
}

func classifyObject(obj map[string]any) Kind {
	if _, ok := obj["selectedItems"]; ok {
		return KindSelection
	}
	if _, ok := obj["ids"]; ok {
		return KindSelection
	}
	if _, ok := firstImageKey(obj); ok {
		return KindImageRef
	}
	if _, ok := obj["content"]; ok {
		return KindRichText
	}
	if _, ok := obj["text"]; ok {
		return KindRichText
	}
	if _, ok := obj["value"]; ok {
		typ, hasType := obj["type"]
		switch {
		case !hasType:
			return KindFlag
		case typ == "image":
			return KindImageRef
		default:
			return KindRichText
		}
	}
	return KindObject
}

// PlainText flattens the value into markup-free text.
func (v Value) PlainText() string {
	switch v.Kind {
	case KindEmpty:
		return ""
	case KindPlain:
		return PlainText(v.Text)
	default:
		return PlainText(v.Raw)
	}
}

// Truthy evaluates the value as a boolean flag.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindEmpty:
		return false
	case KindBool:
		return v.Bool
	default:
		return Truthy(v.Raw)
	}
}

// ImageSource returns the raw image reference carried by the value.
func (v Value) ImageSource() string {
	switch v.Kind {
	case KindEmpty, KindBool, KindNumber:
		return ""
	default:
		return ImageSource(v.Raw)
	}
}

// Selection decodes the value as a selection field.
func (v Value) Selection() Selection {
	switch v.Kind {
	case KindEmpty, KindPlain, KindNumber, KindBool:
		return ParseSelection(nil)
	default:
		return ParseSelection(v.Raw)
	}
}
