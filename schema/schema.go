package schema

import (
	"bytes"
	"math"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/zeebo/xxh3"
)

// ============================================================================
// PAYLOAD — Ordered, loosely-typed statistics payload
// ============================================================================
// Backends answer with JSON whose structure is never declared. Key order is
// meaningful (periods and categories render in first-seen order), so payloads
// are held as an ordered tree instead of map[string]any.
//
// Nothing downstream mutates a Node. Builders read it, the classifier reads it,
// the projection engine reads it.
// ============================================================================

// Kind is the JSON type of a Node.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "null"
	}
}

// Node is one value of a payload.
//
// Numbers keep their source literal in Str so that echoing a value never
// changes its spelling.
type Node struct {
	Kind   Kind
	Bool   bool
	Num    float64
	Str    string
	Fields []Field
	Items  []Node
}

// Field is one key of an object, in source order.
type Field struct {
	Key   string
	Value Node
}

// ============================================================================
// CONSTRUCTORS
// ============================================================================

// Null returns a null node.
func Null() Node { return Node{Kind: KindNull} }

// Bool returns a boolean node.
func Bool(b bool) Node { return Node{Kind: KindBool, Bool: b} }

// Number returns a numeric node. Non-finite values become null.
func Number(f float64) Node {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Node{Kind: KindNumber, Num: f, Str: strconv.FormatFloat(f, 'f', -1, 64)}
}

// String returns a string node.
func String(s string) Node { return Node{Kind: KindString, Str: s} }

// Object returns an object node with the given fields in order.
// A repeated key keeps its first position and its last value.
func Object(fields ...Field) Node {
	n := Node{Kind: KindObject, Fields: make([]Field, 0, len(fields))}
	index := make(map[string]int, len(fields))
	for _, f := range fields {
		if i, ok := index[f.Key]; ok {
			n.Fields[i].Value = f.Value
			continue
		}
		index[f.Key] = len(n.Fields)
		n.Fields = append(n.Fields, f)
	}
	return n
}

// Array returns an array node.
func Array(items ...Node) Node { return Node{Kind: KindArray, Items: items} }

// F is shorthand for building object fields.
func F(key string, value Node) Field { return Field{Key: key, Value: value} }

// ============================================================================
// ACCESSORS
// ============================================================================

// IsObject reports whether the node is a keyed structure.
func (n Node) IsObject() bool { return n.Kind == KindObject }

// IsComposite reports whether the node is an object or an array.
func (n Node) IsComposite() bool { return n.Kind == KindObject || n.Kind == KindArray }

// IsUsableScalar reports whether the node is a number or a non-empty string.
func (n Node) IsUsableScalar() bool {
	return n.Kind == KindNumber || (n.Kind == KindString && n.Str != "")
}

// Len returns the number of fields of an object or items of an array.
func (n Node) Len() int {
	switch n.Kind {
	case KindObject:
		return len(n.Fields)
	case KindArray:
		return len(n.Items)
	}
	return 0
}

// Get returns the value stored under key.
func (n Node) Get(key string) (Node, bool) {
	if n.Kind != KindObject {
		return Node{}, false
	}
	for _, f := range n.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Node{}, false
}

// Keys returns the object keys in source order.
func (n Node) Keys() []string {
	if n.Kind != KindObject {
		return nil
	}
	keys := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Text is the value as it should be echoed when it is not formatted as a number.
func (n Node) Text() string {
	switch n.Kind {
	case KindString, KindNumber:
		return n.Str
	case KindBool:
		return strconv.FormatBool(n.Bool)
	}
	return ""
}

// ============================================================================
// ENCODING + IDENTITY
// ============================================================================

// MarshalJSON encodes the node with its key order preserved.
func (n Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n Node) encode(buf *bytes.Buffer) error {
	switch n.Kind {
	case KindBool:
		buf.WriteString(strconv.FormatBool(n.Bool))
	case KindNumber:
		if n.Str != "" {
			buf.WriteString(n.Str)
		} else {
			buf.WriteString(strconv.FormatFloat(n.Num, 'f', -1, 64))
		}
	case KindString:
		b, err := json.Marshal(n.Str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindObject:
		buf.WriteByte('{')
		for i, f := range n.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(f.Key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := f.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindArray:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		buf.WriteString("null")
	}
	return nil
}

// Fingerprint identifies a payload by content. Two nodes with the same keys,
// order and literals share a fingerprint.
func (n Node) Fingerprint() uint64 {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return 0
	}
	return xxh3.Hash(buf.Bytes())
}
