package schema

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// ============================================================================
// DECODING — JSON bytes / gjson results / Go values → Node
// ============================================================================
// gjson walks objects in document order, which is the whole reason it is used
// here: encoding/json into a map would lose the period and category order.
// ============================================================================

// ErrInvalidJSON is returned when a payload is not well-formed JSON.
var ErrInvalidJSON = errors.New("payload is not valid JSON")

// Parse decodes a JSON document into an ordered Node.
func Parse(data []byte) (Node, error) {
	if !gjson.ValidBytes(data) {
		return Node{}, ErrInvalidJSON
	}
	return FromResult(gjson.ParseBytes(data)), nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) Node {
	n, err := Parse([]byte(s))
	if err != nil {
		panic(fmt.Sprintf("schema.MustParse: %v", err))
	}
	return n
}

// FromResult converts a gjson result, keeping object key order.
func FromResult(r gjson.Result) Node {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return Node{Kind: KindNumber, Num: r.Num, Str: r.Raw}
	case gjson.String:
		return String(r.Str)
	}

	if r.IsObject() {
		var fields []Field
		r.ForEach(func(key, value gjson.Result) bool {
			fields = append(fields, Field{Key: key.String(), Value: FromResult(value)})
			return true
		})
		return Object(fields...)
	}
	if r.IsArray() {
		items := []Node{}
		r.ForEach(func(_, value gjson.Result) bool {
			items = append(items, FromResult(value))
			return true
		})
		return Array(items...)
	}
	return Null()
}

// FromValue converts an already-decoded Go value. Maps carry no order, so their
// keys are sorted to keep the result deterministic.
func FromValue(v any) Node {
	switch x := v.(type) {
	case nil:
		return Null()
	case Node:
		return x
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return Node{Kind: KindNumber, Num: f, Str: x.String()}
		}
		return String(x.String())
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, 0, len(keys))
		for _, k := range keys {
			fields = append(fields, Field{Key: k, Value: FromValue(x[k])})
		}
		return Object(fields...)
	case []any:
		items := make([]Node, 0, len(x))
		for _, item := range x {
			items = append(items, FromValue(item))
		}
		return Array(items...)
	}
	return String(fmt.Sprint(v))
}
