package schema

import (
	"strings"
)

// ============================================================================
// SHAPE CLASSIFIER — Structural inference for statistics payloads
// ============================================================================
// Inspects a payload and tags it with one of a closed set of shapes. Every
// renderer goes through this classification; none of them probe keys on
// their own.
//
// Classification pipeline:
//   1. Not a keyed structure → UNRECOGNIZED
//   2. Unwrap one container level (dataTable, globalDistribution)
//   3. Every value is an object → MATRIX (period → category → value)
//   4. Only scalar values, at least one usable → FLAT (category → value)
//   5. Detect percent companions (<category>_pct) and the aggregate key
//
// Anything else, including an empty payload or one where nothing survives the
// exclusion rules, is UNRECOGNIZED.
// ============================================================================

const (
	// PercentSuffix marks a percent companion key.
	PercentSuffix = "_pct"
	// TotalKey is the reserved aggregate category.
	TotalKey = "total"
)

// ContainerKeys are the wrapper keys unwrapped before classification, in
// priority order.
var ContainerKeys = []string{"dataTable", "globalDistribution"}

// ShapeKind is the closed set of payload shapes.
type ShapeKind int

const (
	Unrecognized ShapeKind = iota
	Flat
	Matrix
)

func (k ShapeKind) String() string {
	switch k {
	case Flat:
		return "flat"
	case Matrix:
		return "matrix"
	default:
		return "unrecognized"
	}
}

// MarshalText renders the kind by name in JSON output.
func (k ShapeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Shape is the classifier output.
type Shape struct {
	Kind       ShapeKind `json:"kind"`
	HasPercent bool      `json:"hasPercent"`
	IsMatrix   bool      `json:"isMatrix"`
	HasTotal   bool      `json:"hasTotal"`
	Periods    []string  `json:"periods,omitempty"`
	Container  string    `json:"container,omitempty"`
	Body       Node      `json:"-"`
}

// ============================================================================
// KEY RULES
// ============================================================================

// IsPercentKey reports whether key is a percent companion. The bare suffix
// names no category and is not one.
func IsPercentKey(key string) bool {
	return len(key) > len(PercentSuffix) && strings.HasSuffix(key, PercentSuffix)
}

// StripPercent returns the category a percent companion belongs to.
func StripPercent(key string) string {
	return strings.TrimSuffix(key, PercentSuffix)
}

// PercentKey returns the companion key of a category.
func PercentKey(category string) string {
	return category + PercentSuffix
}

// IsPercentCategory reports whether key is a percent companion of a
// displayable category. total_pct never is.
func IsPercentCategory(key string) bool {
	return IsPercentKey(key) && StripPercent(key) != TotalKey
}

// isDisplayableKey reports whether a key yields a row in at least one mode.
func isDisplayableKey(key string) bool {
	return !IsPercentKey(key) || IsPercentCategory(key)
}

// ============================================================================
// CLASSIFY
// ============================================================================

// Unwrap returns the body held by the first container key that holds a
// non-empty object, together with that key. Other payloads come back as-is.
func Unwrap(n Node) (Node, string) {
	if !n.IsObject() {
		return n, ""
	}
	for _, key := range ContainerKeys {
		if inner, ok := n.Get(key); ok && inner.IsObject() && inner.Len() > 0 {
			return inner, key
		}
	}
	return n, ""
}

// Classify tags a payload with its shape. It is total and pure.
func Classify(n Node) Shape {
	if !n.IsObject() {
		return Shape{Kind: Unrecognized, Body: n}
	}

	body, container := Unwrap(n)
	shape := Shape{Kind: Unrecognized, Body: body, Container: container}
	if body.Len() == 0 {
		return shape
	}

	if allObjects(body) {
		return classifyMatrix(shape)
	}
	if anyComposite(body) {
		// mixed scalar/object payloads have no consistent reading
		return shape
	}
	return classifyFlat(shape)
}

func classifyMatrix(shape Shape) Shape {
	usable := false
	for _, period := range shape.Body.Fields {
		for _, f := range period.Value.Fields {
			if isDisplayableKey(f.Key) {
				usable = true
			}
			if IsPercentCategory(f.Key) {
				shape.HasPercent = true
			}
			if f.Key == TotalKey {
				shape.HasTotal = true
			}
		}
	}
	if !usable {
		return Shape{Kind: Unrecognized, Body: shape.Body, Container: shape.Container}
	}

	shape.Kind = Matrix
	shape.IsMatrix = true
	shape.Periods = shape.Body.Keys()
	return shape
}

func classifyFlat(shape Shape) Shape {
	usable := false
	for _, f := range shape.Body.Fields {
		if isDisplayableKey(f.Key) && f.Value.IsUsableScalar() {
			usable = true
		}
		if IsPercentCategory(f.Key) {
			shape.HasPercent = true
		}
		if f.Key == TotalKey {
			shape.HasTotal = true
		}
	}
	if !usable {
		return Shape{Kind: Unrecognized, Body: shape.Body, Container: shape.Container}
	}

	shape.Kind = Flat
	return shape
}

func allObjects(n Node) bool {
	for _, f := range n.Fields {
		if !f.Value.IsObject() {
			return false
		}
	}
	return true
}

func anyComposite(n Node) bool {
	for _, f := range n.Fields {
		if f.Value.IsComposite() {
			return true
		}
	}
	return false
}
