// Package activity defines the closed set of mini-activity kinds, the typed
// results they produce, and the capability contract a mini-activity module
// must satisfy.
//
// Key types:
//   - [Type] - the closed set of activity kinds a placement spot can trigger
//   - [Result] - sealed sum type, one variant per activity kind
//   - [Module] - start/stop contract the lifecycle coordinator drives
//
// The orchestration core never inspects a module's internal mechanics; it
// only starts it, stops it, and consumes the [Result] the module reports
// through its completion callback.
package activity

import "strings"

// Type identifies a kind of mini-activity.
type Type string

const (
	// TypeLantern is the lantern brightness-hold activity.
	TypeLantern Type = "lantern"
	// TypeOrigami is the origami folding activity.
	TypeOrigami Type = "origami"
	// TypeCalligraphy is the brush-stroke calligraphy activity.
	TypeCalligraphy Type = "calligraphy"
)

// All returns every valid activity type in a stable order.
func All() []Type {
	return []Type{TypeLantern, TypeOrigami, TypeCalligraphy}
}

// IsValid reports whether t is one of the known activity types.
func (t Type) IsValid() bool {
	switch t {
	case TypeLantern, TypeOrigami, TypeCalligraphy:
		return true
	}
	return false
}

// ParseType converts a raw string (e.g. from a layout file) into a [Type].
// Leading/trailing whitespace is trimmed and matching is case-insensitive.
// Returns false if the value is not a known activity type.
func ParseType(raw string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	return t, t.IsValid()
}
