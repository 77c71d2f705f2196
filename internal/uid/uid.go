// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package uid implements the per-group base-62 ordinal identity used by
// the diff engine. UIDs are assigned in first-sight order over a
// group's patch stream and are stable across an element's later
// occurrences.
package uid

// UID is a 1-based ordinal identity. The zero value is "unset" and
// serializes as the literal string "not set", matching the original
// implementation's sentinel for an element that never passed through
// assignment.
type UID struct {
	value uint32
}

// Unset is the zero-value UID.
func Unset() UID { return UID{} }

// IsSet reports whether this UID was assigned by a Generator.
func (u UID) IsSet() bool { return u.value != 0 }

// Ordinal returns the UID's assignment order, for callers that need a
// deterministic sort over a set of UIDs (the zero value sorts first).
func (u UID) Ordinal() uint32 { return u.value }

const (
	numDigits   = 10
	lowerDigits = 26
	upperDigits = 26
	base        = numDigits + lowerDigits + upperDigits
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// String renders the UID in base-62 (digits, then lowercase, then
// uppercase), or "not set" for the zero value.
func (u UID) String() string {
	if u.value == 0 {
		return "not set"
	}
	n := u.value
	var buf []byte
	for n != 0 {
		buf = append(buf, alphabet[n%base])
		n /= base
	}
	// reverse
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// MarshalText implements encoding.TextMarshaler so a UID can be
// embedded directly as a JSON string via the standard encoder.
func (u UID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// Generator hands out fresh UIDs in first-sight order, one per group.
type Generator struct {
	count uint32
}

// NewGenerator returns a Generator whose first Next() call returns
// ordinal 1.
func NewGenerator() *Generator {
	return &Generator{}
}

// Next returns the next never-before-issued UID.
func (g *Generator) Next() UID {
	g.count++
	return UID{value: g.count}
}
