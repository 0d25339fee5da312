package domain

import "unique"

// InternedString wraps a unique.Handle[string]. Package names and version
// strings repeat heavily across a lock file (every dependency edge carries
// both), so interning keeps the index compact and makes equality a pointer
// comparison.
type InternedString struct {
	h unique.Handle[string]
}

// Intern creates a new InternedString from a string.
func Intern(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	var zero unique.Handle[string]
	if is.h == zero {
		return ""
	}
	return is.h.Value()
}

// MarshalText implements encoding.TextMarshaler so interned values can be
// serialized directly in JSON reports.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}
