package domain

import (
	"errors"
	"fmt"
	"strings"
)

// KeyDelimiter separates the prefix from the unit id in existence-count and
// metric keys, e.g. "Troops:Foo".
const KeyDelimiter = ":"

// ExcludedPrefix marks existence-count rows that are not units.
const ExcludedPrefix = "Crates"

var ErrMalformedKey = errors.New("malformed key")

type KeyError struct {
	Key string
}

func (e *KeyError) Error() string { return fmt.Sprintf("%s %q", ErrMalformedKey, e.Key) }

func (e *KeyError) Unwrap() error { return ErrMalformedKey }

type SampleError struct {
	Raw string
}

func (e *SampleError) Error() string { return "monitoring sample is not a 4-tuple: " + e.Raw }

type UnitKey struct {
	Prefix string
	ID     string
}

func (k UnitKey) String() string { return k.Prefix + KeyDelimiter + k.ID }

// ParseUnitKey splits raw on the first delimiter. Both parts must be non-empty.
func ParseUnitKey(raw string) (UnitKey, error) {
	prefix, id, ok := strings.Cut(raw, KeyDelimiter)
	if !ok || prefix == "" || id == "" {
		return UnitKey{}, &KeyError{Key: raw}
	}
	return UnitKey{Prefix: prefix, ID: id}, nil
}

// UnitID is ParseUnitKey(raw).ID.
func UnitID(raw string) (string, error) {
	k, err := ParseUnitKey(raw)
	if err != nil {
		return "", err
	}
	return k.ID, nil
}

// IsExcluded reports whether an existence-count key belongs to a non-unit row.
func IsExcluded(raw string) bool {
	return strings.HasPrefix(raw, ExcludedPrefix+KeyDelimiter)
}
