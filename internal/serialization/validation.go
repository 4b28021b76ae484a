package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// Validation limits for untrusted input.
const (
	// DefaultMaxHeaderSize matches NumPy's max_header_size default.
	DefaultMaxHeaderSize = 10000
	// MaxRank bounds the number of shape dimensions (NumPy's NPY_MAXDIMS).
	MaxRank = 64
)

// ValidationLevel controls the strictness of header parsing.
type ValidationLevel int

const (
	// ValidationStrict rejects unknown and duplicate dictionary keys (default).
	ValidationStrict ValidationLevel = iota
	// ValidationNormal ignores unknown keys but still rejects duplicates.
	ValidationNormal
)

// String returns the level name.
func (l ValidationLevel) String() string {
	switch l {
	case ValidationStrict:
		return "strict"
	case ValidationNormal:
		return "normal"
	default:
		return fmt.Sprintf("ValidationLevel(%d)", int(l))
	}
}

var knownKeys = map[string]bool{
	keyDescr:        true,
	keyFortranOrder: true,
	keyShape:        true,
}

// validateKeys checks the dictionary's key set against the validation level.
// Duplicates have already been rejected by the parser.
func validateKeys(entries map[string]value, level ValidationLevel) error {
	for _, key := range []string{keyDescr, keyFortranOrder, keyShape} {
		if _, ok := entries[key]; !ok {
			field := key
			sentinel := ErrMalformedHeader
			switch key {
			case keyFortranOrder:
				sentinel = ErrFortranOrder
			case keyShape:
				sentinel = ErrMalformedShape
			}
			return formatErr(field, sentinel, "missing %q key", key)
		}
	}

	if level != ValidationStrict {
		return nil
	}

	var unknown []string
	for key := range entries {
		if !knownKeys[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return formatErr("header", ErrMalformedHeader, "unexpected keys %s", strings.Join(unknown, ", "))
	}
	return nil
}
