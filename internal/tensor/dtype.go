// Package tensor provides the element-type registry and shape helpers shared by the npy codec.
package tensor

import "fmt"

// DataType represents runtime type information for array elements.
type DataType int

// Supported data types for arrays.
const (
	Int8 DataType = iota
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
)

// Descriptor describes the storage of a single element.
type Descriptor struct {
	Name    string // Canonical name (e.g., "uint32")
	Size    int    // Width in bytes: 1, 2, 4 or 8
	Integer bool   // Integer (true) or floating-point (false)
	Signed  bool   // Signed integer; always true for floats
}

// descriptors is indexed by DataType and never mutated after init.
var descriptors = [...]Descriptor{
	Int8:    {Name: "int8", Size: 1, Integer: true, Signed: true},
	Uint8:   {Name: "uint8", Size: 1, Integer: true, Signed: false},
	Int16:   {Name: "int16", Size: 2, Integer: true, Signed: true},
	Uint16:  {Name: "uint16", Size: 2, Integer: true, Signed: false},
	Int32:   {Name: "int32", Size: 4, Integer: true, Signed: true},
	Uint32:  {Name: "uint32", Size: 4, Integer: true, Signed: false},
	Int64:   {Name: "int64", Size: 8, Integer: true, Signed: true},
	Uint64:  {Name: "uint64", Size: 8, Integer: true, Signed: false},
	Float32: {Name: "float32", Size: 4, Integer: false, Signed: true},
	Float64: {Name: "float64", Size: 8, Integer: false, Signed: true},
}

// DataTypes returns every supported data type in declaration order.
func DataTypes() []DataType {
	types := make([]DataType, len(descriptors))
	for i := range descriptors {
		types[i] = DataType(i)
	}
	return types
}

// Valid reports whether dt is a member of the enumeration.
func (dt DataType) Valid() bool {
	return dt >= 0 && int(dt) < len(descriptors)
}

// Descriptor returns the registry entry for the data type.
//
// Panics for values outside the enumeration; such values cannot be produced by
// parsing and indicate a programming error.
func (dt DataType) Descriptor() Descriptor {
	if !dt.Valid() {
		panic(fmt.Sprintf("tensor: unknown data type %d", int(dt)))
	}
	return descriptors[dt]
}

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	return dt.Descriptor().Size
}

// Kind returns the NumPy kind character: 'i', 'u' or 'f'.
func (dt DataType) Kind() byte {
	d := dt.Descriptor()
	switch {
	case !d.Integer:
		return 'f'
	case d.Signed:
		return 'i'
	default:
		return 'u'
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	if !dt.Valid() {
		return "unknown"
	}
	return descriptors[dt].Name
}

// FromKind maps a NumPy kind character and byte width to a DataType.
// Only 'i' and 'u' with widths 1, 2, 4, 8 and 'f' with widths 4, 8 are accepted.
func FromKind(kind byte, width int) (DataType, bool) {
	for i, d := range descriptors {
		dt := DataType(i)
		if d.Size == width && dt.Kind() == kind {
			return dt, true
		}
	}
	return 0, false
}
