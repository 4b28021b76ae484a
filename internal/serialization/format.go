package serialization

// Format constants.
const (
	MagicBytes      = "\x93NUMPY"
	MagicSize       = len(MagicBytes)
	FormatVersion   = 1  // v1: uint16 header length
	FormatVersionV2 = 2  // v2: uint32 header length
	HeaderAlignment = 64 // Preamble (magic..header) length is a multiple of 64
	PreambleSizeV1  = MagicSize + 2 + 2
	PreambleSizeV2  = MagicSize + 2 + 4
	MaxHeaderLenV1  = 1<<16 - 1
)

// DefaultAlignment is the row alignment used by aligned loads when the caller
// has no specific requirement (AVX2 register width).
const DefaultAlignment = 32

// Header dictionary keys.
const (
	keyDescr        = "descr"
	keyFortranOrder = "fortran_order"
	keyShape        = "shape"
)

// Byte-order marks accepted in the descr type string.
const (
	orderLittle  = '<'
	orderNative  = '='
	orderIgnored = '|'
	orderBig     = '>'
)
