package serialization

import (
	"errors"
	"strings"
	"testing"

	"github.com/born-ml/npy/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHeaderExact(t *testing.T) {
	header, payload, err := BuildHeader(tensor.Uint32, tensor.Shape{32})
	require.NoError(t, err)

	assert.Equal(t, int64(128), payload)
	assert.Equal(t, "{'descr':'u4','fortran_order':False,'shape':(32,)}   \n", header)
	assert.Len(t, header, 54)
}

func TestBuildHeaderTrailingComma(t *testing.T) {
	header, payload, err := BuildHeader(tensor.Float64, tensor.Shape{3, 4})
	require.NoError(t, err)

	assert.Equal(t, int64(96), payload)
	assert.True(t, strings.HasPrefix(header, "{'descr':'f8','fortran_order':False,'shape':(3,4,)}"))
}

func TestBuildHeaderPadding(t *testing.T) {
	shapes := []tensor.Shape{
		{1},
		{0},
		{32},
		{10, 7},
		{2, 3, 4},
		{123456789, 2, 3, 4},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	}

	for _, dt := range tensor.DataTypes() {
		for _, shape := range shapes {
			header, _, err := BuildHeader(dt, shape)
			require.NoError(t, err)

			assert.Zero(t, (PreambleSizeV1+len(header))%HeaderAlignment, "%s %v", dt, shape)
			assert.True(t, strings.HasSuffix(header, "\n"), "%s %v", dt, shape)
			assert.Equal(t, 1, strings.Count(header, "\n"), "newline must be last")
		}
	}
}

func TestBuildHeaderRejectsBadShapes(t *testing.T) {
	_, _, err := BuildHeader(tensor.Int8, tensor.Shape{})
	assert.ErrorIs(t, err, ErrMalformedShape)

	_, _, err = BuildHeader(tensor.Int8, tensor.Shape{3, -1})
	assert.ErrorIs(t, err, ErrMalformedShape)

	_, _, err = BuildHeader(tensor.Float64, tensor.Shape{1 << 62, 4})
	assert.ErrorIs(t, err, ErrMalformedShape)
}

func TestBuildParseRoundTrip(t *testing.T) {
	for _, dt := range tensor.DataTypes() {
		header, _, err := BuildHeader(dt, tensor.Shape{2, 5, 3})
		require.NoError(t, err)

		h, err := ParseHeader(header, ValidationStrict)
		require.NoError(t, err)
		assert.Equal(t, dt, h.DType)
		assert.Equal(t, tensor.Shape{2, 5, 3}, h.Shape)
		assert.False(t, h.FortranOrder)
	}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		dtype tensor.DataType
		shape tensor.Shape
	}{
		{
			name:  "rank one",
			text:  "{'descr':'<f8','fortran_order':False,'shape':(10,)}",
			dtype: tensor.Float64,
			shape: tensor.Shape{10},
		},
		{
			name:  "rank two trailing comma",
			text:  "{'descr':'<i4','fortran_order':False,'shape':(3,4,)}",
			dtype: tensor.Int32,
			shape: tensor.Shape{3, 4},
		},
		{
			name:  "no trailing comma",
			text:  "{'descr':'<i4','fortran_order':False,'shape':(3,4)}",
			dtype: tensor.Int32,
			shape: tensor.Shape{3, 4},
		},
		{
			name:  "numpy spacing",
			text:  "{'descr': '<f4', 'fortran_order': False, 'shape': (2, 3), }          \n",
			dtype: tensor.Float32,
			shape: tensor.Shape{2, 3},
		},
		{
			name:  "key order",
			text:  "{'shape': (7,), 'fortran_order': False, 'descr': '|u1'}",
			dtype: tensor.Uint8,
			shape: tensor.Shape{7},
		},
		{
			name:  "native order mark",
			text:  "{'descr':'=u2','fortran_order':False,'shape':(1,)}",
			dtype: tensor.Uint16,
			shape: tensor.Shape{1},
		},
		{
			name:  "no order mark",
			text:  "{'descr':'u8','fortran_order':False,'shape':(4,)}",
			dtype: tensor.Uint64,
			shape: tensor.Shape{4},
		},
		{
			name:  "double quotes",
			text:  `{"descr": "<i8", "fortran_order": False, "shape": (5, 6, 7)}`,
			dtype: tensor.Int64,
			shape: tensor.Shape{5, 6, 7},
		},
		{
			name:  "python2 long",
			text:  "{'descr': '<i2', 'fortran_order': False, 'shape': (3L, 2L), }",
			dtype: tensor.Int16,
			shape: tensor.Shape{3, 2},
		},
		{
			name:  "zero extent",
			text:  "{'descr':'<f4','fortran_order':False,'shape':(0,)}",
			dtype: tensor.Float32,
			shape: tensor.Shape{0},
		},
		{
			name:  "trailing spaces after newline",
			text:  "{'descr':'i1','fortran_order':False,'shape':(2,)}\n      ",
			dtype: tensor.Int8,
			shape: tensor.Shape{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseHeader(tt.text, ValidationStrict)
			require.NoError(t, err)
			assert.Equal(t, tt.dtype, h.DType)
			assert.Equal(t, tt.shape, h.Shape)
		})
	}
}

func TestParseHeaderRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"big endian", "{'descr':'>f8','fortran_order':False,'shape':(10,)}", ErrBigEndian},
		{"fortran order", "{'descr':'<f8','fortran_order':True,'shape':(10,)}", ErrFortranOrder},
		{"fortran order integer", "{'descr':'<f8','fortran_order':0,'shape':(10,)}", ErrFortranOrder},
		{"fortran order missing", "{'descr':'<f8','shape':(10,)}", ErrFortranOrder},
		{"half float", "{'descr':'<f2','fortran_order':False,'shape':(10,)}", ErrUnsupportedDType},
		{"complex", "{'descr':'<c16','fortran_order':False,'shape':(10,)}", ErrUnsupportedDType},
		{"bool", "{'descr':'|b1','fortran_order':False,'shape':(10,)}", ErrUnsupportedDType},
		{"wide int", "{'descr':'<i16','fortran_order':False,'shape':(10,)}", ErrUnsupportedDType},
		{"odd width", "{'descr':'<u3','fortran_order':False,'shape':(10,)}", ErrUnsupportedDType},
		{"zero padded width", "{'descr':'<i08','fortran_order':False,'shape':(10,)}", ErrUnsupportedDType},
		{"zero width", "{'descr':'<f0','fortran_order':False,'shape':(10,)}", ErrUnsupportedDType},
		{"kind only", "{'descr':'<f','fortran_order':False,'shape':(10,)}", ErrUnsupportedDType},
		{"empty descr", "{'descr':'','fortran_order':False,'shape':(10,)}", ErrUnsupportedDType},
		{"structured", "{'descr':[('x','<f4'),('y','<f4')],'fortran_order':False,'shape':(10,)}", ErrUnsupportedDType},
		{"missing descr", "{'fortran_order':False,'shape':(10,)}", ErrMalformedHeader},
		{"empty shape", "{'descr':'<f8','fortran_order':False,'shape':()}", ErrMalformedShape},
		{"missing shape", "{'descr':'<f8','fortran_order':False}", ErrMalformedShape},
		{"shape not tuple", "{'descr':'<f8','fortran_order':False,'shape':10}", ErrMalformedShape},
		{"shape string", "{'descr':'<f8','fortran_order':False,'shape':('a',)}", ErrMalformedShape},
		{"shape overflow", "{'descr':'<f8','fortran_order':False,'shape':(99999999999999999999999,)}", ErrMalformedShape},
		{"double comma", "{'descr':'<f8','fortran_order':False,'shape':(3,,4)}", ErrMalformedHeader},
		{"negative dim", "{'descr':'<f8','fortran_order':False,'shape':(-3,)}", ErrMalformedHeader},
		{"unterminated", "{'descr':'<f8','fortran_order':False,'shape':(3,)", ErrMalformedHeader},
		{"trailing garbage", "{'descr':'<f8','fortran_order':False,'shape':(3,)} x", ErrMalformedHeader},
		{"duplicate key", "{'descr':'<f8','descr':'<f4','fortran_order':False,'shape':(3,)}", ErrMalformedHeader},
		{"unknown identifier", "{'descr':'<f8','fortran_order':false,'shape':(3,)}", ErrMalformedHeader},
		{"not a dict", "('descr', '<f8')", ErrMalformedHeader},
		{"empty", "", ErrMalformedHeader},
		{"unknown key", "{'descr':'<f8','fortran_order':False,'shape':(3,),'extra':1}", ErrMalformedHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.text, ValidationStrict)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var fe *FormatError
			assert.True(t, errors.As(err, &fe), "expected *FormatError, got %T", err)
		})
	}
}

func TestParseHeaderNormalIgnoresUnknownKeys(t *testing.T) {
	text := "{'descr':'<f8','fortran_order':False,'shape':(3,),'extra':{'a':[1,2]}}"

	_, err := ParseHeader(text, ValidationStrict)
	assert.ErrorIs(t, err, ErrMalformedHeader)

	h, err := ParseHeader(text, ValidationNormal)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, h.DType)
	assert.Equal(t, tensor.Shape{3}, h.Shape)

	dup := "{'descr':'<f8','fortran_order':False,'shape':(3,),'shape':(4,)}"
	_, err = ParseHeader(dup, ValidationNormal)
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestParseHeaderNestingLimit(t *testing.T) {
	text := "{'descr':'<f8','fortran_order':False,'shape':(3,),'x':" +
		strings.Repeat("[", 100) + strings.Repeat("]", 100) + "}"

	_, err := ParseHeader(text, ValidationNormal)
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestParseDescr(t *testing.T) {
	tests := []struct {
		descr string
		dtype tensor.DataType
	}{
		{"<i1", tensor.Int8},
		{"|u1", tensor.Uint8},
		{"<i2", tensor.Int16},
		{"<u2", tensor.Uint16},
		{"=i4", tensor.Int32},
		{"<u4", tensor.Uint32},
		{"<i8", tensor.Int64},
		{"u8", tensor.Uint64},
		{"<f4", tensor.Float32},
		{"f8", tensor.Float64},
	}

	for _, tt := range tests {
		dt, err := ParseDescr(tt.descr)
		require.NoError(t, err, tt.descr)
		assert.Equal(t, tt.dtype, dt, tt.descr)
	}

	_, err := ParseDescr(">i4")
	assert.ErrorIs(t, err, ErrBigEndian)

	for _, descr := range []string{"<i08", "f004", "u01"} {
		_, err := ParseDescr(descr)
		assert.ErrorIs(t, err, ErrUnsupportedDType, descr)
	}
}

func TestHeaderDescr(t *testing.T) {
	assert.Equal(t, "u4", Header{DType: tensor.Uint32}.Descr())
	assert.Equal(t, "f8", Header{DType: tensor.Float64}.Descr())
	assert.Equal(t, "i1", Header{DType: tensor.Int8}.Descr())
}
