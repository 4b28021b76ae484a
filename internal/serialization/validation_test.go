package serialization

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requiredEntries() map[string]value {
	return map[string]value{
		keyDescr:        {kind: valString, text: "<f4"},
		keyFortranOrder: {kind: valBool},
		keyShape:        {kind: valTuple},
	}
}

func TestValidateKeysMissing(t *testing.T) {
	tests := []struct {
		key  string
		want error
	}{
		{keyDescr, ErrMalformedHeader},
		{keyFortranOrder, ErrFortranOrder},
		{keyShape, ErrMalformedShape},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			entries := requiredEntries()
			delete(entries, tt.key)

			for _, level := range []ValidationLevel{ValidationStrict, ValidationNormal} {
				err := validateKeys(entries, level)
				assert.ErrorIs(t, err, tt.want, level.String())

				var fe *FormatError
				require.True(t, errors.As(err, &fe))
				assert.Equal(t, tt.key, fe.Field)
			}
		})
	}
}

func TestValidateKeysUnknown(t *testing.T) {
	entries := requiredEntries()
	entries["zeta"] = value{kind: valNone}
	entries["alpha"] = value{kind: valInt, text: "1"}

	err := validateKeys(entries, ValidationStrict)
	require.ErrorIs(t, err, ErrMalformedHeader)
	assert.Contains(t, err.Error(), "alpha, zeta")

	assert.NoError(t, validateKeys(entries, ValidationNormal))
}

func TestValidateKeysComplete(t *testing.T) {
	assert.NoError(t, validateKeys(requiredEntries(), ValidationStrict))
}

func TestValidationLevelString(t *testing.T) {
	assert.Equal(t, "strict", ValidationStrict.String())
	assert.Equal(t, "normal", ValidationNormal.String())
	assert.Equal(t, "ValidationLevel(7)", ValidationLevel(7).String())
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, ValidationStrict, o.ValidationLevel)
	assert.Equal(t, DefaultMaxHeaderSize, o.MaxHeaderSize)
	assert.Zero(t, o.MaxAllocBytes)
	require.NotNil(t, o.Logger)

	o = applyOptions([]Option{WithMaxHeaderSize(0), WithLogger(nil), WithValidationLevel(ValidationNormal)})
	assert.Equal(t, DefaultMaxHeaderSize, o.MaxHeaderSize)
	assert.NotNil(t, o.Logger)
	assert.Equal(t, ValidationNormal, o.ValidationLevel)
}
