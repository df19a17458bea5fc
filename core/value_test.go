package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueRadixForms(t *testing.T) {
	// 123 in every numeric notation.
	for _, tc := range []struct {
		kind ValueKind
		text string
	}{
		{ValueDecimal, "123"},
		{ValueHexadecimal, "7B"},
		{ValueHexadecimal, "7b"},
		{ValueOctal, "173"},
		{ValueBinary, "1111011"},
	} {
		v := NewValue(tc.kind, []byte(tc.text))
		u, err := UintValue[uint8](v)
		require.NoError(t, err, tc.text)
		assert.Equal(t, uint8(123), u, tc.text)

		i, err := IntValue[int16](v)
		require.NoError(t, err, tc.text)
		assert.Equal(t, int16(123), i, tc.text)

		f, err := FloatValue[float64](v)
		require.NoError(t, err, tc.text)
		assert.Equal(t, 123.0, f, tc.text)
	}
}

func TestValueSignedAndFloat(t *testing.T) {
	i, err := IntValue[int16](NewValue(ValueDecimal, []byte("-42")))
	require.NoError(t, err)
	assert.Equal(t, int16(-42), i)

	f, err := FloatValue[float64](NewValue(ValueDecimal, []byte("1.5e2")))
	require.NoError(t, err)
	assert.Equal(t, 150.0, f)
}

func TestValueOutOfRange(t *testing.T) {
	_, err := UintValue[uint8](NewValue(ValueDecimal, []byte("256")))
	assert.Equal(t, ErrDataOutOfRange, err)

	_, err = IntValue[int8](NewValue(ValueDecimal, []byte("-200")))
	assert.Equal(t, ErrDataOutOfRange, err)
}

func TestValueKindMismatch(t *testing.T) {
	str := NewValue(ValueString, []byte("12"))
	_, err := UintValue[uint32](str)
	assert.Equal(t, ErrDataTypeError, err)
	_, err = FloatValue[float64](str)
	assert.Equal(t, ErrDataTypeError, err)

	_, err = StringValue(NewValue(ValueCharacters, []byte("ON")))
	assert.Equal(t, ErrDataTypeError, err)

	s, err := StringValue(str)
	require.NoError(t, err)
	assert.Equal(t, "12", s)

	c, err := CharactersValue(NewValue(ValueCharacters, []byte("MAX")))
	require.NoError(t, err)
	assert.Equal(t, "MAX", c)

	b, err := BytesValue(NewValue(ValueArbitrary, []byte{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)
}

func TestBoolValue(t *testing.T) {
	for text, want := range map[string]bool{
		"ON": true, "on": true, "TRUE": true,
		"OFF": false, "off": false, "FALSE": false,
	} {
		got, err := BoolValue(NewValue(ValueCharacters, []byte(text)))
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
	}

	got, err := BoolValue(NewValue(ValueDecimal, []byte("1")))
	require.NoError(t, err)
	assert.True(t, got)
	got, err = BoolValue(NewValue(ValueDecimal, []byte("0")))
	require.NoError(t, err)
	assert.False(t, got)

	_, err = BoolValue(NewValue(ValueDecimal, []byte("2")))
	assert.Equal(t, ErrIllegalParameterValue, err)
	_, err = BoolValue(NewValue(ValueCharacters, []byte("MAYBE")))
	assert.Equal(t, ErrIllegalParameterValue, err)
}
