package core

import (
	"strconv"
	"strings"
	"unsafe"

	"github.com/vuuvv/vscpi/utils"
	"golang.org/x/exp/constraints"
)

// ValueKind is the lexical form of a program data element. The parser
// records only the form; the numeric meaning is resolved lazily when a
// handler converts the value to its parameter type.
type ValueKind uint8

const (
	// ValueString is quoted string program data (single or double).
	ValueString ValueKind = iota
	// ValueCharacters is a bare mnemonic, e.g. ON, MAXimum.
	ValueCharacters
	// ValueDecimal is decimal numeric program data, unparsed.
	ValueDecimal
	// ValueHexadecimal is #H... data, digits only (no prefix).
	ValueHexadecimal
	// ValueBinary is #B... data.
	ValueBinary
	// ValueOctal is #Q... data.
	ValueOctal
	// ValueArbitrary is arbitrary block program data, raw bytes.
	ValueArbitrary
)

// Value is a typed but unconverted argument. The data slice borrows
// from the input buffer, so a Value must not outlive the buffer it was
// parsed from.
type Value struct {
	Kind ValueKind
	data []byte
}

func NewValue(kind ValueKind, data []byte) Value {
	return Value{Kind: kind, data: data}
}

// Text is the raw textual content, zero copy.
func (v Value) Text() string {
	return utils.B2S(v.data)
}

// radix maps the numeric lexical forms to their base; zero for
// non-numeric kinds.
func (v Value) radix() int {
	switch v.Kind {
	case ValueDecimal:
		return 10
	case ValueHexadecimal:
		return 16
	case ValueOctal:
		return 8
	case ValueBinary:
		return 2
	}
	return 0
}

// UintValue converts a numeric value into any unsigned integer type.
// The stored digits are parsed in the radix of the lexical form.
func UintValue[T constraints.Unsigned](v Value) (T, error) {
	var zero T
	radix := v.radix()
	if radix == 0 {
		return zero, ErrDataTypeError
	}
	res, err := strconv.ParseUint(v.Text(), radix, int(unsafe.Sizeof(zero))*8)
	if err != nil {
		return zero, numericParseError(err)
	}
	return T(res), nil
}

// IntValue converts a numeric value into any signed integer type.
func IntValue[T constraints.Signed](v Value) (T, error) {
	var zero T
	radix := v.radix()
	if radix == 0 {
		return zero, ErrDataTypeError
	}
	res, err := strconv.ParseInt(v.Text(), radix, int(unsafe.Sizeof(zero))*8)
	if err != nil {
		return zero, numericParseError(err)
	}
	return T(res), nil
}

// FloatValue converts a numeric value into f32 or f64. Decimal data is
// parsed directly; the nondecimal radix forms go through their integer
// representation.
func FloatValue[T constraints.Float](v Value) (T, error) {
	switch v.Kind {
	case ValueDecimal:
		var zero T
		res, err := strconv.ParseFloat(v.Text(), int(unsafe.Sizeof(zero))*8)
		if err != nil {
			return zero, numericParseError(err)
		}
		return T(res), nil
	case ValueHexadecimal, ValueOctal, ValueBinary:
		res, err := UintValue[uint64](v)
		if err != nil {
			return 0, err
		}
		return T(res), nil
	}
	return 0, ErrDataTypeError
}

// BoolValue recognizes ON/OFF/TRUE/FALSE mnemonics (any case) and the
// decimal values 1 and 0. Anything else is an illegal parameter value.
func BoolValue(v Value) (bool, error) {
	switch v.Kind {
	case ValueCharacters:
		switch strings.ToUpper(v.Text()) {
		case "ON", "TRUE":
			return true, nil
		case "OFF", "FALSE":
			return false, nil
		}
	case ValueDecimal:
		switch v.Text() {
		case "1":
			return true, nil
		case "0":
			return false, nil
		}
	}
	return false, ErrIllegalParameterValue
}

// StringValue returns the content of quoted string data.
func StringValue(v Value) (string, error) {
	if v.Kind != ValueString {
		return "", ErrDataTypeError
	}
	return v.Text(), nil
}

// CharactersValue returns the content of character (mnemonic) data.
func CharactersValue(v Value) (string, error) {
	if v.Kind != ValueCharacters {
		return "", ErrDataTypeError
	}
	return v.Text(), nil
}

// BytesValue returns the payload of arbitrary block data. The slice
// still borrows from the input buffer.
func BytesValue(v Value) ([]byte, error) {
	if v.Kind != ValueArbitrary {
		return nil, ErrDataTypeError
	}
	return v.data, nil
}

func numericParseError(err error) Error {
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return ErrDataOutOfRange
	}
	return ErrNumericDataError
}
