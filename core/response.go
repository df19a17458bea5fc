package core

import (
	"math"
	"strconv"

	"github.com/spf13/cast"
)

// Characters marks a response string that renders bare, without quotes.
// It represents a predefined value or choice, e.g. a version mnemonic.
type Characters string

// ResponseWriter collects the wire text of query responses into a
// bounded buffer. Exceeding the bound is a resource error
// (ErrTooMuchData), never a silent truncation.
type ResponseWriter struct {
	buf []byte
	max int
}

// NewResponseWriter creates a writer limited to max bytes. A max of
// zero or less means unbounded.
func NewResponseWriter(max int) *ResponseWriter {
	return &ResponseWriter{max: max}
}

func (w *ResponseWriter) Bytes() []byte { return w.buf }
func (w *ResponseWriter) Len() int      { return len(w.buf) }
func (w *ResponseWriter) Reset()        { w.buf = w.buf[:0] }

func (w *ResponseWriter) grow(n int) error {
	if w.max > 0 && len(w.buf)+n > w.max {
		return ErrTooMuchData
	}
	return nil
}

func (w *ResponseWriter) writeBytes(p []byte) error {
	if err := w.grow(len(p)); err != nil {
		return err
	}
	w.buf = append(w.buf, p...)
	return nil
}

func (w *ResponseWriter) writeString(s string) error {
	if err := w.grow(len(s)); err != nil {
		return err
	}
	w.buf = append(w.buf, s...)
	return nil
}

func (w *ResponseWriter) writeByte(c byte) error {
	if err := w.grow(1); err != nil {
		return err
	}
	w.buf = append(w.buf, c)
	return nil
}

// WriteTerminator appends the response message terminator.
func (w *ResponseWriter) WriteTerminator() error {
	return w.writeByte('\n')
}

// WriteResponse serializes a handler result into IEEE 488.2 response
// format. Booleans render 1/0, strings render double quoted, floats
// use the 9.9x notations for the non-finite values, byte slices render
// as definite length block data and slices join their elements with
// commas. Anything outside the closed set falls back to its cast
// string form.
func (w *ResponseWriter) WriteResponse(value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		if v {
			return w.writeByte('1')
		}
		return w.writeByte('0')
	case string:
		// Embedded quote characters are written verbatim; IEEE 488.2
		// quote doubling is not applied.
		if err := w.writeByte('"'); err != nil {
			return err
		}
		if err := w.writeString(v); err != nil {
			return err
		}
		return w.writeByte('"')
	case Characters:
		return w.writeString(string(v))
	case []byte:
		return w.writeArbitrary(v)
	case float32:
		return w.writeFloat(float64(v), 32)
	case float64:
		return w.writeFloat(v, 64)
	case int:
		return w.writeString(strconv.FormatInt(int64(v), 10))
	case int8:
		return w.writeString(strconv.FormatInt(int64(v), 10))
	case int16:
		return w.writeString(strconv.FormatInt(int64(v), 10))
	case int32:
		return w.writeString(strconv.FormatInt(int64(v), 10))
	case int64:
		return w.writeString(strconv.FormatInt(v, 10))
	case uint:
		return w.writeString(strconv.FormatUint(uint64(v), 10))
	case uint8:
		return w.writeString(strconv.FormatUint(uint64(v), 10))
	case uint16:
		return w.writeString(strconv.FormatUint(uint64(v), 10))
	case uint32:
		return w.writeString(strconv.FormatUint(uint64(v), 10))
	case uint64:
		return w.writeString(strconv.FormatUint(v, 10))
	case Error:
		return w.writeString(v.Response())
	case []any:
		return writeJoined(w, v)
	case []string:
		return writeJoined(w, v)
	case []int:
		return writeJoined(w, v)
	case []float64:
		return writeJoined(w, v)
	case []bool:
		return writeJoined(w, v)
	case []Characters:
		return writeJoined(w, v)
	default:
		return w.writeString(cast.ToString(value))
	}
}

func writeJoined[T any](w *ResponseWriter, items []T) error {
	for i, item := range items {
		if i > 0 {
			if err := w.writeByte(','); err != nil {
				return err
			}
		}
		if err := w.WriteResponse(item); err != nil {
			return err
		}
	}
	return nil
}

// writeFloat renders a float. NaN and the infinities use the IEEE
// 488.2 placeholder values; everything else uses the shortest decimal
// form without exponent notation.
func (w *ResponseWriter) writeFloat(v float64, bits int) error {
	switch {
	case math.IsNaN(v):
		return w.writeString("9.91E+37")
	case math.IsInf(v, 1):
		return w.writeString("9.9E+37")
	case math.IsInf(v, -1):
		return w.writeString("-9.9E+37")
	}
	return w.writeString(strconv.FormatFloat(v, 'f', -1, bits))
}

// writeArbitrary renders definite length arbitrary block data:
// `#<digit count><length><bytes>`. The empty block is `#10`.
func (w *ResponseWriter) writeArbitrary(data []byte) error {
	if len(data) == 0 {
		return w.writeString("#10")
	}
	length := strconv.Itoa(len(data))
	if len(length) > 9 {
		return ErrTooMuchData
	}
	if err := w.writeByte('#'); err != nil {
		return err
	}
	if err := w.writeByte(byte('0' + len(length))); err != nil {
		return err
	}
	if err := w.writeString(length); err != nil {
		return err
	}
	return w.writeBytes(data)
}
