package sim

import (
	"bytes"
	"math"
	"math/cmplx"
	"strconv"
)

// Series is a real-valued result column. NaN entries, which mark unreliable
// frequencies, encode as JSON null.
type Series []float64

// MarshalJSON implements json.Marshaler.
func (s Series) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var b bytes.Buffer
	b.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		writeFloat(&b, v)
	}
	b.WriteByte(']')
	return b.Bytes(), nil
}

// ComplexSeries is a complex-valued result column encoded as
// [{"re":…,"im":…}, …].
type ComplexSeries []complex128

// MarshalJSON implements json.Marshaler.
func (s ComplexSeries) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var b bytes.Buffer
	b.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			b.WriteString("null")
			continue
		}
		b.WriteString(`{"re":`)
		writeFloat(&b, real(v))
		b.WriteString(`,"im":`)
		writeFloat(&b, imag(v))
		b.WriteByte('}')
	}
	b.WriteByte(']')
	return b.Bytes(), nil
}

func writeFloat(b *bytes.Buffer, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		b.WriteString("null")
		return
	}
	b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
}
