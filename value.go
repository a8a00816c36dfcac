package structview

import (
	"bytes"
	"fmt"
	"math"
)

// Kind identifies which variant a Value carries.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindUint
	KindInt
	KindFloat
	KindBytes
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Value is a closed variant over the types the codecs move in and out of a
// buffer. Numeric variants share a single 64-bit word; bytes and string
// variants carry their payload alongside. The zero Value is invalid.
type Value struct {
	kind Kind
	word uint64
	buf  []byte
	str  string
}

func ValueOfBool(v bool) Value {
	var w uint64
	if v {
		w = 1
	}
	return Value{kind: KindBool, word: w}
}

func ValueOfUint(v uint64) Value { return Value{kind: KindUint, word: v} }

func ValueOfInt(v int64) Value { return Value{kind: KindInt, word: uint64(v)} }

func ValueOfFloat(v float64) Value {
	return Value{kind: KindFloat, word: math.Float64bits(v)}
}

// ValueOfBytes wraps v without copying; the caller keeps ownership.
func ValueOfBytes(v []byte) Value { return Value{kind: KindBytes, buf: v} }

func ValueOfString(v string) Value { return Value{kind: KindString, str: v} }

// ValueOf bridges callers holding untyped data. Returns false if val is not
// one of the supported types: bool, the fixed-width integers, int, uint,
// float32, float64, []byte, string.
func ValueOf(val any) (Value, bool) {
	switch v := val.(type) {
	case bool:
		return ValueOfBool(v), true
	case uint8:
		return ValueOfUint(uint64(v)), true
	case uint16:
		return ValueOfUint(uint64(v)), true
	case uint32:
		return ValueOfUint(uint64(v)), true
	case uint64:
		return ValueOfUint(v), true
	case uint:
		return ValueOfUint(uint64(v)), true
	case int8:
		return ValueOfInt(int64(v)), true
	case int16:
		return ValueOfInt(int64(v)), true
	case int32:
		return ValueOfInt(int64(v)), true
	case int64:
		return ValueOfInt(v), true
	case int:
		return ValueOfInt(int64(v)), true
	case float32:
		return ValueOfFloat(float64(v)), true
	case float64:
		return ValueOfFloat(v), true
	case []byte:
		return ValueOfBytes(v), true
	case string:
		return ValueOfString(v), true
	default:
		return Value{}, false
	}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) Bool() bool { return v.word != 0 }

func (v Value) Uint() uint64 { return v.word }

func (v Value) Int() int64 { return int64(v.word) }

func (v Value) Float() float64 { return math.Float64frombits(v.word) }

// Bytes returns the wrapped payload without copying.
func (v Value) Bytes() []byte { return v.buf }

func (v Value) Text() string { return v.str }

// Equal reports whether two values hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBytes:
		return bytes.Equal(v.buf, o.buf)
	case KindString:
		return v.str == o.str
	default:
		return v.word == o.word
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("bool(%v)", v.Bool())
	case KindUint:
		return fmt.Sprintf("uint(%d)", v.Uint())
	case KindInt:
		return fmt.Sprintf("int(%d)", v.Int())
	case KindFloat:
		return fmt.Sprintf("float(%g)", v.Float())
	case KindBytes:
		return fmt.Sprintf("bytes(%x)", v.buf)
	case KindString:
		return fmt.Sprintf("string(%q)", v.str)
	default:
		return "invalid"
	}
}
