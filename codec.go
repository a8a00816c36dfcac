package structview

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/rawbytedev/structview/internal/common"
)

// Codec reads and writes one field's on-wire representation. A codec covers
// a fixed number of bytes and accepts exactly one Value kind; Write rejects
// anything else. Read never fails: the Shape guarantees the offset fits
// inside the buffer the view was bound to.
type Codec interface {
	Read(buf []byte, off int) Value
	Write(buf []byte, off int, v Value) error
	Size() int
	Kind() Kind
	Name() string
}

// kindErr builds the type-mismatch error; the codec name is the only place
// its declared value type shows up.
func kindErr(c Codec, v Value) error {
	return fmt.Errorf("%w: codec %s expects %s, got %s", ErrKindMismatch, c.Name(), c.Kind(), v.Kind())
}

// getUint / putUint cover every fixed width the integer codecs use.
func getUint(b []byte, size int, be bool) uint64 {
	switch size {
	case 1:
		return uint64(b[0])
	case 2:
		if be {
			return uint64(binary.BigEndian.Uint16(b))
		}
		return uint64(binary.LittleEndian.Uint16(b))
	case 3:
		if be {
			return uint64(common.Uint24BE(b))
		}
		return uint64(common.Uint24LE(b))
	case 4:
		if be {
			return uint64(binary.BigEndian.Uint32(b))
		}
		return uint64(binary.LittleEndian.Uint32(b))
	case 8:
		if be {
			return binary.BigEndian.Uint64(b)
		}
		return binary.LittleEndian.Uint64(b)
	default:
		panic("unsupported integer width")
	}
}

func putUint(b []byte, size int, be bool, x uint64) {
	switch size {
	case 1:
		b[0] = byte(x)
	case 2:
		if be {
			binary.BigEndian.PutUint16(b, uint16(x))
		} else {
			binary.LittleEndian.PutUint16(b, uint16(x))
		}
	case 3:
		if be {
			common.PutUint24BE(b, uint32(x))
		} else {
			common.PutUint24LE(b, uint32(x))
		}
	case 4:
		if be {
			binary.BigEndian.PutUint32(b, uint32(x))
		} else {
			binary.LittleEndian.PutUint32(b, uint32(x))
		}
	case 8:
		if be {
			binary.BigEndian.PutUint64(b, x)
		} else {
			binary.LittleEndian.PutUint64(b, x)
		}
	default:
		panic("unsupported integer width")
	}
}

type uintCodec struct {
	name string
	size int
	be   bool
}

func (c uintCodec) Size() int    { return c.size }
func (c uintCodec) Kind() Kind   { return KindUint }
func (c uintCodec) Name() string { return c.name }

func (c uintCodec) Read(buf []byte, off int) Value {
	return ValueOfUint(getUint(buf[off:], c.size, c.be))
}

func (c uintCodec) Write(buf []byte, off int, v Value) error {
	if v.Kind() != KindUint {
		return kindErr(c, v)
	}
	x := v.Uint()
	if c.size < 8 && x > (uint64(1)<<(8*c.size))-1 {
		return fmt.Errorf("%w: %d does not fit %s", ErrOutOfRange, x, c.name)
	}
	putUint(buf[off:], c.size, c.be, x)
	return nil
}

type intCodec struct {
	name string
	size int
	be   bool
}

func (c intCodec) Size() int    { return c.size }
func (c intCodec) Kind() Kind   { return KindInt }
func (c intCodec) Name() string { return c.name }

func (c intCodec) Read(buf []byte, off int) Value {
	x := getUint(buf[off:], c.size, c.be)
	s := uint(64 - 8*c.size)
	return ValueOfInt(int64(x<<s) >> s) // sign-extend
}

func (c intCodec) Write(buf []byte, off int, v Value) error {
	if v.Kind() != KindInt {
		return kindErr(c, v)
	}
	x := v.Int()
	if c.size < 8 {
		max := int64(1)<<(8*c.size-1) - 1
		min := -max - 1
		if x < min || x > max {
			return fmt.Errorf("%w: %d does not fit %s", ErrOutOfRange, x, c.name)
		}
	}
	putUint(buf[off:], c.size, c.be, uint64(x))
	return nil
}

type floatCodec struct {
	name string
	size int
	be   bool
}

func (c floatCodec) Size() int    { return c.size }
func (c floatCodec) Kind() Kind   { return KindFloat }
func (c floatCodec) Name() string { return c.name }

func (c floatCodec) Read(buf []byte, off int) Value {
	x := getUint(buf[off:], c.size, c.be)
	if c.size == 4 {
		return ValueOfFloat(float64(math.Float32frombits(uint32(x))))
	}
	return ValueOfFloat(math.Float64frombits(x))
}

func (c floatCodec) Write(buf []byte, off int, v Value) error {
	if v.Kind() != KindFloat {
		return kindErr(c, v)
	}
	if c.size == 4 {
		putUint(buf[off:], 4, c.be, uint64(math.Float32bits(float32(v.Float()))))
	} else {
		putUint(buf[off:], 8, c.be, math.Float64bits(v.Float()))
	}
	return nil
}

type boolCodec struct{}

func (boolCodec) Size() int    { return 1 }
func (boolCodec) Kind() Kind   { return KindBool }
func (boolCodec) Name() string { return "bool" }

func (boolCodec) Read(buf []byte, off int) Value {
	return ValueOfBool(buf[off] != 0)
}

func (c boolCodec) Write(buf []byte, off int, v Value) error {
	if v.Kind() != KindBool {
		return kindErr(c, v)
	}
	if v.Bool() {
		buf[off] = 1
	} else {
		buf[off] = 0
	}
	return nil
}

// bytesCodec moves a fixed run of raw octets. Read copies out of the live
// buffer so the returned Value never aliases view state.
type bytesCodec struct{ size int }

func (c bytesCodec) Size() int    { return c.size }
func (c bytesCodec) Kind() Kind   { return KindBytes }
func (c bytesCodec) Name() string { return "bytes:" + strconv.Itoa(c.size) }

func (c bytesCodec) Read(buf []byte, off int) Value {
	return ValueOfBytes(common.Clone(buf[off : off+c.size]))
}

func (c bytesCodec) Write(buf []byte, off int, v Value) error {
	if v.Kind() != KindBytes {
		return kindErr(c, v)
	}
	if len(v.Bytes()) != c.size {
		return fmt.Errorf("%w: %s needs %d bytes, got %d", ErrBadSize, c.Name(), c.size, len(v.Bytes()))
	}
	copy(buf[off:off+c.size], v.Bytes())
	return nil
}

// charCodec is a NUL-padded fixed-width string. Read stops at the first NUL.
type charCodec struct{ size int }

func (c charCodec) Size() int    { return c.size }
func (c charCodec) Kind() Kind   { return KindString }
func (c charCodec) Name() string { return "char:" + strconv.Itoa(c.size) }

func (c charCodec) Read(buf []byte, off int) Value {
	b := buf[off : off+c.size]
	for i, x := range b {
		if x == 0 {
			b = b[:i]
			break
		}
	}
	return ValueOfString(string(b))
}

func (c charCodec) Write(buf []byte, off int, v Value) error {
	if v.Kind() != KindString {
		return kindErr(c, v)
	}
	s := v.Text()
	if len(s) > c.size {
		return fmt.Errorf("%w: %s holds %d bytes, got %d", ErrBadSize, c.Name(), c.size, len(s))
	}
	n := copy(buf[off:off+c.size], s)
	for i := off + n; i < off+c.size; i++ {
		buf[i] = 0
	}
	return nil
}

// Standard codec set. Multi-byte codecs come in le/be variants.
var (
	Bool Codec = boolCodec{}

	Uint8    Codec = uintCodec{name: "uint8", size: 1}
	Uint16LE Codec = uintCodec{name: "uint16le", size: 2}
	Uint16BE Codec = uintCodec{name: "uint16be", size: 2, be: true}
	Uint24LE Codec = uintCodec{name: "uint24le", size: 3}
	Uint24BE Codec = uintCodec{name: "uint24be", size: 3, be: true}
	Uint32LE Codec = uintCodec{name: "uint32le", size: 4}
	Uint32BE Codec = uintCodec{name: "uint32be", size: 4, be: true}
	Uint64LE Codec = uintCodec{name: "uint64le", size: 8}
	Uint64BE Codec = uintCodec{name: "uint64be", size: 8, be: true}

	Int8    Codec = intCodec{name: "int8", size: 1}
	Int16LE Codec = intCodec{name: "int16le", size: 2}
	Int16BE Codec = intCodec{name: "int16be", size: 2, be: true}
	Int32LE Codec = intCodec{name: "int32le", size: 4}
	Int32BE Codec = intCodec{name: "int32be", size: 4, be: true}
	Int64LE Codec = intCodec{name: "int64le", size: 8}
	Int64BE Codec = intCodec{name: "int64be", size: 8, be: true}

	Float32LE Codec = floatCodec{name: "float32le", size: 4}
	Float32BE Codec = floatCodec{name: "float32be", size: 4, be: true}
	Float64LE Codec = floatCodec{name: "float64le", size: 8}
	Float64BE Codec = floatCodec{name: "float64be", size: 8, be: true}
)

// BytesCodec returns a codec for n raw octets.
func BytesCodec(n int) Codec { return bytesCodec{size: n} }

// CharCodec returns a codec for a NUL-padded string of at most n bytes.
func CharCodec(n int) Codec { return charCodec{size: n} }

var (
	regMu    sync.RWMutex
	registry = map[string]Codec{}
)

func init() {
	for _, c := range []Codec{
		Bool,
		Uint8, Uint16LE, Uint16BE, Uint24LE, Uint24BE,
		Uint32LE, Uint32BE, Uint64LE, Uint64BE,
		Int8, Int16LE, Int16BE, Int32LE, Int32BE, Int64LE, Int64BE,
		Float32LE, Float32BE, Float64LE, Float64BE,
	} {
		registry[c.Name()] = c
	}
}

// Register adds a custom codec under its own name. Re-registering a taken
// name is a configuration error.
func Register(c Codec) error {
	if c == nil {
		return ErrNilCodec
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := registry[c.Name()]; ok {
		return fmt.Errorf("codec %q already registered", c.Name())
	}
	registry[c.Name()] = c
	return nil
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Codec, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	c, ok := registry[name]
	return c, ok
}

// Resolve maps a codec name to a Codec. Plain names go through the
// registry; "bytes:N" and "char:N" are sized on the spot.
func Resolve(name string) (Codec, error) {
	if c, ok := Lookup(name); ok {
		return c, nil
	}
	if base, arg, ok := strings.Cut(name, ":"); ok {
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: bad size in %q", ErrUnknownCodec, name)
		}
		switch base {
		case "bytes":
			return BytesCodec(n), nil
		case "char":
			return CharCodec(n), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}
