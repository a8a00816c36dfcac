package structview

import (
	"encoding/json"
	"fmt"

	"github.com/rawbytedev/structview/internal/common"
)

// Options controls per-view behaviour, fixed at construction.
type Options struct {
	// Caching defers every Set into an in-memory cache; nothing reaches
	// the buffer until Serialize. Validation moves to Serialize with it:
	// a bad value is only reported there, not at the Set that stored it.
	Caching bool
}

// View binds a Shape to a buffer and exposes per-field access. A view either
// owns its buffer (allocated here, zero-filled) or adopts one supplied by
// the caller; an adopted buffer is referenced, not copied, so whoever
// created it can still mutate it underneath the view.
type View struct {
	shape   *Shape
	buf     []byte
	start   int
	owned   bool
	caching bool
	cache   map[int]Value
	scratch []byte
}

// NewView allocates an owned, zero-filled buffer of exactly the shape's
// length. Every field initially reads its codec's zero value.
func NewView(s *Shape, opt Options) *View {
	v := &View{
		shape:   s,
		buf:     make([]byte, s.length),
		owned:   true,
		caching: opt.Caching,
	}
	if opt.Caching {
		v.cache = make(map[int]Value)
		v.scratch = make([]byte, s.maxSize)
	}
	return v
}

// NewViewOf adopts buf by reference starting at start. The window
// buf[start:] must cover the shape's length; no copy is made.
func NewViewOf(s *Shape, buf []byte, start int, opt Options) (*View, error) {
	if err := s.checkWindow(buf, start); err != nil {
		return nil, err
	}
	v := &View{
		shape:   s,
		buf:     buf,
		start:   start,
		caching: opt.Caching,
	}
	if opt.Caching {
		v.cache = make(map[int]Value)
		v.scratch = make([]byte, s.maxSize)
	}
	return v, nil
}

func (s *Shape) checkWindow(buf []byte, start int) error {
	if start < 0 {
		return fmt.Errorf("negative start offset %d", start)
	}
	if have := len(buf) - start; have < s.length {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, s.length, have)
	}
	return nil
}

// Get returns the field's current value: the pending cached value if one
// exists, otherwise whatever the live buffer decodes to. A field that was
// never written reads as raw memory, not as an error: zero through an owned
// buffer, arbitrary through an adopted one.
func (v *View) Get(name string) (Value, error) {
	i := v.shape.FieldIndex(name)
	if i < 0 {
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return v.GetAt(i), nil
}

// GetAt is Get by declaration index; the index comes from Shape.FieldIndex.
func (v *View) GetAt(i int) Value {
	if v.caching {
		if val, ok := v.cache[i]; ok {
			return val
		}
	}
	f := &v.shape.fields[i]
	return f.codec.Read(v.buf, v.start+f.offset)
}

// Set writes the field. Without caching the codec writes the buffer
// immediately and rejects mismatched values here. With caching the value is
// stored verbatim, unvalidated, until Serialize.
func (v *View) Set(name string, val Value) error {
	i := v.shape.FieldIndex(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return v.SetAt(i, val)
}

func (v *View) SetAt(i int, val Value) error {
	if v.caching {
		v.cache[i] = val
		return nil
	}
	f := &v.shape.fields[i]
	if err := f.codec.Write(v.buf, v.start+f.offset, val); err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	return nil
}

// Serialize flushes pending cached values to the buffer in field
// declaration order and clears the cache. Policy: validate-all-then-write —
// every pending value is pushed through its codec into scratch first, and
// the live buffer is not touched unless all of them pass. A failed
// Serialize therefore leaves both the buffer and the cache exactly as they
// were. No-op on a non-caching view.
func (v *View) Serialize() error {
	if !v.caching {
		return nil
	}
	for i := range v.shape.fields {
		val, ok := v.cache[i]
		if !ok {
			continue
		}
		f := &v.shape.fields[i]
		if err := f.codec.Write(v.scratch, 0, val); err != nil {
			return fmt.Errorf("field %q: %w", f.name, err)
		}
	}
	for i := range v.shape.fields {
		val, ok := v.cache[i]
		if !ok {
			continue
		}
		f := &v.shape.fields[i]
		f.codec.Write(v.buf, v.start+f.offset, val) // validated above
		delete(v.cache, i)
	}
	return nil
}

// Bytes returns the live window over the underlying buffer. Mutating it
// mutates the view's state directly; use ByteSlice for a safe copy.
func (v *View) Bytes() []byte {
	return v.buf[v.start : v.start+v.shape.length]
}

// SetBytes rebinds the view to buf at start, re-running construction-time
// validation. A nil buf allocates a fresh owned zero-filled buffer. Pending
// cached values survive the swap and flush into the new buffer.
func (v *View) SetBytes(buf []byte, start int) error {
	if buf == nil {
		v.buf = make([]byte, v.shape.length)
		v.start = 0
		v.owned = true
		return nil
	}
	if err := v.shape.checkWindow(buf, start); err != nil {
		return err
	}
	v.buf = buf
	v.start = start
	v.owned = false
	return nil
}

// ByteSlice returns a defensive copy of the view's window. Mutating the
// copy never changes what the view reads.
func (v *View) ByteSlice() []byte {
	return common.Clone(v.Bytes())
}

// MarshalJSON dumps the live window as a numeric byte array, e.g.
// [7,232,3,0,0], for debugging and interchange. Pending cached values are
// not reflected until Serialize.
func (v *View) MarshalJSON() ([]byte, error) {
	w := v.Bytes()
	out := make([]int, len(w))
	for i, b := range w {
		out[i] = int(b)
	}
	return json.Marshal(out)
}

// Len returns the window length in bytes.
func (v *View) Len() int { return v.shape.length }

// Shape returns the layout this view is bound to.
func (v *View) Shape() *Shape { return v.shape }

// Caching reports whether the view defers writes until Serialize.
func (v *View) Caching() bool { return v.caching }

// Owned reports whether the view allocated its own buffer, as opposed to
// adopting a caller-supplied one.
func (v *View) Owned() bool { return v.owned }
