package structview

import "fmt"

// Field describes one entry of a shape before offsets are resolved. Size is
// optional; when zero the codec's width is used. Offset is only consulted by
// NewShapeExplicit.
type Field struct {
	Name   string
	Codec  Codec
	Size   int
	Offset int
}

type boundField struct {
	name   string
	codec  Codec
	offset int
	size   int
}

// Shape is an immutable field layout: ordered fields, a name index and the
// total byte length. One Shape is built per distinct struct layout and
// shared by every view bound to it; the offset table is computed once here,
// never per view.
type Shape struct {
	fields  []boundField
	index   map[string]int
	length  int
	maxSize int
}

func checkField(f Field) (int, error) {
	if f.Name == "" {
		return 0, fmt.Errorf("field with empty name")
	}
	if f.Codec == nil {
		return 0, fmt.Errorf("%w: field %q", ErrNilCodec, f.Name)
	}
	size := f.Size
	if size == 0 {
		size = f.Codec.Size()
	}
	if size <= 0 {
		return 0, fmt.Errorf("%w: field %q has size %d", ErrBadSize, f.Name, size)
	}
	if f.Codec.Size() > 0 && size != f.Codec.Size() {
		return 0, fmt.Errorf("%w: field %q declares %d bytes but codec %s covers %d",
			ErrBadSize, f.Name, size, f.Codec.Name(), f.Codec.Size())
	}
	return size, nil
}

// NewShape lays fields out back to back, offsets by cumulative sum.
func NewShape(fields ...Field) (*Shape, error) {
	s := &Shape{
		fields: make([]boundField, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	off := 0
	for _, f := range fields {
		size, err := checkField(f)
		if err != nil {
			return nil, err
		}
		if _, ok := s.index[f.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDupField, f.Name)
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, boundField{name: f.Name, codec: f.Codec, offset: off, size: size})
		off += size
		if size > s.maxSize {
			s.maxSize = size
		}
	}
	s.length = off
	return s, nil
}

// NewShapeExplicit lays fields out at caller-fixed offsets. Overlapping
// fields are taken as intentional union-style aliasing and not rejected.
// length 0 derives the total from the furthest field end; a non-zero length
// must cover every field.
func NewShapeExplicit(length int, fields ...Field) (*Shape, error) {
	s := &Shape{
		fields: make([]boundField, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	end := 0
	for _, f := range fields {
		size, err := checkField(f)
		if err != nil {
			return nil, err
		}
		if f.Offset < 0 {
			return nil, fmt.Errorf("field %q has negative offset %d", f.Name, f.Offset)
		}
		if _, ok := s.index[f.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDupField, f.Name)
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, boundField{name: f.Name, codec: f.Codec, offset: f.Offset, size: size})
		if f.Offset+size > end {
			end = f.Offset + size
		}
		if size > s.maxSize {
			s.maxSize = size
		}
	}
	if length == 0 {
		length = end
	} else if length < end {
		return nil, fmt.Errorf("%w: declared length %d, fields reach %d", ErrShortBuffer, length, end)
	}
	s.length = length
	return s, nil
}

// Len returns the total byte length a bound buffer must cover.
func (s *Shape) Len() int { return s.length }

func (s *Shape) NumFields() int { return len(s.fields) }

// FieldIndex returns the declaration index of name, or -1. Resolving the
// index once and using GetAt/SetAt skips the name lookup on hot paths.
func (s *Shape) FieldIndex(name string) int {
	i, ok := s.index[name]
	if !ok {
		return -1
	}
	return i
}

// FieldInfo is the resolved metadata of one field.
type FieldInfo struct {
	Name   string
	Codec  Codec
	Offset int
	Size   int
}

func (s *Shape) FieldAt(i int) FieldInfo {
	f := s.fields[i]
	return FieldInfo{Name: f.name, Codec: f.codec, Offset: f.offset, Size: f.size}
}
