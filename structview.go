// Package structview gives typed, field-addressable access to raw
// fixed-length byte buffers. A Shape describes a set of named fields with
// byte offsets and codecs; a View binds a Shape to a buffer (owned or
// adopted) and reads or writes each field in place, so the underlying bytes
// stay laid out exactly as a C struct would be.
//
// The package performs no locking. An adopted buffer is shared mutable
// state between the view and whoever supplied it; callers sharing a buffer
// across goroutines must synchronize externally.
package structview

import "errors"

var (
	ErrDupField        = errors.New("duplicate field name")
	ErrUnknownField    = errors.New("unknown field")
	ErrNilCodec        = errors.New("nil codec")
	ErrBadSize         = errors.New("bad field size")
	ErrShortBuffer     = errors.New("buffer too short")
	ErrKindMismatch    = errors.New("value kind mismatch")
	ErrOutOfRange      = errors.New("value out of range")
	ErrUnknownCodec    = errors.New("unknown codec")
	ErrUnknownEncoding = errors.New("unknown encoding")
)
