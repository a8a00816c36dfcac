package structview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrips(t *testing.T) {
	cases := []struct {
		codec Codec
		val   Value
		wire  []byte
	}{
		{Bool, ValueOfBool(true), []byte{1}},
		{Bool, ValueOfBool(false), []byte{0}},
		{Uint8, ValueOfUint(7), []byte{7}},
		{Uint16LE, ValueOfUint(0x1234), []byte{0x34, 0x12}},
		{Uint16BE, ValueOfUint(0x1234), []byte{0x12, 0x34}},
		{Uint24LE, ValueOfUint(0x123456), []byte{0x56, 0x34, 0x12}},
		{Uint24BE, ValueOfUint(0x123456), []byte{0x12, 0x34, 0x56}},
		{Uint32LE, ValueOfUint(1000), []byte{0xE8, 0x03, 0, 0}},
		{Uint32BE, ValueOfUint(1000), []byte{0, 0, 0x03, 0xE8}},
		{Uint64LE, ValueOfUint(1), []byte{1, 0, 0, 0, 0, 0, 0, 0}},
		{Uint64BE, ValueOfUint(1), []byte{0, 0, 0, 0, 0, 0, 0, 1}},
		{Int8, ValueOfInt(-1), []byte{0xFF}},
		{Int16LE, ValueOfInt(-2), []byte{0xFE, 0xFF}},
		{Int16BE, ValueOfInt(-2), []byte{0xFF, 0xFE}},
		{Int32LE, ValueOfInt(-1), []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{Int64BE, ValueOfInt(2), []byte{0, 0, 0, 0, 0, 0, 0, 2}},
		{Float32LE, ValueOfFloat(1.5), []byte{0, 0, 0xC0, 0x3F}},
		{Float64LE, ValueOfFloat(1.5), []byte{0, 0, 0, 0, 0, 0, 0xF8, 0x3F}},
		{BytesCodec(3), ValueOfBytes([]byte{9, 8, 7}), []byte{9, 8, 7}},
		{CharCodec(4), ValueOfString("ab"), []byte{'a', 'b', 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.codec.Name()+"/"+tc.val.String(), func(t *testing.T) {
			require.Equal(t, len(tc.wire), tc.codec.Size())

			// write at a non-zero offset to make sure offsets are honored
			buf := make([]byte, tc.codec.Size()+2)
			require.NoError(t, tc.codec.Write(buf, 1, tc.val))
			require.Equal(t, tc.wire, buf[1:1+tc.codec.Size()])
			require.EqualValues(t, 0, buf[0])
			require.EqualValues(t, 0, buf[len(buf)-1])

			got := tc.codec.Read(buf, 1)
			require.True(t, tc.val.Equal(got), "want %s, got %s", tc.val, got)
		})
	}
}

func TestUintRange(t *testing.T) {
	buf := make([]byte, 8)
	require.ErrorIs(t, Uint8.Write(buf, 0, ValueOfUint(256)), ErrOutOfRange)
	require.ErrorIs(t, Uint24LE.Write(buf, 0, ValueOfUint(1<<24)), ErrOutOfRange)
	require.NoError(t, Uint8.Write(buf, 0, ValueOfUint(255)))
	require.NoError(t, Uint64LE.Write(buf, 0, ValueOfUint(^uint64(0))))
}

func TestIntRange(t *testing.T) {
	buf := make([]byte, 8)
	require.ErrorIs(t, Int8.Write(buf, 0, ValueOfInt(128)), ErrOutOfRange)
	require.ErrorIs(t, Int8.Write(buf, 0, ValueOfInt(-129)), ErrOutOfRange)
	require.NoError(t, Int8.Write(buf, 0, ValueOfInt(-128)))
	require.EqualValues(t, -128, Int8.Read(buf, 0).Int())
}

func TestKindMismatchNamesCodec(t *testing.T) {
	buf := make([]byte, 4)
	err := Uint32LE.Write(buf, 0, ValueOfInt(7))
	require.ErrorIs(t, err, ErrKindMismatch)
	assert.Contains(t, err.Error(), "uint32le")
	assert.Contains(t, err.Error(), "int")
}

func TestBytesCodecExactSize(t *testing.T) {
	c := BytesCodec(4)
	buf := make([]byte, 4)
	require.ErrorIs(t, c.Write(buf, 0, ValueOfBytes([]byte{1, 2})), ErrBadSize)
	require.NoError(t, c.Write(buf, 0, ValueOfBytes([]byte{1, 2, 3, 4})))

	// Read hands out a copy, never the live buffer
	got := c.Read(buf, 0)
	got.Bytes()[0] = 99
	require.EqualValues(t, 1, buf[0])
}

func TestCharCodecPadsAndTrims(t *testing.T) {
	c := CharCodec(4)
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	require.NoError(t, c.Write(buf, 0, ValueOfString("ab")))
	require.Equal(t, []byte{'a', 'b', 0, 0}, buf)
	require.Equal(t, "ab", c.Read(buf, 0).Text())

	require.ErrorIs(t, c.Write(buf, 0, ValueOfString("toolong")), ErrBadSize)
}

func TestRegistry(t *testing.T) {
	c, ok := Lookup("uint32le")
	require.True(t, ok)
	require.Equal(t, Uint32LE, c)

	_, ok = Lookup("bytes:12")
	require.False(t, ok) // sized codecs resolve, they don't register

	require.Error(t, Register(Uint8)) // name taken
	require.ErrorIs(t, Register(nil), ErrNilCodec)
}

func TestResolve(t *testing.T) {
	c, err := Resolve("uint16be")
	require.NoError(t, err)
	require.Equal(t, Uint16BE, c)

	c, err = Resolve("bytes:12")
	require.NoError(t, err)
	require.Equal(t, 12, c.Size())
	require.Equal(t, KindBytes, c.Kind())

	c, err = Resolve("char:8")
	require.NoError(t, err)
	require.Equal(t, 8, c.Size())

	_, err = Resolve("bogus")
	require.ErrorIs(t, err, ErrUnknownCodec)
	_, err = Resolve("bytes:0")
	require.ErrorIs(t, err, ErrUnknownCodec)
	_, err = Resolve("bytes:x")
	require.ErrorIs(t, err, ErrUnknownCodec)
}
