package structview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOfBridge(t *testing.T) {
	cases := []struct {
		in   any
		want Value
	}{
		{true, ValueOfBool(true)},
		{uint8(7), ValueOfUint(7)},
		{uint16(7), ValueOfUint(7)},
		{uint32(7), ValueOfUint(7)},
		{uint64(7), ValueOfUint(7)},
		{uint(7), ValueOfUint(7)},
		{int8(-7), ValueOfInt(-7)},
		{int16(-7), ValueOfInt(-7)},
		{int32(-7), ValueOfInt(-7)},
		{int64(-7), ValueOfInt(-7)},
		{int(-7), ValueOfInt(-7)},
		{float32(1.5), ValueOfFloat(1.5)},
		{float64(1.5), ValueOfFloat(1.5)},
		{[]byte{1, 2}, ValueOfBytes([]byte{1, 2})},
		{"hi", ValueOfString("hi")},
	}
	for _, tc := range cases {
		got, ok := ValueOf(tc.in)
		require.True(t, ok, "%T", tc.in)
		require.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
	}

	_, ok := ValueOf(struct{}{})
	require.False(t, ok)
	_, ok = ValueOf(nil)
	require.False(t, ok)
}

func TestValueAccessors(t *testing.T) {
	assert.True(t, ValueOfBool(true).Bool())
	assert.EqualValues(t, 7, ValueOfUint(7).Uint())
	assert.EqualValues(t, -7, ValueOfInt(-7).Int())
	assert.EqualValues(t, 1.5, ValueOfFloat(1.5).Float())
	assert.Equal(t, []byte{1, 2}, ValueOfBytes([]byte{1, 2}).Bytes())
	assert.Equal(t, "hi", ValueOfString("hi").Text())
	assert.Equal(t, KindInvalid, Value{}.Kind())
}

func TestValueEqual(t *testing.T) {
	assert.True(t, ValueOfUint(7).Equal(ValueOfUint(7)))
	assert.False(t, ValueOfUint(7).Equal(ValueOfInt(7))) // kinds differ
	assert.True(t, ValueOfBytes([]byte{1}).Equal(ValueOfBytes([]byte{1})))
	assert.False(t, ValueOfBytes([]byte{1}).Equal(ValueOfBytes([]byte{2})))
	assert.True(t, ValueOfString("a").Equal(ValueOfString("a")))
	assert.False(t, ValueOfString("a").Equal(ValueOfString("b")))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "uint(7)", ValueOfUint(7).String())
	assert.Equal(t, `string("hi")`, ValueOfString("hi").String())
	assert.Equal(t, "invalid", Value{}.String())
}
