package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackerFramingRoundTrip(t *testing.T) {
	p := NewPacker(16)
	p.PackTag(7)
	p.PackUint32(42)
	p.PackString("hello")
	p.PackOption(true)
	p.PackU128(1, 2)

	framed := p.Bytes()
	payload, err := ReadFramed(bytes.NewReader(framed))
	require.NoError(t, err)

	r := NewReader(payload)
	tag, err := r.UnpackTag()
	require.NoError(t, err)
	require.Equal(t, byte(7), tag)

	n, err := r.UnpackUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(42), n)

	s, err := r.UnpackString()
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	opt, err := r.UnpackOption()
	require.NoError(t, err)
	require.True(t, opt)

	lo, hi, err := r.UnpackU128()
	require.NoError(t, err)
	require.Equal(t, uint64(1), lo)
	require.Equal(t, uint64(2), hi)

	require.Equal(t, 0, r.Remaining())
}

func TestReaderTruncatedPayload(t *testing.T) {
	r := NewReader([]byte{1, 2})
	_, err := r.UnpackUint64()
	require.ErrorIs(t, err, ErrTruncated)
}
