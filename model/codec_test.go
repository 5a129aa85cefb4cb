package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxthread/rewardengine/wire"
)

func TestPostRoundTrip(t *testing.T) {
	owner := actor(9)
	url := "https://example.com/x.png"
	post, err := NewPost(5, 1000, owner, PostInit{Title: "t", Content: "c", PhotoUrl: url})
	require.NoError(t, err)

	p := wire.NewPacker(64)
	PackPost(p, post)
	r := wire.NewReader(p.Bytes()[4:])

	got, err := UnpackPost(r)
	require.NoError(t, err)
	require.Equal(t, post, got)
	require.Equal(t, 0, r.Remaining())
}

func TestPhotoUrlEmptyNormalizesToAbsent(t *testing.T) {
	post, err := NewPost(1, 1, actor(1), PostInit{Title: "t", PhotoUrl: ""})
	require.NoError(t, err)
	require.Nil(t, post.PhotoUrl)
}

func TestAmountRoundTrip(t *testing.T) {
	a := NewAmount(123456789)
	p := wire.NewPacker(16)
	PackAmount(p, a)
	r := wire.NewReader(p.Bytes()[4:])
	got, err := UnpackAmount(r)
	require.NoError(t, err)
	require.Equal(t, 0, a.Cmp(got))
}
