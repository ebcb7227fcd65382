package codec

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRLEEncodeLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  []byte
		want []byte
	}{
		{
			name: "run of three stays literal",
			src:  append([]byte("xxx"), bytes.Repeat([]byte{'y'}, 20)...),
			want: []byte{0, 0, 0, 23, 'x', 'x', 'x', rleEscape, 'y', 20},
		},
		{
			name: "run of four becomes marker",
			src:  append([]byte("zzzz"), bytes.Repeat([]byte{'y'}, 20)...),
			want: []byte{0, 0, 0, 24, rleEscape, 'z', 4, rleEscape, 'y', 20},
		},
		{
			name: "escape byte always marker",
			src:  append([]byte{rleEscape}, bytes.Repeat([]byte{'q'}, 30)...),
			want: []byte{0, 0, 0, 31, rleEscape, rleEscape, 1, rleEscape, 'q', 30},
		},
		{
			name: "run capped at 255",
			src:  bytes.Repeat([]byte{'a'}, 256),
			want: []byte{0, 0, 1, 0, rleEscape, 'a', 255, 'a'},
		},
		{
			name: "long uniform input",
			src:  bytes.Repeat([]byte{'a'}, 1000),
			want: []byte{0, 0, 3, 232, rleEscape, 'a', 255, rleEscape, 'a', 255, rleEscape, 'a', 255, rleEscape, 'a', 235},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := RLE{}.Encode(tt.src)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)

			back, err := RLE{}.Decode(got, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.src, back)
		})
	}
}

func TestRLENoGain(t *testing.T) {
	t.Parallel()

	for n := range 5 {
		src := make([]byte, n)
		for i := range src {
			src[i] = byte(i * 37)
		}
		_, ok := RLE{}.Encode(src)
		assert.False(t, ok, "length %d", n)
	}

	_, ok := RLE{}.Encode([]byte("abcdefghijklmnopqrstuvwxyz"))
	assert.False(t, ok)

	_, ok = RLE{}.Encode(bytes.Repeat([]byte{rleEscape, 0}, 64))
	assert.False(t, ok)
}

func TestRLERoundTripRandom(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		var src []byte
		for len(src) < 2048 {
			v := byte(rng.IntN(8) + 0xF6) // includes the escape byte
			run := rng.IntN(300) + 1
			src = append(src, bytes.Repeat([]byte{v}, run)...)
		}

		enc, ok := RLE{}.Encode(src)
		if !ok {
			continue
		}
		assert.Less(t, len(enc), len(src))
		got, err := RLE{}.Decode(enc, uint64(len(src)))
		require.NoError(t, err)
		require.Equal(t, src, got)
	}
}

func TestRLEDecodeShortOutput(t *testing.T) {
	t.Parallel()

	src := append(bytes.Repeat([]byte{'a'}, 100), bytes.Repeat([]byte{'b'}, 100)...)
	enc, ok := RLE{}.Encode(src)
	require.True(t, ok)

	// Drop the count byte of the final marker.
	got, err := RLE{}.Decode(enc[:len(enc)-1], 0)
	require.ErrorIs(t, err, ErrShortOutput)
	assert.Equal(t, bytes.Repeat([]byte{'a'}, 100), got)
}

func TestRLEDecodeStopsAtDeclaredLength(t *testing.T) {
	t.Parallel()

	enc := []byte{0, 0, 0, 3, rleEscape, 'a', 10, 'b'}
	got, err := RLE{}.Decode(enc, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("aaa"), got)
}

func TestRLEDecodeLimit(t *testing.T) {
	t.Parallel()

	enc, ok := RLE{}.Encode(bytes.Repeat([]byte{0}, 4096))
	require.True(t, ok)

	_, err := RLE{}.Decode(enc, 1024)
	require.ErrorIs(t, err, ErrLimitExceeded)

	got, err := RLE{}.Decode(enc, 4096)
	require.NoError(t, err)
	assert.Len(t, got, 4096)
}

func TestRLEDecodeMissingPrefix(t *testing.T) {
	t.Parallel()

	_, err := RLE{}.Decode([]byte{0, 1}, 0)
	require.ErrorIs(t, err, ErrCorrupt)
}
