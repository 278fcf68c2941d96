package framed

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func encode(t *testing.T, frames ...[]byte) []byte {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, f := range frames {
		require.NoError(t, w.WriteFrame(f))
	}
	return buf.Bytes()
}

func TestReader(t *testing.T) {
	data := encode(t, []byte{0, 0, 0, 1, 0x67}, []byte{}, []byte{0, 0, 1, 0x65, 0x88})
	require.Equal(t, []byte{0, 0, 0, 5, 0, 0, 0, 1, 0x67}, data[:9])

	r := NewReader(bytes.NewReader(data))
	f, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 1, 0x67}, f)
	f, err = r.Next()
	require.NoError(t, err)
	require.Empty(t, f)
	f, err = r.Next()
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 1, 0x65, 0x88}, f)
	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, uint64(3), r.FrameCount())
}

func TestTruncatedHeader(t *testing.T) {
	data := append(encode(t, []byte{1, 2}), 0, 0)
	r := NewReader(bytes.NewReader(data))
	_, err := r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	require.Equal(t, io.EOF, err)
}

func TestTruncatedBody(t *testing.T) {
	data := encode(t, []byte{1, 2, 3, 4})
	r := NewReader(bytes.NewReader(data[:len(data)-1]))
	_, err := r.Next()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestFrameTooLarge(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff}))
	_, err := r.Next()
	require.ErrorAs(t, err, &ErrFrameTooLarge{})

	r = NewReader(bytes.NewReader(encode(t, make([]byte, 10))))
	r.MaxFrameSize = 0
	f, err := r.Next()
	require.NoError(t, err)
	require.Len(t, f, 10)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.h264")
	require.NoError(t, os.WriteFile(path, encode(t, []byte{9}), 0o644))

	r, err := Open(path)
	require.NoError(t, err)
	f, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, []byte{9}, f)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	_, err = Open(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
