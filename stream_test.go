package blockpack

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameWriterMatchesEncode(t *testing.T) {
	data := compressibleBytes(2*BlockSize + 4321)
	want := Encode(data, LevelFast)

	// Chunk sizes straddling and misaligned with the block size.
	for _, chunk := range []int{1 << 10, 70000, BlockSize, BlockSize + 1, len(data)} {
		var buf bytes.Buffer
		fw, err := NewFrameWriter(&buf, LevelFast)
		require.NoError(t, err)

		for off := 0; off < len(data); off += chunk {
			end := min(off+chunk, len(data))
			n, err := fw.Write(data[off:end])
			require.NoError(t, err, "chunk %d", chunk)
			require.Equal(t, end-off, n, "chunk %d", chunk)
		}
		require.NoError(t, fw.Close(), "chunk %d", chunk)

		assert.Equal(t, want, buf.Bytes(), "chunk %d", chunk)
		assert.Equal(t, int64(buf.Len()), fw.Count(), "chunk %d", chunk)
	}
}

func TestFrameWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	fw, err := NewFrameWriter(&buf, LevelFast)
	require.NoError(t, err)
	require.NoError(t, fw.Close())
	assert.Zero(t, buf.Len())
	assert.Zero(t, fw.Count())
}

func TestFrameWriterNilWriter(t *testing.T) {
	fw, err := NewFrameWriter(nil, LevelFast)
	assert.Nil(t, fw)
	assert.ErrorIs(t, err, ErrNilIO)
}

func TestFrameWriterWriteAfterClose(t *testing.T) {
	var buf bytes.Buffer
	fw, err := NewFrameWriter(&buf, LevelFast)
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	_, err = fw.Write([]byte("late"))
	assert.ErrorIs(t, err, ErrWriterClosed)
	assert.ErrorIs(t, fw.Err(), ErrWriterClosed)

	// Close is idempotent and keeps reporting the latched error.
	assert.ErrorIs(t, fw.Close(), ErrWriterClosed)
}

// failWriter fails every write after the first n bytes.
type failWriter struct {
	n   int
	err error
}

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, w.err
	}
	if len(p) > w.n {
		p = p[:w.n]
	}
	w.n -= len(p)
	return len(p), nil
}

func TestFrameWriterLatchesSinkError(t *testing.T) {
	sinkErr := errors.New("disk full")
	fw, err := NewFrameWriter(&failWriter{n: 2, err: sinkErr}, LevelFast)
	require.NoError(t, err)

	data := compressibleBytes(BlockSize)
	_, err = fw.Write(data)
	assert.ErrorIs(t, err, sinkErr)

	_, err = fw.Write(data)
	assert.ErrorIs(t, err, sinkErr)
	assert.ErrorIs(t, fw.Close(), sinkErr)
}

func TestFrameReaderRoundTrip(t *testing.T) {
	data := compressibleBytes(3*BlockSize + 77)
	frame := Encode(data, LevelMax)

	fr, err := NewFrameReader(bytes.NewReader(frame))
	require.NoError(t, err)
	defer fr.Close()

	got, err := io.ReadAll(fr)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, int64(len(data)), fr.Count())
	assert.True(t, fr.IsEOF())
}

func TestFrameReaderSmallReads(t *testing.T) {
	data := compressibleBytes(BlockSize + 19)
	frame := Encode(data, LevelFast)

	fr, err := NewFrameReader(bytes.NewReader(frame))
	require.NoError(t, err)
	defer fr.Close()

	var got []byte
	p := make([]byte, 777)
	for {
		n, err := fr.Read(p)
		got = append(got, p[:n]...)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, data, got)
}

func TestFrameReaderEmptyStream(t *testing.T) {
	fr, err := NewFrameReader(bytes.NewReader(nil))
	require.NoError(t, err)
	defer fr.Close()

	got, err := io.ReadAll(fr)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, fr.IsEOF())
}

func TestFrameReaderNilReader(t *testing.T) {
	fr, err := NewFrameReader(nil)
	assert.Nil(t, fr)
	assert.ErrorIs(t, err, ErrNilIO)
}

func TestFrameReaderTruncatedStream(t *testing.T) {
	frame := Encode(compressibleBytes(100), LevelFast)

	t.Run("insidePayload", func(t *testing.T) {
		fr, err := NewFrameReader(bytes.NewReader(frame[:len(frame)-3]))
		require.NoError(t, err)
		defer fr.Close()

		_, err = io.ReadAll(fr)
		assert.ErrorIs(t, err, ErrFrameTruncated)
		assert.False(t, fr.IsEOF())
	})

	t.Run("insideLengthField", func(t *testing.T) {
		fr, err := NewFrameReader(bytes.NewReader(frame[:2]))
		require.NoError(t, err)
		defer fr.Close()

		_, err = io.ReadAll(fr)
		assert.ErrorIs(t, err, ErrFrameTruncated)
	})
}

func TestFrameReaderCorruptLength(t *testing.T) {
	fr, err := NewFrameReader(bytes.NewReader([]byte{0, 0, 0, 0}))
	require.NoError(t, err)
	defer fr.Close()

	_, err = io.ReadAll(fr)
	assert.ErrorIs(t, err, ErrRecordLength)
	assert.ErrorIs(t, fr.Err(), ErrRecordLength)
}

func TestWriterReaderPipeline(t *testing.T) {
	data := randomBytes(2*BlockSize+5000, 0xBEEF)

	var buf bytes.Buffer
	fw, err := NewFrameWriter(&buf, 6)
	require.NoError(t, err)
	_, err = io.Copy(fw, bytes.NewReader(data))
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	fr, err := NewFrameReader(&buf)
	require.NoError(t, err)
	defer fr.Close()

	got, err := io.ReadAll(fr)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}
