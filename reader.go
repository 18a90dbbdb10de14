package blockpack

import (
	"encoding/binary"
	"fmt"
	"io"
)

// FrameReader decompresses a frame from an io.Reader one record at a time.
// A stream that ends exactly on a record boundary yields a clean io.EOF;
// one that ends inside a record yields ErrFrameTruncated. The first error
// is latched; subsequent reads become no-ops returning that error.
type FrameReader struct {
	r      io.Reader
	block  *[]byte // decoded block scratch
	record *[]byte // compressed record scratch
	buf    []byte  // unread decoded bytes, a view into *block
	count  int64   // decoded bytes handed out
	err    error
}

var _ io.ReadCloser = (*FrameReader)(nil)

// NewFrameReader creates a FrameReader consuming r.
func NewFrameReader(r io.Reader) (*FrameReader, error) {
	if r == nil {
		return nil, ErrNilIO
	}
	return &FrameReader{
		r:      r,
		block:  blockPool.Get().(*[]byte),
		record: recordPool.Get().(*[]byte),
	}, nil
}

// Read implements the io.Reader interface.
func (fr *FrameReader) Read(p []byte) (int, error) {
	if fr.err != nil {
		return 0, fr.err
	}
	for len(fr.buf) == 0 {
		if err := fr.fill(); err != nil {
			fr.err = err
			return 0, err
		}
	}
	n := copy(p, fr.buf)
	fr.buf = fr.buf[n:]
	fr.count += int64(n)
	return n, nil
}

// fill reads the next record from the stream and decompresses it.
func (fr *FrameReader) fill() error {
	var hdr [recordHeaderLen]byte
	if _, err := io.ReadFull(fr.r, hdr[:]); err != nil {
		if err == io.EOF {
			// Clean end of frame at a record boundary.
			return io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: partial length field", ErrFrameTruncated)
		}
		return err
	}

	length := int(int32(binary.LittleEndian.Uint32(hdr[:])))
	if length <= 0 || length > maxRecordLen {
		return fmt.Errorf("%w: %d", ErrRecordLength, length)
	}

	if _, err := io.ReadFull(fr.r, (*fr.record)[:length]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: record declares %d bytes", ErrFrameTruncated, length)
		}
		return err
	}

	n, err := uncompressRecord((*fr.record)[:length], *fr.block)
	if err != nil {
		return err
	}
	fr.buf = (*fr.block)[:n]
	return nil
}

// Close releases the reader's scratch buffers. It does not close the
// underlying reader. Reads after Close report io.EOF unless an earlier
// error was latched.
func (fr *FrameReader) Close() error {
	fr.buf = nil
	if fr.block != nil {
		blockPool.Put(fr.block)
		fr.block = nil
	}
	if fr.record != nil {
		recordPool.Put(fr.record)
		fr.record = nil
	}
	if fr.err == nil {
		fr.err = io.EOF
	}
	return nil
}

// Count returns the total decoded bytes handed out so far.
func (fr *FrameReader) Count() int64 { return fr.count }

// Err returns the latched error, if any.
func (fr *FrameReader) Err() error { return fr.err }

// IsEOF reports whether the reader stopped at a clean record boundary.
func (fr *FrameReader) IsEOF() bool { return fr.err == io.EOF }
