package blockpack

import (
	"encoding/binary"
	"io"
)

// FrameWriter streams a frame to an io.Writer, emitting one record per
// BlockSize bytes of input. For the same input and level it produces a
// byte stream identical to Encode. The first error is latched; subsequent
// writes become no-ops returning that error.
//
// Close flushes the final short block and must be called to complete the
// frame. It does not close the underlying writer.
type FrameWriter struct {
	w       io.Writer
	level   Level
	pending []byte // buffered source bytes, compressed at BlockSize
	scratch *[]byte
	count   int64 // frame bytes written
	err     error
	closed  bool
}

var _ io.WriteCloser = (*FrameWriter)(nil)

// NewFrameWriter creates a FrameWriter emitting to w.
func NewFrameWriter(w io.Writer, level Level) (*FrameWriter, error) {
	if w == nil {
		return nil, ErrNilIO
	}
	return &FrameWriter{
		w:       w,
		level:   level,
		pending: make([]byte, 0, BlockSize),
		scratch: recordPool.Get().(*[]byte),
	}, nil
}

// Write implements the io.Writer interface.
func (fw *FrameWriter) Write(p []byte) (int, error) {
	if fw.err != nil {
		return 0, fw.err
	}
	if fw.closed {
		fw.err = ErrWriterClosed
		return 0, fw.err
	}

	written := 0
	for len(p) > 0 {
		n := copy(fw.pending[len(fw.pending):BlockSize], p)
		fw.pending = fw.pending[:len(fw.pending)+n]
		p = p[n:]
		written += n

		if len(fw.pending) == BlockSize {
			if fw.flushBlock(); fw.err != nil {
				return written, fw.err
			}
		}
	}
	return written, nil
}

// flushBlock compresses the pending block and writes one record.
func (fw *FrameWriter) flushBlock() {
	if len(fw.pending) == 0 || fw.err != nil {
		return
	}
	n, err := compressBlock(*fw.scratch, fw.pending, fw.level)
	if err != nil {
		fw.err = err
		return
	}

	var hdr [recordHeaderLen]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(int32(n)))
	if _, err := fw.w.Write(hdr[:]); err != nil {
		fw.err = err
		return
	}
	fw.count += recordHeaderLen

	m, err := fw.w.Write((*fw.scratch)[:n])
	fw.count += int64(m)
	if err != nil {
		fw.err = err
		return
	}
	fw.pending = fw.pending[:0]
}

// Close flushes the final short block and releases internal buffers.
// Closing an already closed writer is a no-op returning the latched error.
func (fw *FrameWriter) Close() error {
	if fw.closed {
		return fw.err
	}
	fw.flushBlock()
	fw.closed = true
	if fw.scratch != nil {
		recordPool.Put(fw.scratch)
		fw.scratch = nil
	}
	return fw.err
}

// Count returns the total frame bytes written so far.
func (fw *FrameWriter) Count() int64 { return fw.count }

// Err returns the latched error, if any.
func (fw *FrameWriter) Err() error { return fw.err }
