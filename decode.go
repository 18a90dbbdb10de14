package blockpack

import (
	"encoding/binary"
	"fmt"
)

// Decode reconstructs the buffer a frame was encoded from. Any failure
// (a malformed length field, a truncated record, a payload that does not
// decompress) yields an empty result with all accumulated output
// discarded. As with Encode, an empty result is ambiguous between an empty
// frame and a corrupt one; DecodeFrame reports the difference.
func Decode(frame []byte) []byte {
	data, err := DecodeFrame(frame)
	if err != nil {
		return nil
	}
	return data
}

// DecodeFrame is the error-reporting form of Decode. The returned buffer
// is either the complete original or nil, never a partial prefix.
func DecodeFrame(frame []byte) ([]byte, error) {
	if len(frame) == 0 {
		return []byte{}, nil
	}

	out := make([]byte, 0, 2*len(frame))
	block := blockPool.Get().(*[]byte)
	defer blockPool.Put(block)

	for off := 0; off < len(frame); {
		if len(frame)-off < recordHeaderLen {
			return nil, fmt.Errorf("%w: %d bytes where a length field is expected", ErrFrameTruncated, len(frame)-off)
		}
		length := int(int32(binary.LittleEndian.Uint32(frame[off:])))
		off += recordHeaderLen

		if length <= 0 || length > maxRecordLen {
			return nil, fmt.Errorf("%w: %d", ErrRecordLength, length)
		}
		if len(frame)-off < length {
			return nil, fmt.Errorf("%w: record declares %d bytes, %d remain", ErrFrameTruncated, length, len(frame)-off)
		}

		n, err := uncompressRecord(frame[off:off+length], *block)
		if err != nil {
			return nil, err
		}
		off += length
		out = append(out, (*block)[:n]...)
	}
	return out, nil
}
