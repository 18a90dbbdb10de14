package blockpack

import "encoding/binary"

// Encode compresses data into a frame, one record per BlockSize bytes of
// input. Any failure yields an empty result with all prior blocks' work
// discarded; no partial frame is ever returned. An empty result is
// therefore ambiguous between an empty input and a failed encode; callers
// that need the distinction should use EncodeFrame or check len(data)
// themselves.
func Encode(data []byte, level Level) []byte {
	frame, err := EncodeFrame(data, level)
	if err != nil {
		return nil
	}
	return frame
}

// EncodeFrame is the error-reporting form of Encode. It produces exactly
// the same frame bytes for the same (data, level). An empty input encodes
// to an empty frame and a nil error.
func EncodeFrame(data []byte, level Level) ([]byte, error) {
	bound := CompressBound(len(data))
	if bound < 1 {
		return nil, ErrSizeBound
	}
	if len(data) == 0 {
		return []byte{}, nil
	}

	records := 1 + (len(data)-1)/BlockSize
	out := make([]byte, 0, bound+records*recordHeaderLen)

	scratch := recordPool.Get().(*[]byte)
	defer recordPool.Put(scratch)

	for off := 0; off < len(data); off += BlockSize {
		end := min(off+BlockSize, len(data))
		n, err := compressBlock(*scratch, data[off:end], level)
		if err != nil {
			return nil, err
		}
		out = binary.LittleEndian.AppendUint32(out, uint32(int32(n)))
		out = append(out, (*scratch)[:n]...)
	}
	return out, nil
}
