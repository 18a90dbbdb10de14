package blockpack

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// BlockSize is the number of source bytes compressed into each record.
// The last record of a frame may cover fewer.
const BlockSize = 1 << 20

// recordHeaderLen is the size of a record's length field.
const recordHeaderLen = 4

// maxRecordLen bounds the compressed payload of a single record. A decoder
// rejects any record declaring more.
var maxRecordLen = lz4.CompressBlockBound(BlockSize)

// Level tunes the speed/ratio tradeoff of the block compressor. LevelFast
// (and anything below it) selects the fast compressor; levels 2 through
// LevelMax select the high-compression compressor at that depth. The level
// only affects the bytes a block compresses to, never the frame layout.
type Level int

const (
	LevelFast Level = 1
	LevelMax  Level = 9
)

// CompressBound returns the worst-case compressed size for n input bytes.
// A result below 1 means the compressor cannot handle the requested size.
func CompressBound(n int) int {
	return lz4.CompressBlockBound(n)
}

// compressBlock compresses src into dst and returns the compressed length.
// dst must hold at least CompressBound(len(src)) bytes.
func compressBlock(dst, src []byte, level Level) (int, error) {
	var n int
	var err error
	if level > LevelFast {
		c := lz4.CompressorHC{Level: hcLevel(level)}
		n, err = c.CompressBlock(src, dst)
	} else {
		c := fastPool.Get().(*lz4.Compressor)
		n, err = c.CompressBlock(src, dst)
		fastPool.Put(c)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCompress, err)
	}
	if n == 0 {
		// The compressor reports 0 for incompressible input. Store the
		// block as a single literal run so the record stays decodable.
		n = putLiteralBlock(dst, src)
	}
	return n, nil
}

// uncompressRecord decompresses one record payload into dst and returns
// the decompressed length. A payload that fails to decompress, or that
// decompresses to nothing, is an ErrDecompress: records are only ever
// written for non-empty source blocks.
func uncompressRecord(src, dst []byte) (int, error) {
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDecompress, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: record decompressed to nothing", ErrDecompress)
	}
	return n, nil
}

func hcLevel(level Level) lz4.CompressionLevel {
	if level > LevelMax {
		level = LevelMax
	}
	switch level {
	case 2:
		return lz4.Level2
	case 3:
		return lz4.Level3
	case 4:
		return lz4.Level4
	case 5:
		return lz4.Level5
	case 6:
		return lz4.Level6
	case 7:
		return lz4.Level7
	case 8:
		return lz4.Level8
	default:
		return lz4.Level9
	}
}

// putLiteralBlock writes src into dst as one literal-only LZ4 sequence:
// a token carrying the literal count (extended in 255-byte steps above 14)
// followed by the raw bytes. dst must hold at least CompressBound(len(src))
// bytes, which always covers the run.
func putLiteralBlock(dst, src []byte) int {
	di := 0
	if len(src) < 15 {
		dst[di] = byte(len(src)) << 4
		di++
	} else {
		dst[di] = 0xF0
		di++
		rem := len(src) - 15
		for ; rem >= 255; rem -= 255 {
			dst[di] = 0xFF
			di++
		}
		dst[di] = byte(rem)
		di++
	}
	return di + copy(dst[di:], src)
}
