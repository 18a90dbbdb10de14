package blockpack

import (
	"sync"

	"github.com/pierrec/lz4/v4"
)

// blockPool reuses BlockSize scratch buffers for the decode path. This
// reduces GC pressure: every record decompresses through a full-size block
// regardless of how much of it the source actually filled.
var blockPool = sync.Pool{
	New: func() any {
		b := make([]byte, BlockSize)
		return &b
	},
}

// recordPool reuses worst-case compressed-record buffers for the encode
// path and for stream readers.
var recordPool = sync.Pool{
	New: func() any {
		b := make([]byte, maxRecordLen)
		return &b
	},
}

// fastPool reuses fast-compressor state (its hash table dominates the
// per-call allocation cost otherwise).
var fastPool = sync.Pool{
	New: func() any {
		return new(lz4.Compressor)
	},
}
