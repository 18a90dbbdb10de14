package blockpack

import "errors"

var (
	// ErrNilIO indicates that NewFrameWriter/NewFrameReader was called with
	// a nil io.Writer/io.Reader.
	ErrNilIO = errors.New("blockpack: NewFrameWriter/NewFrameReader called with a nil io.Writer/io.Reader")

	// ErrSizeBound indicates the compressor cannot report a valid
	// worst-case bound for the requested input size.
	ErrSizeBound = errors.New("blockpack: compressor cannot bound the input size")

	// ErrCompress indicates a block failed to compress. The whole encode
	// operation is abandoned; no partial frame is ever produced.
	ErrCompress = errors.New("blockpack: block compression failed")

	// ErrRecordLength indicates a record declared a length outside
	// (0, CompressBound(BlockSize)].
	ErrRecordLength = errors.New("blockpack: record length outside the valid range")

	// ErrFrameTruncated indicates a frame ended strictly inside a record,
	// either within the 4-byte length field or within the payload.
	ErrFrameTruncated = errors.New("blockpack: truncated frame")

	// ErrDecompress indicates a record's payload failed to decompress or
	// the compressor detected corrupt input.
	ErrDecompress = errors.New("blockpack: block decompression failed")

	// ErrWriterClosed indicates a write was attempted on a FrameWriter
	// after Close.
	ErrWriterClosed = errors.New("blockpack: write on a closed FrameWriter")
)
