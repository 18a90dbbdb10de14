// Package blockpack implements a chunked LZ4 block codec. It serializes an
// arbitrary byte buffer into a sequence of independently compressed,
// length-prefixed records and reconstructs the original buffer from that
// sequence.
//
// The wire format is a flat concatenation of records with no header,
// trailer, checksum or count field:
//
//	record := length  (4 bytes, little-endian signed integer)
//	          payload (length bytes, one LZ4-compressed block)
//
// Each record holds one block of at most BlockSize source bytes; the last
// block of a buffer may be shorter, and an empty buffer produces an empty
// frame. A record's length is always positive and never exceeds
// CompressBound(BlockSize). The end of a frame is implicit: decoding stops
// only at a record boundary.
//
// Two API surfaces are provided. Encode and Decode keep the legacy
// contract: every failure collapses to an empty result, indistinguishable
// from a legitimately empty input. EncodeFrame and DecodeFrame return the
// same bytes along with an explicit error; FrameWriter and FrameReader
// stream the identical format over io.Writer/io.Reader for inputs too
// large to hold in memory twice.
//
// The codec is stateless and reentrant: concurrent calls operate on
// independent buffers and require no locking.
package blockpack
