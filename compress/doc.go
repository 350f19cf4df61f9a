// Package compress implements the block decompressors a UnityFS bundle
// needs (§4.2), plus a pair of unrelated in-memory codecs used by
// package env's decoded-image cache to bound resident memory.
//
// The bundle-block codecs (None, LZ4/LZ4HC, LZMA) always know the exact
// expected output size up front — the directory/node records carry it —
// so Decompress takes that size explicitly and treats a mismatch as a hard
// error, unlike a general-purpose streaming decompressor that has to guess
// and grow its output buffer.
package compress
