// Package captions slices a parsed caption track into fixed-duration chunks,
// one retrievable document per chunk.
package captions
