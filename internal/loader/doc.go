// Package loader orchestrates the caption pipeline: it lists a course's
// media, filters caption assets by language and format, fetches and parses
// SRT text, and slices each track into fixed-duration document chunks with
// retrieval metadata.
package loader
