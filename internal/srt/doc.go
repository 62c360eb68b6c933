// Package srt parses SubRip caption text into timed entries. SRT is the only
// caption format the pipeline reads; assets in other formats are filtered out
// before their text is ever fetched.
package srt
