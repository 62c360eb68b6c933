package captions

import (
	"fmt"
	"strings"
	"time"

	"mivideo/internal/services"
	"mivideo/internal/srt"
)

// Chunk is the contiguous run of caption entries whose start offsets fall in
// one fixed-duration window of the track.
type Chunk struct {
	Index   int
	Start   time.Duration
	Entries []srt.Entry
}

// Text joins the chunk's caption payloads with newlines.
func (c Chunk) Text() string {
	parts := make([]string, len(c.Entries))
	for i, entry := range c.Entries {
		parts[i] = entry.Text
	}
	return strings.Join(parts, "\n")
}

// Timestamp returns the start offset of the chunk's first entry.
func (c Chunk) Timestamp() time.Duration {
	if len(c.Entries) == 0 {
		return c.Start
	}
	return c.Entries[0].Start
}

// Chunker lazily walks a caption track in fixed windows. Windows tile the
// track from zero; window k selects entries with start offsets in
// [k*window, (k+1)*window). By default production stops the first time a
// window selects nothing, even when later entries exist past a gap. That
// matches the historical loader behaviour downstream indexes depend on;
// SpanGaps opts into the corrected mode that skips empty interior windows.
type Chunker struct {
	entries  []srt.Entry
	window   time.Duration
	spanGaps bool

	index int
	done  bool
}

// Option adjusts chunker behaviour.
type Option func(*Chunker)

// SpanGaps continues chunking past empty interior windows instead of
// treating the first one as end of track.
func SpanGaps() Option {
	return func(c *Chunker) { c.spanGaps = true }
}

// NewChunker validates the window and prepares a chunk iterator.
func NewChunker(entries []srt.Entry, window time.Duration, opts ...Option) (*Chunker, error) {
	if window <= 0 {
		return nil, services.Wrap(services.ErrConfiguration, "captions", "chunk",
			fmt.Sprintf("window must be positive, got %v", window), nil)
	}
	chunker := &Chunker{entries: entries, window: window}
	for _, opt := range opts {
		opt(chunker)
	}
	return chunker, nil
}

// Next produces the next chunk, reporting false once the track is exhausted.
func (c *Chunker) Next() (Chunk, bool) {
	for !c.done {
		start := time.Duration(c.index) * c.window
		end := start + c.window

		var selected []srt.Entry
		for _, entry := range c.entries {
			if entry.Start >= start && entry.Start < end {
				selected = append(selected, entry)
			}
		}

		if len(selected) == 0 {
			if !c.spanGaps || !c.entriesRemainAfter(end) {
				c.done = true
				return Chunk{}, false
			}
			c.index++
			continue
		}

		chunk := Chunk{Index: c.index, Start: start, Entries: selected}
		c.index++
		return chunk, true
	}
	return Chunk{}, false
}

// Reset rewinds the iterator to the first window.
func (c *Chunker) Reset() {
	c.index = 0
	c.done = false
}

// Collect restarts the iterator and drains every chunk.
func (c *Chunker) Collect() []Chunk {
	c.Reset()
	var chunks []Chunk
	for {
		chunk, ok := c.Next()
		if !ok {
			return chunks
		}
		chunks = append(chunks, chunk)
	}
}

func (c *Chunker) entriesRemainAfter(offset time.Duration) bool {
	for _, entry := range c.entries {
		if entry.Start >= offset {
			return true
		}
	}
	return false
}
