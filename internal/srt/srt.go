package srt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"mivideo/internal/services"
)

// Entry is one timed caption from an SRT track.
type Entry struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// Parse converts raw SRT text into its ordered caption entries. Malformed
// input fails with services.ErrParse; entries keep their file order.
func Parse(text string) ([]Entry, error) {
	content := strings.TrimPrefix(text, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	var entries []Entry
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		entry, err := parseBlock(block)
		if err != nil {
			return nil, services.Wrap(services.ErrParse, "srt", "parse",
				fmt.Sprintf("block %d", len(entries)+1), err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseBlock(block string) (Entry, error) {
	lines := strings.Split(block, "\n")
	if len(lines) < 2 {
		return Entry{}, fmt.Errorf("incomplete block %q", block)
	}

	index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return Entry{}, fmt.Errorf("invalid sequence number %q", lines[0])
	}

	timing := lines[1]
	parts := strings.Split(timing, "-->")
	if len(parts) != 2 {
		return Entry{}, fmt.Errorf("invalid timing line %q", timing)
	}
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return Entry{}, err
	}
	end, err := ParseTimestamp(parts[1])
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Index: index,
		Start: start,
		End:   end,
		Text:  strings.TrimSpace(strings.Join(lines[2:], "\n")),
	}, nil
}

// ParseTimestamp reads an SRT timestamp (HH:MM:SS,mmm). A period before the
// milliseconds is tolerated since some producers emit it.
func ParseTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(strings.TrimSpace(hms[0]))
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// FormatTimestamp renders a duration as an SRT timestamp (HH:MM:SS,mmm).
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	millis := (d - seconds*time.Second) / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// Timecode renders a duration as HH:MM:SS, milliseconds truncated. Document
// metadata timestamps use this form.
func Timecode(d time.Duration) string {
	formatted := FormatTimestamp(d)
	return formatted[:strings.IndexByte(formatted, ',')]
}
