package mediaapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Default paging for media listings.
const (
	DefaultPageIndex = 1
	DefaultPageSize  = 500
)

// API is the capability set the caption loader depends on. Both platform
// variants satisfy it; the loader never sees a concrete backend.
type API interface {
	GetMediaList(ctx context.Context, courseID, userID string, page Page) ([]MediaEntry, error)
	GetCaptionList(ctx context.Context, courseID, userID, mediaID string) ([]CaptionAsset, error)
	GetCaptionText(ctx context.Context, courseID, userID, captionID string) (string, error)
}

// Page selects one page of a media listing. Zero values take the defaults.
type Page struct {
	Index int
	Size  int
}

// Normalize applies the listing defaults to unset fields.
func (p Page) Normalize() Page {
	if p.Index <= 0 {
		p.Index = DefaultPageIndex
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	return p
}

// MediaEntry identifies one video asset registered in the platform.
type MediaEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CaptionAsset is one subtitle track belonging to a media entry.
type CaptionAsset struct {
	ID           string `json:"id"`
	LanguageCode string `json:"languageCode"`
	Format       Format `json:"format"`
}

// Format enumerates the platform's caption container formats using the
// Kaltura wire codes.
type Format int

const (
	FormatSRT    Format = 1
	FormatDFXP   Format = 2
	FormatWEBVTT Format = 3
	FormatCAP    Format = 4
	FormatSCC    Format = 5
)

var formatNames = map[Format]string{
	FormatSRT:    "SRT",
	FormatDFXP:   "DFXP",
	FormatWEBVTT: "WEBVTT",
	FormatCAP:    "CAP",
	FormatSCC:    "SCC",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return strconv.Itoa(int(f))
}

// ParseFormat resolves a format name or wire code.
func ParseFormat(value string) (Format, error) {
	value = strings.TrimSpace(value)
	for format, name := range formatNames {
		if strings.EqualFold(value, name) {
			return format, nil
		}
	}
	if code, err := strconv.Atoi(value); err == nil {
		if _, ok := formatNames[Format(code)]; ok {
			return Format(code), nil
		}
	}
	return 0, fmt.Errorf("unknown caption format %q", value)
}

// UnmarshalJSON accepts the wire code as a number, a numeric string, or a
// format name; the platform emits all three depending on the endpoint.
func (f *Format) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err == nil {
		*f = Format(code)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("caption format: %w", err)
	}
	parsed, err := ParseFormat(text)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f Format) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(f))
}
