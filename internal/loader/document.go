package loader

// Metadata carries the retrieval fields attached to each caption chunk. The
// key names are part of the downstream indexing contract.
type Metadata struct {
	Source        string `json:"source"`
	Filename      string `json:"filename"`
	MediaID       string `json:"media_id"`
	Timestamp     string `json:"timestamp"`
	CaptionID     string `json:"caption_id"`
	LanguageCode  string `json:"language_code"`
	CaptionFormat string `json:"caption_format"`
}

// Document is one caption chunk ready for downstream indexing. It is never
// mutated after creation; ownership passes to the caller of Load.
type Document struct {
	PageContent string   `json:"page_content"`
	Metadata    Metadata `json:"metadata"`
}
