package loader

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"mivideo/internal/captions"
	"mivideo/internal/language"
	"mivideo/internal/logging"
	"mivideo/internal/mediaapi"
	"mivideo/internal/services"
	"mivideo/internal/srt"
)

// DefaultChunkSeconds is the caption window size when none is configured.
const DefaultChunkSeconds = 120

const (
	fieldMediaID      = "{mediaId}"
	fieldStartSeconds = "{startSeconds}"
)

var templateFieldPattern = regexp.MustCompile(`\{[^{}]*\}`)

// Config describes a caption loader. All configuration happens here; after
// construction the loader holds no mutable state beyond it.
type Config struct {
	API      mediaapi.API
	CourseID string
	UserID   string

	// URLTemplate produces the source metadata URL of each document. It must
	// reference exactly the fields {mediaId} and {startSeconds}.
	URLTemplate string

	// Languages is the caption language allow-set. Nil selects the default
	// English-dialect set; to load captions of every language set
	// AllLanguages instead.
	Languages    *language.Set
	AllLanguages bool

	// ChunkSeconds is the caption window size; zero selects the default.
	ChunkSeconds int

	// SpanGaps continues chunking past empty interior windows instead of
	// stopping at the first one.
	SpanGaps bool

	Logger *slog.Logger
}

// Loader assembles time-chunked caption documents from a media platform. One
// Load call walks the course's media sequentially; nothing is cached between
// calls.
type Loader struct {
	api       mediaapi.API
	courseID  string
	userID    string
	template  string
	languages *language.Set
	window    time.Duration
	spanGaps  bool
	logger    *slog.Logger
}

// New validates the configuration eagerly and returns a ready loader.
func New(cfg Config) (*Loader, error) {
	if cfg.API == nil {
		return nil, services.Wrap(services.ErrConfiguration, "loader", "new", "api client is required", nil)
	}
	if strings.TrimSpace(cfg.CourseID) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "loader", "new", "course id is required", nil)
	}
	if strings.TrimSpace(cfg.UserID) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "loader", "new", "user id is required", nil)
	}
	if err := validateTemplate(cfg.URLTemplate); err != nil {
		return nil, err
	}
	if cfg.ChunkSeconds < 0 {
		return nil, services.Wrap(services.ErrConfiguration, "loader", "new",
			fmt.Sprintf("chunk seconds must be positive, got %d", cfg.ChunkSeconds), nil)
	}

	chunkSeconds := cfg.ChunkSeconds
	if chunkSeconds == 0 {
		chunkSeconds = DefaultChunkSeconds
	}

	languages := cfg.Languages
	if cfg.AllLanguages {
		languages = nil
	} else if languages == nil {
		languages = language.DefaultEnglish()
	}

	return &Loader{
		api:       cfg.API,
		courseID:  cfg.CourseID,
		userID:    cfg.UserID,
		template:  cfg.URLTemplate,
		languages: languages,
		window:    time.Duration(chunkSeconds) * time.Second,
		spanGaps:  cfg.SpanGaps,
		logger:    logging.NewComponentLogger(cfg.Logger, "loader"),
	}, nil
}

// validateTemplate requires both substitution fields and rejects unknown ones
// so a typo fails at construction, not after a full crawl.
func validateTemplate(template string) error {
	if strings.TrimSpace(template) == "" {
		return services.Wrap(services.ErrConfiguration, "loader", "new",
			fmt.Sprintf("url template is required, with fields for %q and %q", fieldMediaID, fieldStartSeconds), nil)
	}
	if !strings.Contains(template, fieldMediaID) || !strings.Contains(template, fieldStartSeconds) {
		return services.Wrap(services.ErrConfiguration, "loader", "new",
			fmt.Sprintf("url template must reference %q and %q", fieldMediaID, fieldStartSeconds), nil)
	}
	for _, field := range templateFieldPattern.FindAllString(template, -1) {
		if field != fieldMediaID && field != fieldStartSeconds {
			return services.Wrap(services.ErrConfiguration, "loader", "new",
				fmt.Sprintf("url template references unknown field %q", field), nil)
		}
	}
	return nil
}

// Load walks the course's media entries and returns every caption chunk as a
// document, in media-then-caption-then-chunk order. A single failing fetch
// aborts the whole call; there is no partial-result mode.
func (l *Loader) Load(ctx context.Context) ([]Document, error) {
	mediaEntries, err := l.api.GetMediaList(ctx, l.courseID, l.userID, mediaapi.Page{})
	if err != nil {
		return nil, err
	}

	var documents []Document
	for _, media := range mediaEntries {
		mediaDocs, err := l.loadMediaCaptions(ctx, media)
		if err != nil {
			return nil, fmt.Errorf("media %s: %w", media.ID, err)
		}
		documents = append(documents, mediaDocs...)
	}

	l.logger.Info("load complete",
		logging.Int("media_entries", len(mediaEntries)),
		logging.Int("documents", len(documents)),
	)
	return documents, nil
}

func (l *Loader) loadMediaCaptions(ctx context.Context, media mediaapi.MediaEntry) ([]Document, error) {
	assets, err := l.api.GetCaptionList(ctx, l.courseID, l.userID, media.ID)
	if err != nil {
		return nil, err
	}

	var documents []Document
	for _, asset := range assets {
		if l.languages != nil && !l.languages.Contains(asset.LanguageCode) {
			l.logger.Info("skipping caption in filtered language",
				logging.String(logging.FieldCaptionID, asset.ID),
				logging.String("language", asset.LanguageCode),
				logging.String(logging.FieldMediaID, media.ID),
			)
			continue
		}
		// Only the SRT format is supported; other assets are never fetched.
		if asset.Format != mediaapi.FormatSRT {
			l.logger.Info("skipping caption in unsupported format",
				logging.String(logging.FieldCaptionID, asset.ID),
				logging.String("format", asset.Format.String()),
				logging.String(logging.FieldMediaID, media.ID),
			)
			continue
		}

		captionDocs, err := l.loadCaption(ctx, media, asset)
		if err != nil {
			return nil, fmt.Errorf("caption %s: %w", asset.ID, err)
		}
		documents = append(documents, captionDocs...)
	}
	return documents, nil
}

func (l *Loader) loadCaption(ctx context.Context, media mediaapi.MediaEntry, asset mediaapi.CaptionAsset) ([]Document, error) {
	text, err := l.api.GetCaptionText(ctx, l.courseID, l.userID, asset.ID)
	if err != nil {
		return nil, err
	}
	entries, err := srt.Parse(text)
	if err != nil {
		return nil, err
	}

	var opts []captions.Option
	if l.spanGaps {
		opts = append(opts, captions.SpanGaps())
	}
	chunker, err := captions.NewChunker(entries, l.window, opts...)
	if err != nil {
		return nil, err
	}

	var documents []Document
	for {
		chunk, ok := chunker.Next()
		if !ok {
			return documents, nil
		}
		documents = append(documents, l.document(media, asset, chunk))
	}
}

func (l *Loader) document(media mediaapi.MediaEntry, asset mediaapi.CaptionAsset, chunk captions.Chunk) Document {
	timestamp := chunk.Timestamp()
	startSeconds := int64(timestamp / time.Second)
	source := strings.NewReplacer(
		fieldMediaID, media.ID,
		fieldStartSeconds, strconv.FormatInt(startSeconds, 10),
	).Replace(l.template)

	return Document{
		PageContent: chunk.Text(),
		Metadata: Metadata{
			Source:        source,
			Filename:      media.Name,
			MediaID:       media.ID,
			Timestamp:     srt.Timecode(timestamp),
			CaptionID:     asset.ID,
			LanguageCode:  asset.LanguageCode,
			CaptionFormat: asset.Format.String(),
		},
	}
}
