package kaltura

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"mivideo/internal/logging"
	"mivideo/internal/mediaapi"
	"mivideo/internal/services"
)

const (
	defaultCategoryPrefix = "Canvas_UMich"
	defaultHTTPTimeout    = 10 * time.Second
	component             = "kaltura"
)

// Config describes the Kaltura session client configuration.
type Config struct {
	// Host of the Kaltura api_v3 gateway. A scheme may be included for
	// non-TLS test servers; https is assumed otherwise.
	Host string
	// SessionToken is a pre-established Kaltura session (KS). The client
	// performs no credential exchange of its own.
	SessionToken string
	// CategoryPrefix anchors the hierarchical category path that scopes
	// media to a course. Defaults to the Canvas integration prefix.
	CategoryPrefix string
	HTTPClient     *http.Client
	Logger         *slog.Logger
	// Retry overrides the default backoff schedule. The zero value keeps it.
	Retry mediaapi.RetryPolicy
}

// Client talks to the Kaltura api_v3 gateway with an existing session token.
// Unlike the MiVideo gateway there is no server-side course scoping; media is
// scoped by resolving the course's category to a platform id and filtering
// listings by it. The userID argument of the API contract is accepted but
// carries no weight in this trust model.
type Client struct {
	origin string
	ks     string
	prefix string
	http   *http.Client
	logger *slog.Logger
	retry  mediaapi.RetryPolicy
}

var _ mediaapi.API = (*Client)(nil)

// New validates the configuration and returns a session-backed client.
func New(cfg Config) (*Client, error) {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new", "host is required", nil)
	}
	ks := strings.TrimSpace(cfg.SessionToken)
	if ks == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new", "session token is required", nil)
	}
	prefix := strings.TrimSpace(cfg.CategoryPrefix)
	if prefix == "" {
		prefix = defaultCategoryPrefix
	}

	origin := host
	if !strings.Contains(origin, "://") {
		origin = "https://" + origin
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return &Client{
		origin: strings.TrimRight(origin, "/"),
		ks:     ks,
		prefix: prefix,
		http:   httpClient,
		logger: logging.NewComponentLogger(cfg.Logger, component),
		retry:  cfg.Retry,
	}, nil
}

// CategoryFullName derives the hierarchical category path that associates
// media with a course.
func (c *Client) CategoryFullName(courseID string) string {
	return fmt.Sprintf("%s>site>channels>%s", c.prefix, courseID)
}

// GetMediaList resolves the course category and lists the media filed under it.
func (c *Client) GetMediaList(ctx context.Context, courseID, userID string, page mediaapi.Page) ([]mediaapi.MediaEntry, error) {
	page = page.Normalize()

	categoryID, err := c.resolveCategoryID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"filter[objectType]":           []string{"KalturaMediaEntryFilter"},
		"filter[categoryAncestorIdIn]": []string{categoryID},
		"pager[objectType]":            []string{"KalturaFilterPager"},
		"pager[pageIndex]":             []string{fmt.Sprint(page.Index)},
		"pager[pageSize]":              []string{fmt.Sprint(page.Size)},
	}
	body, err := c.call(ctx, "media list", "media", "list", params)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Objects []mediaapi.MediaEntry `json:"objects"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, services.Wrap(services.ErrTransport, component, "media list", "decode response", err)
	}
	return payload.Objects, nil
}

// GetCaptionList lists the caption assets attached to a media entry.
func (c *Client) GetCaptionList(ctx context.Context, courseID, userID, mediaID string) ([]mediaapi.CaptionAsset, error) {
	params := url.Values{
		"filter[objectType]":   []string{"KalturaCaptionAssetFilter"},
		"filter[entryIdEqual]": []string{mediaID},
	}
	body, err := c.call(ctx, "caption list", "caption_captionasset", "list", params)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Objects []mediaapi.CaptionAsset `json:"objects"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, services.Wrap(services.ErrTransport, component, "caption list", "decode response", err)
	}
	return payload.Objects, nil
}

// GetCaptionText serves the raw subtitle text of a caption asset.
func (c *Client) GetCaptionText(ctx context.Context, courseID, userID, captionID string) (string, error) {
	params := url.Values{
		"captionAssetId": []string{captionID},
	}
	body, err := c.call(ctx, "caption text", "caption_captionasset", "serve", params)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// resolveCategoryID looks up the platform id of the course's category path.
// Zero matches means the course has no media channel.
func (c *Client) resolveCategoryID(ctx context.Context, courseID string) (string, error) {
	fullName := c.CategoryFullName(courseID)
	params := url.Values{
		"filter[objectType]":    []string{"KalturaCategoryFilter"},
		"filter[fullNameEqual]": []string{fullName},
	}
	body, err := c.call(ctx, "category resolve", "category", "list", params)
	if err != nil {
		return "", err
	}
	var payload struct {
		Objects []struct {
			ID json.Number `json:"id"`
		} `json:"objects"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", services.Wrap(services.ErrTransport, component, "category resolve", "decode response", err)
	}
	if len(payload.Objects) == 0 {
		return "", services.Wrap(services.ErrCategoryNotFound, component, "category resolve",
			fmt.Sprintf("no category matches %q", fullName), nil)
	}
	return payload.Objects[0].ID.String(), nil
}

// call posts one service/action request to the api_v3 gateway through the
// retry decorator. The gateway reports failures as HTTP 200 bodies carrying a
// KalturaAPIException object, so those are classified here as well.
func (c *Client) call(ctx context.Context, operation, service, action string, params url.Values) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/api_v3/service/%s/action/%s", c.origin, service, action)

	form := url.Values{"format": []string{"1"}, "ks": []string{c.ks}}
	for key, values := range params {
		form[key] = values
	}

	var payload []byte
	err := c.retry.Do(ctx, c.logger, component, operation, func() error {
		requestID := uuid.NewString()
		attemptCtx := services.WithRequestID(ctx, requestID)
		req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, endpoint,
			strings.NewReader(form.Encode()))
		if err != nil {
			return services.Wrap(services.ErrConfiguration, component, operation, "build request", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Request-Id", requestID)

		logger := logging.WithContext(attemptCtx, c.logger)

		resp, err := c.http.Do(req)
		if err != nil {
			if mediaapi.IsTimeout(err) {
				logger.Warn("request timed out", logging.String("operation", operation), logging.Error(err))
				return services.Wrap(services.ErrTimeout, component, operation, "requestId "+requestID, err)
			}
			logger.Error("request failed", logging.String("operation", operation), logging.Error(err))
			return services.Wrap(services.ErrTransport, component, operation, "requestId "+requestID, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			logger.Error("read response failed", logging.String("operation", operation), logging.Error(err))
			return services.Wrap(services.ErrTransport, component, operation, "read response", err)
		}
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			statusErr := services.Wrap(services.ErrHTTPStatus, component, operation,
				fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
			logger.Error("request rejected",
				logging.String("operation", operation),
				logging.Int("status", resp.StatusCode),
				logging.Error(statusErr),
			)
			return statusErr
		}
		if apiErr := classifyAPIException(operation, body); apiErr != nil {
			logger.Error("gateway exception", logging.String("operation", operation), logging.Error(apiErr))
			return apiErr
		}
		payload = body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func classifyAPIException(operation string, body []byte) error {
	var exception struct {
		ObjectType string `json:"objectType"`
		Code       string `json:"code"`
		Message    string `json:"message"`
	}
	if err := json.Unmarshal(body, &exception); err != nil {
		return nil // non-object payloads (e.g. served caption text)
	}
	if exception.ObjectType != "KalturaAPIException" {
		return nil
	}
	marker := services.ErrHTTPStatus
	if exception.Code == "INVALID_KS" || exception.Code == "EXPIRED_KS" {
		marker = services.ErrAuthentication
	}
	return services.Wrap(marker, component, operation,
		fmt.Sprintf("%s: %s", exception.Code, exception.Message), nil)
}
