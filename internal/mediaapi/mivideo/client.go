package mivideo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"mivideo/internal/logging"
	"mivideo/internal/mediaapi"
	"mivideo/internal/services"
)

const (
	defaultVersion     = "v1"
	defaultHTTPTimeout = 10 * time.Second
	component          = "mivideo"
)

// Config describes the MiVideo client configuration.
type Config struct {
	// Host of the API gateway. A scheme may be included for non-TLS test
	// servers; https is assumed otherwise.
	Host       string
	AuthID     string
	AuthSecret string
	Version    string
	HTTPClient *http.Client
	Logger     *slog.Logger
	// Retry overrides the default backoff schedule. The zero value keeps it.
	Retry mediaapi.RetryPolicy
}

// Client talks to the course/user-scoped MiVideo gateway. Access control is
// enforced server-side from the course and user identifiers carried on every
// call. The bearer token obtained at construction lives for the client's
// lifetime; there is no automatic refresh on expiry.
type Client struct {
	origin  string
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	retry   mediaapi.RetryPolicy

	authorization string
}

var _ mediaapi.API = (*Client)(nil)

// New exchanges the credentials for a bearer token and returns a ready
// client. Token acquisition failure is fatal to construction.
func New(ctx context.Context, cfg Config) (*Client, error) {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new", "host is required", nil)
	}
	if strings.TrimSpace(cfg.AuthID) == "" || strings.TrimSpace(cfg.AuthSecret) == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new", "auth id and secret are required", nil)
	}
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		version = defaultVersion
	}

	origin := host
	if !strings.Contains(origin, "://") {
		origin = "https://" + origin
	}
	origin = strings.TrimRight(origin, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	client := &Client{
		origin:  origin,
		baseURL: fmt.Sprintf("%s/um/aa/mivideo/%s", origin, version),
		http:    httpClient,
		logger:  logging.NewComponentLogger(cfg.Logger, component),
		retry:   cfg.Retry,
	}

	authorization, err := client.acquireToken(ctx, cfg.AuthID, cfg.AuthSecret)
	if err != nil {
		return nil, err
	}
	client.authorization = authorization
	return client, nil
}

// GetMediaList returns the media entries of a course page.
func (c *Client) GetMediaList(ctx context.Context, courseID, userID string, page mediaapi.Page) ([]mediaapi.MediaEntry, error) {
	page = page.Normalize()
	endpoint := fmt.Sprintf("%s/course/%s/media", c.baseURL, url.PathEscape(courseID))
	params := url.Values{
		"pageIndex": []string{strconv.Itoa(page.Index)},
		"pageSize":  []string{strconv.Itoa(page.Size)},
	}

	body, err := c.do(ctx, "media list", http.MethodGet, endpoint, params, c.authHeaders(userID), nil)
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

// GetCaptionList returns the caption assets of a media entry.
func (c *Client) GetCaptionList(ctx context.Context, courseID, userID, mediaID string) ([]mediaapi.CaptionAsset, error) {
	endpoint := fmt.Sprintf("%s/course/%s/media/%s/captions",
		c.baseURL, url.PathEscape(courseID), url.PathEscape(mediaID))

	body, err := c.do(ctx, "caption list", http.MethodGet, endpoint, nil, c.authHeaders(userID), nil)
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

// GetCaptionText returns the raw subtitle text of a caption asset.
func (c *Client) GetCaptionText(ctx context.Context, courseID, userID, captionID string) (string, error) {
	endpoint := fmt.Sprintf("%s/course/%s/captions/%s/text",
		c.baseURL, url.PathEscape(courseID), url.PathEscape(captionID))

	body, err := c.do(ctx, "caption text", http.MethodGet, endpoint, nil, c.authHeaders(userID), nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// statusClassifier converts a non-2xx response into the error kind callers
// should observe. The default classifier tags ErrHTTPStatus.
type statusClassifier func(status int, body []byte) error

func (c *Client) defaultClassifier(operation string) statusClassifier {
	return func(status int, body []byte) error {
		return services.Wrap(services.ErrHTTPStatus, component, operation,
			fmt.Sprintf("unexpected status %d: %s", status, strings.TrimSpace(string(body))), nil)
	}
}

// authHeaders builds the per-call header set: the bearer Authorization from
// construction plus the LMS user the gateway scopes access to.
func (c *Client) authHeaders(userID string) http.Header {
	headers := make(http.Header, 2)
	if c.authorization != "" {
		headers.Set("Authorization", c.authorization)
	}
	if userID != "" {
		headers.Set("LMS-User-Id", userID)
	}
	return headers
}

// do issues one API request through the retry decorator. Each attempt carries
// a fresh correlation identifier so server-side traces line up with logs.
func (c *Client) do(ctx context.Context, operation, method, endpoint string, params url.Values, headers http.Header, classify statusClassifier) ([]byte, error) {
	if classify == nil {
		classify = c.defaultClassifier(operation)
	}

	var payload []byte
	err := c.retry.Do(ctx, c.logger, component, operation, func() error {
		requestID := uuid.NewString()
		attemptCtx := services.WithRequestID(ctx, requestID)
		requestURL := endpoint
		if len(params) > 0 {
			requestURL += "?" + params.Encode()
		}
		req, err := http.NewRequestWithContext(attemptCtx, method, requestURL, nil)
		if err != nil {
			return services.Wrap(services.ErrConfiguration, component, operation, "build request", err)
		}
		for key, values := range headers {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}
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
			statusErr := classify(resp.StatusCode, body)
			logger.Error("request rejected",
				logging.String("operation", operation),
				logging.Int("status", resp.StatusCode),
				logging.Error(statusErr),
			)
			return statusErr
		}
		payload = body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}
