package mediaapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"mivideo/internal/mediaapi"
	"mivideo/internal/services"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

// fastRetry keeps the production attempt cap but shrinks the backoff so the
// suite does not sleep for real.
func fastRetry() mediaapi.RetryPolicy {
	return mediaapi.RetryPolicy{
		InitialBackoff: time.Millisecond,
		MaxBackoff:     4 * time.Millisecond,
	}
}

func TestRetrySucceedsAfterTimeouts(t *testing.T) {
	calls := 0
	err := fastRetry().Do(context.Background(), nil, "mivideo", "media list", func() error {
		calls++
		if calls < 3 {
			return timeoutErr{}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetryExhaustsAfterThreeAttempts(t *testing.T) {
	calls := 0
	err := fastRetry().Do(context.Background(), nil, "mivideo", "media list", func() error {
		calls++
		return timeoutErr{}
	})
	if calls != 3 {
		t.Fatalf("zero Attempts must default to 3, got %d", calls)
	}
	if !errors.Is(err, services.ErrRetryExhausted) {
		t.Fatalf("expected retry exhaustion, got %v", err)
	}
}

func TestRetryDoesNotRetryHTTPStatusFailures(t *testing.T) {
	calls := 0
	statusErr := services.Wrap(services.ErrHTTPStatus, "mivideo", "media list", "503", nil)
	err := mediaapi.RetryPolicy{}.Do(context.Background(), nil, "mivideo", "media list", func() error {
		calls++
		return statusErr
	})
	if calls != 1 {
		t.Fatalf("http errors must not be retried, got %d calls", calls)
	}
	if !errors.Is(err, services.ErrHTTPStatus) {
		t.Fatalf("expected status error to propagate, got %v", err)
	}
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := mediaapi.RetryPolicy{}.Do(ctx, nil, "mivideo", "media list", func() error {
		calls++
		cancel()
		return timeoutErr{}
	})
	if calls != 1 {
		t.Fatalf("expected cancellation to stop retries, got %d calls", calls)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestIsTimeout(t *testing.T) {
	if !mediaapi.IsTimeout(timeoutErr{}) {
		t.Error("net timeout should classify as timeout")
	}
	if !mediaapi.IsTimeout(context.DeadlineExceeded) {
		t.Error("deadline exceeded should classify as timeout")
	}
	if !mediaapi.IsTimeout(services.Wrap(services.ErrTimeout, "mivideo", "token", "", nil)) {
		t.Error("wrapped timeout marker should classify as timeout")
	}
	if mediaapi.IsTimeout(errors.New("connection refused")) {
		t.Error("plain transport error is not a timeout")
	}
	if mediaapi.IsTimeout(nil) {
		t.Error("nil is not a timeout")
	}
}

func TestPageNormalize(t *testing.T) {
	page := mediaapi.Page{}.Normalize()
	if page.Index != 1 || page.Size != 500 {
		t.Fatalf("unexpected defaults: %+v", page)
	}
	page = mediaapi.Page{Index: 3, Size: 25}.Normalize()
	if page.Index != 3 || page.Size != 25 {
		t.Fatalf("explicit paging must be preserved: %+v", page)
	}
}

func TestFormatParsing(t *testing.T) {
	var asset mediaapi.CaptionAsset
	for _, payload := range []string{
		`{"id":"cap1","languageCode":"en-us","format":1}`,
		`{"id":"cap1","languageCode":"en-us","format":"1"}`,
		`{"id":"cap1","languageCode":"en-us","format":"SRT"}`,
	} {
		if err := json.Unmarshal([]byte(payload), &asset); err != nil {
			t.Fatalf("unmarshal %s: %v", payload, err)
		}
		if asset.Format != mediaapi.FormatSRT {
			t.Fatalf("expected SRT from %s, got %v", payload, asset.Format)
		}
	}
	if asset.Format.String() != "SRT" {
		t.Fatalf("unexpected format name %q", asset.Format.String())
	}
	if _, err := mediaapi.ParseFormat("ASS"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
