package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"roleplay_coach_backend/internal/config"
	"roleplay_coach_backend/internal/util"
	"strings"
	"testing"
	"time"
)

func testExtractionService(t *testing.T, aiURL string) *ExtractionService {
	t.Helper()
	svc := NewExtractionService(testAIService(aiURL), config.ExtractionConfig{
		MaxAttempts:  3,
		RetryDelayMS: 1000,
	})
	svc.sleep = func(time.Duration) {}
	return svc
}

func TestExtractRejectsMalformedURLs(t *testing.T) {
	svc := testExtractionService(t, "http://127.0.0.1:0")
	for _, raw := range []string{"not a url", "ftp://example.com/doc", "example.com", "https://"} {
		if _, err := svc.Extract(raw); !errors.Is(err, util.ErrInvalidURL) {
			t.Fatalf("url %q: expected ErrInvalidURL, got %v", raw, err)
		}
	}
}

func TestExtractRetriesExactlyMaxAttempts(t *testing.T) {
	var attempts int
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "no", http.StatusInternalServerError)
	}))
	defer page.Close()

	var delays []time.Duration
	svc := testExtractionService(t, "http://127.0.0.1:0")
	svc.sleep = func(d time.Duration) { delays = append(delays, d) }

	_, err := svc.Extract(page.URL)
	if !errors.Is(err, util.ErrUnreachableURL) {
		t.Fatalf("expected ErrUnreachableURL, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected exactly 3 fetch attempts, got %d", attempts)
	}
	// sleeps happen between attempts, never after the last one
	if len(delays) != 2 {
		t.Fatalf("expected 2 retry delays, got %d", len(delays))
	}
	for _, d := range delays {
		if d != time.Second {
			t.Fatalf("expected 1s retry delay, got %v", d)
		}
	}
}

func TestExtractSendsBrowserHeaders(t *testing.T) {
	var userAgent string
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Write([]byte("<html><title>Acme</title><body>hola</body></html>"))
	}))
	defer page.Close()

	ai := fakeCompletionServer(t, `{"title":"Acme","summary":"resumen","keyPoints":["uno"],"salesInfo":"info","objections":["cara"]}`)
	svc := testExtractionService(t, ai.URL)

	result, err := svc.Extract(page.URL)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(userAgent, "Mozilla/5.0") {
		t.Fatalf("expected a browser user agent, got %q", userAgent)
	}
	if result.Status != StatusCompleted {
		t.Fatalf("expected status %q, got %q", StatusCompleted, result.Status)
	}
	if result.Title != "Acme" || result.AISummary != "resumen" {
		t.Fatalf("unexpected summary fields: %+v", result)
	}
	if len(result.KeyPoints) != 1 || len(result.Objections) != 1 {
		t.Fatalf("unexpected lists: %+v", result)
	}
}

func TestExtractDegradesToRegexFallback(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title> Producto X </title>
			<script>var a = 1;</script><style>body{}</style></head>
			<body><p>El producto  X  reduce costes.</p></body></html>`))
	}))
	defer page.Close()

	var aiAttempts int
	ai := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		aiAttempts++
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer ai.Close()

	svc := testExtractionService(t, ai.URL)
	result, err := svc.Extract(page.URL)
	if err != nil {
		t.Fatalf("Extract should degrade, not fail: %v", err)
	}

	if result.Status != StatusCompletedWithoutAI {
		t.Fatalf("expected status %q, got %q", StatusCompletedWithoutAI, result.Status)
	}
	// The summarization call shares the bounded retry policy.
	if aiAttempts != 3 {
		t.Fatalf("expected 3 summarization attempts before degrading, got %d", aiAttempts)
	}
	if result.Title != "Producto X" {
		t.Fatalf("expected regex title, got %q", result.Title)
	}
	if strings.Contains(result.Content, "var a") || strings.Contains(result.Content, "<p>") {
		t.Fatalf("script or markup leaked into content: %q", result.Content)
	}
	if !strings.Contains(result.Content, "El producto X reduce costes.") {
		t.Fatalf("whitespace should collapse to single spaces: %q", result.Content)
	}
	if result.AISummary != "" {
		t.Fatalf("degraded result must not carry an AI summary: %q", result.AISummary)
	}
	if result.KeyPoints == nil || result.Objections == nil {
		t.Fatal("degraded result lists must be empty, not nil")
	}
}

func TestStripHTMLTruncates(t *testing.T) {
	long := "<body>" + strings.Repeat("palabra ", 2000) + "</body>"
	if got := stripHTML(long, maxFallbackChars); len(got) != maxFallbackChars {
		t.Fatalf("expected truncation to %d chars, got %d", maxFallbackChars, len(got))
	}
}
