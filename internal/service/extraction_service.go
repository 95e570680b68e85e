package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"roleplay_coach_backend/internal/config"
	"roleplay_coach_backend/internal/util"
	"roleplay_coach_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	maxHTMLForAI     = 15000
	maxFallbackChars = 5000

	StatusCompleted          = "completed"
	StatusCompletedWithoutAI = "completed_without_ai"
)

type ExtractionService struct {
	AI     *AIService
	cfg    config.ExtractionConfig
	client *http.Client
	// sleep is swappable so tests do not wait out the retry delays.
	sleep func(time.Duration)
}

func NewExtractionService(ai *AIService, cfg config.ExtractionConfig) *ExtractionService {
	return &ExtractionService{
		AI:     ai,
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		sleep:  time.Sleep,
	}
}

type ExtractionResult struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	AISummary   string   `json:"aiSummary"`
	KeyPoints   []string `json:"keyPoints"`
	SalesInfo   string   `json:"salesInfo"`
	Objections  []string `json:"objections"`
	ExtractedAt string   `json:"extractedAt"`
	Status      string   `json:"status"`
}

// Extract fetches a page with bounded retries and summarizes it with the
// model, degrading to a plain regex extraction when the AI call fails.
func (s *ExtractionService) Extract(rawURL string) (*ExtractionResult, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, util.ErrInvalidURL
	}

	html, err := s.fetchWithRetry(rawURL)
	if err != nil {
		return nil, err
	}

	result := &ExtractionResult{
		URL:         rawURL,
		ExtractedAt: time.Now().Format(time.RFC3339),
	}

	truncated := html
	if len(truncated) > maxHTMLForAI {
		truncated = truncated[:maxHTMLForAI]
	}

	summary, err := s.summarizeWithRetry(truncated)
	if err != nil {
		logger.Log.Warn("extraction degraded to regex fallback", zap.String("url", rawURL), zap.Error(err))
		result.Title = extractTitle(html)
		result.Content = stripHTML(html, maxFallbackChars)
		result.KeyPoints = []string{}
		result.Objections = []string{}
		result.Status = StatusCompletedWithoutAI
		return result, nil
	}

	result.Title = summary.Title
	result.Content = summary.Summary
	result.AISummary = summary.Summary
	result.KeyPoints = summary.KeyPoints
	result.SalesInfo = summary.SalesInfo
	result.Objections = summary.Objections
	result.Status = StatusCompleted
	return result, nil
}

// fetchWithRetry performs up to MaxAttempts sequential requests with a
// fixed delay, retrying on transport errors and non-2xx responses alike.
func (s *ExtractionService) fetchWithRetry(rawURL string) (string, error) {
	delay := time.Duration(s.cfg.RetryDelayMS) * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		body, err := s.fetchOnce(rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		logger.Log.Warn("page fetch failed",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < s.cfg.MaxAttempts {
			s.sleep(delay)
		}
	}

	return "", fmt.Errorf("%w: %v", util.ErrUnreachableURL, lastErr)
}

func (s *ExtractionService) fetchOnce(rawURL string) (string, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return "", err
	}

	// A realistic browser header set; many sites reject bare Go clients.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9,en;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

type pageSummary struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	KeyPoints  []string `json:"keyPoints"`
	SalesInfo  string   `json:"salesInfo"`
	Objections []string `json:"objections"`
}

// summarizeWithRetry applies the same bounded retry policy as the page
// fetch; only when every attempt fails does the caller degrade to regex.
func (s *ExtractionService) summarizeWithRetry(html string) (*pageSummary, error) {
	delay := time.Duration(s.cfg.RetryDelayMS) * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		summary, err := s.summarize(html)
		if err == nil {
			return summary, nil
		}
		lastErr = err
		logger.Log.Warn("page summarization failed",
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < s.cfg.MaxAttempts {
			s.sleep(delay)
		}
	}
	return nil, lastErr
}

func (s *ExtractionService) summarize(html string) (*pageSummary, error) {
	prompt := "Analiza el siguiente HTML de una página web y devuelve SOLO un objeto JSON con estos campos: " +
		`{"title": "...", "summary": "...", "keyPoints": ["..."], "salesInfo": "...", "objections": ["..."]}. ` +
		"keyPoints son los puntos clave del contenido; salesInfo resume la información útil para un vendedor; " +
		"objections son posibles objeciones de un cliente sobre este contenido."

	raw, err := s.AI.Chat(prompt, []AIChatMessage{{Role: "user", Content: html}}, ChatOptions{
		Temperature: 0.3,
		MaxTokens:   800,
	})
	if err != nil {
		return nil, err
	}

	var summary pageSummary
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &summary); err != nil {
		return nil, err
	}
	if summary.KeyPoints == nil {
		summary.KeyPoints = []string{}
	}
	if summary.Objections == nil {
		summary.Objections = []string{}
	}
	return &summary, nil
}

var (
	scriptRe     = regexp.MustCompile(`(?is)<script.*?</script>`)
	styleRe      = regexp.MustCompile(`(?is)<style.*?</style>`)
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	titleRe      = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
)

// stripHTML is the degraded extraction path: remove script/style blocks,
// drop remaining tags, collapse whitespace, truncate.
func stripHTML(html string, limit int) string {
	text := scriptRe.ReplaceAllString(html, " ")
	text = styleRe.ReplaceAllString(text, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if len(text) > limit {
		text = text[:limit]
	}
	return text
}

func extractTitle(html string) string {
	m := titleRe.FindStringSubmatch(html)
	if len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}
