package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrEmptyText is returned when an analysis request carries no text.
var ErrEmptyText = errors.New("sentiment: empty text")

// Analyzer scores a piece of text along the four sentiment dimensions.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Scores, error)
}

// HTTPAnalyzer calls a remote scoring service that accepts a JSON body
// {"text": ...} and responds with a dimension map.
type HTTPAnalyzer struct {
	URL    string
	Client *http.Client
}

// NewHTTPAnalyzer creates an analyzer for the service at url.
func NewHTTPAnalyzer(url string) *HTTPAnalyzer {
	return &HTTPAnalyzer{
		URL:    url,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Analyze posts text to the scoring service and parses the returned
// dimension map. Missing dimensions come back neutral.
func (a *HTTPAnalyzer) Analyze(ctx context.Context, text string) (Scores, error) {
	if strings.TrimSpace(text) == "" {
		return Scores{}, ErrEmptyText
	}

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return Scores{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.URL, bytes.NewReader(body))
	if err != nil {
		return Scores{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return Scores{}, fmt.Errorf("calling analyzer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Scores{}, fmt.Errorf("analyzer returned status %d", resp.StatusCode)
	}

	var dims map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&dims); err != nil {
		return Scores{}, fmt.Errorf("decoding response: %w", err)
	}

	return FromMap(dims), nil
}
