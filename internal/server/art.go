// Package server exposes art generation over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"log/slog"
	"math/rand"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/the-o-space/Cue/internal/art"
	"github.com/the-o-space/Cue/internal/noise"
	"github.com/the-o-space/Cue/internal/sentiment"
	"github.com/the-o-space/Cue/internal/session"
)

// Config configures the art HTTP handler.
type Config struct {
	Width                    int
	Height                   int
	Seed                     int64
	MaxConcurrentGenerations int
	GenerationTimeout        time.Duration
}

// ArtHandler serves art generation requests.
type ArtHandler struct {
	generator *art.Generator
	analyzer  sentiment.Analyzer
	store     *session.Store
	logger    *slog.Logger
	sem       chan struct{}
	cfg       Config

	totalRendered atomic.Int64
	totalFailed   atomic.Int64
}

// NewArtHandler creates the handler. analyzer and store may be nil; without
// an analyzer only requests carrying explicit scores are accepted.
func NewArtHandler(cfg Config, analyzer sentiment.Analyzer, store *session.Store, logger *slog.Logger) (*ArtHandler, error) {
	if cfg.Width <= 0 {
		cfg.Width = 1920
	}
	if cfg.Height <= 0 {
		cfg.Height = 1080
	}
	if cfg.MaxConcurrentGenerations <= 0 {
		cfg.MaxConcurrentGenerations = 2
	}
	if cfg.GenerationTimeout <= 0 {
		cfg.GenerationTimeout = 2 * time.Minute
	}

	generator, err := art.NewGenerator(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	generator.Logger = logger

	return &ArtHandler{
		generator: generator,
		analyzer:  analyzer,
		store:     store,
		logger:    logger,
		sem:       make(chan struct{}, cfg.MaxConcurrentGenerations),
		cfg:       cfg,
	}, nil
}

func (h *ArtHandler) log() *slog.Logger {
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

// Routes registers the API endpoints on mux.
func (h *ArtHandler) Routes(mux *http.ServeMux) {
	mux.Handle("/healthz", h.HealthHandler())
	mux.Handle("/generate", h.GenerateHandler())
	mux.Handle("/recent", h.RecentHandler())
}

// HealthHandler reports service liveness.
func (h *ArtHandler) HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCORS(w)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{ //nolint:errcheck
			"status":  "ok",
			"service": "Cue API",
		})
	})
}

type generateRequest struct {
	Text   string             `json:"text,omitempty"`
	Scores map[string]float64 `json:"scores,omitempty"`
	Kind   string             `json:"kind,omitempty"`
	Seed   *int64             `json:"seed,omitempty"`
	// Format selects the response: "json" (default, data URL) or "png".
	Format string `json:"format,omitempty"`
}

type generateResponse struct {
	ImageURL        string             `json:"image_url"`
	SentimentScores map[string]float64 `json:"sentiment_scores"`
	Kind            string             `json:"kind"`
	Seed            int64              `json:"seed"`
	Description     string             `json:"description"`
}

// GenerateHandler renders one image per request. The request carries either
// raw text (scored through the analyzer) or explicit scores.
func (h *ArtHandler) GenerateHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCORS(w)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
			return
		}

		kind := noise.KindTerrain
		if req.Kind != "" {
			parsed, err := noise.ParseKind(req.Kind)
			if err != nil {
				http.Error(w, fmt.Sprintf("unknown kind %q", req.Kind), http.StatusBadRequest)
				return
			}
			kind = parsed
		}

		select {
		case h.sem <- struct{}{}:
			defer func() { <-h.sem }()
		case <-r.Context().Done():
			http.Error(w, "request cancelled", http.StatusRequestTimeout)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.cfg.GenerationTimeout)
		defer cancel()

		scores, err := h.resolveScores(ctx, req)
		if err != nil {
			h.log().Error("failed to resolve scores", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		seed := h.cfg.Seed
		if req.Seed != nil {
			seed = *req.Seed
		} else if seed == 0 {
			seed = time.Now().UnixNano()
		}

		start := time.Now()
		rng := rand.New(rand.NewSource(seed))
		img, err := h.generator.Render(rng, scores, kind)
		if err != nil {
			h.totalFailed.Add(1)
			h.log().Error("failed to render image", "kind", string(kind), "error", err)
			http.Error(w, fmt.Sprintf("failed to render image: %v", err), http.StatusInternalServerError)
			return
		}
		h.totalRendered.Add(1)

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			h.log().Error("failed to encode png", "error", err)
			http.Error(w, "failed to encode image", http.StatusInternalServerError)
			return
		}

		h.record(ctx, req.Text, scores, kind, seed)
		h.log().Info("image generated",
			"kind", string(kind),
			"seed", seed,
			"bytes", buf.Len(),
			"ms", time.Since(start).Milliseconds())

		if req.Format == "png" {
			w.Header().Set("Content-Type", "image/png")
			w.Write(buf.Bytes()) //nolint:errcheck
			return
		}

		resp := generateResponse{
			ImageURL:        "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
			SentimentScores: scores.Map(),
			Kind:            string(kind),
			Seed:            seed,
			Description:     sentiment.Describe(scores),
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.log().Error("failed to encode response", "error", err)
		}
	})
}

// RecentHandler lists recent generation records from the session store.
func (h *ArtHandler) RecentHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCORS(w)
		if h.store == nil {
			http.Error(w, "session store not configured", http.StatusNotFound)
			return
		}

		records, err := h.store.Recent(r.Context(), 20)
		if err != nil {
			h.log().Error("failed to list generations", "error", err)
			http.Error(w, "failed to list generations", http.StatusInternalServerError)
			return
		}

		type entry struct {
			ID        int64              `json:"id"`
			CreatedAt time.Time          `json:"created_at"`
			Text      string             `json:"text"`
			Scores    map[string]float64 `json:"scores"`
			Kind      string             `json:"kind"`
			Seed      int64              `json:"seed"`
		}
		out := make([]entry, 0, len(records))
		for _, g := range records {
			out = append(out, entry{
				ID:        g.ID,
				CreatedAt: g.CreatedAt,
				Text:      g.Text,
				Scores:    g.Scores.Map(),
				Kind:      g.Kind,
				Seed:      g.Seed,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			h.log().Error("failed to encode response", "error", err)
		}
	})
}

func (h *ArtHandler) resolveScores(ctx context.Context, req generateRequest) (sentiment.Scores, error) {
	if req.Scores != nil {
		return sentiment.FromMap(req.Scores), nil
	}
	if req.Text == "" {
		return sentiment.Scores{}, fmt.Errorf("request needs either text or scores")
	}
	if h.analyzer == nil {
		return sentiment.Scores{}, fmt.Errorf("no analyzer configured, pass explicit scores")
	}

	scores, err := h.analyzer.Analyze(ctx, req.Text)
	if err != nil {
		return sentiment.Scores{}, fmt.Errorf("analyzing text: %w", err)
	}
	return scores, nil
}

func (h *ArtHandler) record(ctx context.Context, text string, scores sentiment.Scores, kind noise.Kind, seed int64) {
	if h.store == nil {
		return
	}
	if _, err := h.store.Add(ctx, session.Generation{
		Text:   text,
		Scores: scores,
		Kind:   string(kind),
		Seed:   seed,
	}); err != nil {
		h.log().Warn("failed to record generation", "error", err)
	}
}

func writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
