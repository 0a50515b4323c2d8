package cmd

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/png"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	xdraw "golang.org/x/image/draw"

	"github.com/the-o-space/Cue/internal/art"
	"github.com/the-o-space/Cue/internal/noise"
	"github.com/the-o-space/Cue/internal/sentiment"
	"github.com/the-o-space/Cue/internal/session"
	"github.com/the-o-space/Cue/internal/texture"
	"github.com/the-o-space/Cue/internal/worker"
)

const thumbnailWidth = 320

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate art from text or explicit sentiment scores",
	Long:  `Generate sentiment-driven art images into a timestamped session directory.`,
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// Input flags
	generateCmd.Flags().StringP("text", "t", "", "Text to analyze and render")
	generateCmd.Flags().String("scores", "", "Explicit scores: positiveness,energy,complexity,conflictness (e.g., \"0.8,0.3,0.5,0.2\")")
	generateCmd.Flags().String("texts-file", "", "File with one text per line for batch generation")

	// Render flags
	generateCmd.Flags().String("size", "1920x1080", "Image size as WIDTHxHEIGHT")
	generateCmd.Flags().StringP("kind", "k", "terrain", "Noise algorithm (terrain, value, worley, gradient)")
	generateCmd.Flags().IntP("variations", "n", 0, "Generate N seeded variations instead of a single image")
	generateCmd.Flags().Bool("all-noise", false, "Generate one image per noise algorithm with a shared palette")
	generateCmd.Flags().Int64("seed", 1337, "Deterministic seed for noise and palette")
	generateCmd.Flags().Bool("paper", false, "Overlay a paper grain texture")
	generateCmd.Flags().Bool("thumbnail", false, "Also write a downscaled thumbnail per image")

	// Batch flags
	generateCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers for batch mode (default: number of CPUs)")
	generateCmd.Flags().Bool("progress", true, "Show progress bar during batch generation")

	// Output flags
	generateCmd.Flags().StringP("output", "o", "", "Output file name (without extension)")
	generateCmd.Flags().String("session-db", "", "SQLite database recording each generation")
	generateCmd.Flags().Bool("show-scores", false, "Print the sentiment scores and style description")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"generate.text", "text"},
		{"generate.scores", "scores"},
		{"generate.texts_file", "texts-file"},
		{"generate.size", "size"},
		{"generate.kind", "kind"},
		{"generate.variations", "variations"},
		{"generate.all_noise", "all-noise"},
		{"generate.seed", "seed"},
		{"generate.paper", "paper"},
		{"generate.thumbnail", "thumbnail"},
		{"generate.workers", "workers"},
		{"generate.progress", "progress"},
		{"generate.output", "output"},
		{"generate.session_db", "session-db"},
		{"generate.show_scores", "show-scores"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, generateCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	text := viper.GetString("generate.text")
	scoresStr := viper.GetString("generate.scores")
	textsFile := viper.GetString("generate.texts_file")
	sizeStr := viper.GetString("generate.size")
	kindStr := viper.GetString("generate.kind")
	variations := viper.GetInt("generate.variations")
	allNoise := viper.GetBool("generate.all_noise")
	seed := viper.GetInt64("generate.seed")
	paper := viper.GetBool("generate.paper")
	thumbnail := viper.GetBool("generate.thumbnail")
	outputDir := viper.GetString("output-dir")
	sessionDB := viper.GetString("generate.session_db")

	width, height, err := parseSize(sizeStr)
	if err != nil {
		return err
	}

	kind, err := noise.ParseKind(kindStr)
	if err != nil {
		return fmt.Errorf("invalid kind %q: %w", kindStr, err)
	}

	if textsFile == "" && text == "" && scoresStr == "" {
		return fmt.Errorf("either --text, --scores or --texts-file is required")
	}

	generator, err := art.NewGenerator(width, height)
	if err != nil {
		return fmt.Errorf("failed to init generator: %w", err)
	}
	generator.Logger = logger

	var store *session.Store
	if sessionDB != "" {
		store, err = session.Open(sessionDB)
		if err != nil {
			return fmt.Errorf("failed to open session db: %w", err)
		}
		defer store.Close()
	}

	sessionDir, err := createSessionDir(outputDir)
	if err != nil {
		return err
	}
	logger.Info("Output session", "dir", sessionDir)

	g := &generation{
		generator: generator,
		store:     store,
		dir:       sessionDir,
		seed:      seed,
		kind:      kind,
		paper:     paper,
		thumbnail: thumbnail,
	}

	if textsFile != "" {
		return runBatchGenerate(g, textsFile)
	}

	scores, err := resolveScores(context.Background(), text, scoresStr)
	if err != nil {
		return err
	}

	if viper.GetBool("generate.show_scores") {
		printScores(scores)
	}

	switch {
	case allNoise:
		return g.renderAllNoise(text, scores)
	case variations > 0:
		return g.renderVariations(text, scores, variations)
	default:
		return g.renderSingle(text, scores)
	}
}

// generation bundles everything one generate invocation needs.
type generation struct {
	generator *art.Generator
	store     *session.Store
	dir       string
	seed      int64
	kind      noise.Kind
	paper     bool
	thumbnail bool
}

func (g *generation) renderSingle(text string, scores sentiment.Scores) error {
	rng := rand.New(rand.NewSource(g.seed))
	img, err := g.generator.Render(rng, scores, g.kind)
	if err != nil {
		return fmt.Errorf("failed to render image: %w", err)
	}

	name := viper.GetString("generate.output")
	if name == "" {
		name = outputName("art", text)
	}

	path, err := g.save(img, name)
	if err != nil {
		return err
	}
	g.record(text, scores, g.kind, g.seed, path)

	logger.Info("Image generated", "path", path, "kind", string(g.kind), "seed", g.seed)
	return nil
}

func (g *generation) renderAllNoise(text string, scores sentiment.Scores) error {
	rng := rand.New(rand.NewSource(g.seed))
	images, err := g.generator.RenderAll(rng, scores)
	if err != nil {
		return fmt.Errorf("failed to render noise variations: %w", err)
	}

	subdir := outputName("noise_variations", text)
	if err := os.MkdirAll(filepath.Join(g.dir, subdir), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	for _, kind := range art.PrimaryKinds {
		img, ok := images[kind]
		if !ok {
			continue
		}
		path, err := g.save(img, filepath.Join(subdir, string(kind)))
		if err != nil {
			return err
		}
		g.record(text, scores, kind, g.seed, path)
		logger.Info("Image generated", "path", path, "kind", string(kind))
	}
	return nil
}

func (g *generation) renderVariations(text string, scores sentiment.Scores, count int) error {
	images, err := g.generator.RenderVariations(scores, count)
	if err != nil {
		return fmt.Errorf("failed to render variations: %w", err)
	}

	subdir := outputName("variations", text)
	if err := os.MkdirAll(filepath.Join(g.dir, subdir), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	for i, img := range images {
		path, err := g.save(img, filepath.Join(subdir, fmt.Sprintf("variation_%02d", i+1)))
		if err != nil {
			return err
		}
		g.record(text, scores, noise.KindTerrain, int64(i)*1000+42, path)
		logger.Info("Image generated", "path", path, "variation", i+1)
	}
	return nil
}

// save writes img (plus optional paper overlay and thumbnail) under the
// session directory and returns the image path.
func (g *generation) save(img *image.RGBA, name string) (string, error) {
	if g.paper {
		if err := texture.ApplyPaper(img, texture.DefaultPaperParams(g.seed)); err != nil {
			return "", fmt.Errorf("failed to apply paper texture: %w", err)
		}
	}

	path := filepath.Join(g.dir, name+".png")
	if err := writePNG(path, img); err != nil {
		return "", err
	}

	if g.thumbnail {
		thumbPath := filepath.Join(g.dir, name+"_thumb.png")
		if err := writePNG(thumbPath, makeThumbnail(img, thumbnailWidth)); err != nil {
			return "", err
		}
	}
	return path, nil
}

func (g *generation) record(text string, scores sentiment.Scores, kind noise.Kind, seed int64, path string) {
	if g.store == nil {
		return
	}
	if _, err := g.store.Add(context.Background(), session.Generation{
		Text:   text,
		Scores: scores,
		Kind:   string(kind),
		Seed:   seed,
		Path:   path,
	}); err != nil {
		logger.Warn("Failed to record generation", "error", err)
	}
}

func runBatchGenerate(g *generation, textsFile string) error {
	texts, err := readTexts(textsFile)
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		return fmt.Errorf("no texts found in %s", textsFile)
	}

	workers := viper.GetInt("generate.workers")
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	showProgress := viper.GetBool("generate.progress")

	logger.Info("Starting batch generation",
		"texts", len(texts),
		"workers", workers,
		"dir", g.dir,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received interrupt signal, cancelling...")
		cancel()
	}()

	tasks := make([]worker.Task, 0, len(texts))
	for i, text := range texts {
		tasks = append(tasks, worker.Task{Index: i, Text: text})
	}

	progress := worker.NewProgress(len(tasks), showProgress)
	pool := worker.New(worker.Config{
		Workers:    workers,
		Renderer:   g,
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, tasks)
	progress.Done()

	var failedCount int
	for _, r := range results {
		if r.Err != nil {
			failedCount++
			logger.Error("Batch item failed", "index", r.Task.Index, "error", r.Err)
		}
	}

	logger.Info(progress.Summary())

	if failedCount > 0 {
		return fmt.Errorf("%d images failed to generate", failedCount)
	}
	return nil
}

// Render implements worker.Renderer for batch mode. Each task gets its own
// random source derived from the base seed and task index.
func (g *generation) Render(ctx context.Context, index int, text string) (string, error) {
	scores, err := resolveScores(ctx, text, "")
	if err != nil {
		return "", err
	}

	seed := g.seed + int64(index)*1000
	rng := rand.New(rand.NewSource(seed))
	img, err := g.generator.Render(rng, scores, g.kind)
	if err != nil {
		return "", err
	}

	name := outputName(fmt.Sprintf("%03d", index+1), text)
	path, err := g.save(img, name)
	if err != nil {
		return "", err
	}
	g.record(text, scores, g.kind, seed, path)
	return path, nil
}

// resolveScores turns explicit score strings or analyzed text into a score
// vector. Text without a configured analyzer falls back to neutral scores.
func resolveScores(ctx context.Context, text, scoresStr string) (sentiment.Scores, error) {
	if scoresStr != "" {
		return parseScores(scoresStr)
	}

	analyzerURL := viper.GetString("analyzer-url")
	if analyzerURL == "" {
		logger.Warn("No analyzer configured, using neutral scores")
		return sentiment.Neutral(), nil
	}

	analyzer := sentiment.NewHTTPAnalyzer(analyzerURL)
	scores, err := analyzer.Analyze(ctx, text)
	if err != nil {
		return sentiment.Scores{}, fmt.Errorf("failed to analyze text: %w", err)
	}
	return scores, nil
}

func printScores(scores sentiment.Scores) {
	fmt.Printf("Sentiment scores:\n")
	fmt.Printf("  positiveness: %.2f\n", scores.Positiveness)
	fmt.Printf("  energy:       %.2f\n", scores.Energy)
	fmt.Printf("  complexity:   %.2f\n", scores.Complexity)
	fmt.Printf("  conflictness: %.2f\n", scores.Conflictness)
	fmt.Printf("%s\n", sentiment.Describe(scores))
}

// parseSize parses a WIDTHxHEIGHT string like "1920x1080".
func parseSize(s string) (int, int, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size format %q: use WIDTHxHEIGHT (e.g., 1920x1080)", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("size %q must be positive", s)
	}
	return width, height, nil
}

// parseScores parses four comma-separated dimension values in the order
// positiveness, energy, complexity, conflictness.
func parseScores(s string) (sentiment.Scores, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return sentiment.Scores{}, fmt.Errorf("scores %q must have exactly 4 values", s)
	}

	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return sentiment.Scores{}, fmt.Errorf("invalid score %q: %w", part, err)
		}
		vals[i] = v
	}

	return sentiment.Scores{
		Positiveness: vals[0],
		Energy:       vals[1],
		Complexity:   vals[2],
		Conflictness: vals[3],
	}.Clamped(), nil
}

// safeFilename reduces text to a short filesystem-safe fragment.
func safeFilename(text string) string {
	if len(text) > 30 {
		text = text[:30]
	}
	var b strings.Builder
	for _, c := range text {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == ' ', c == '-', c == '_':
			b.WriteRune(c)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
}

// outputName joins a prefix with the safe form of text.
func outputName(prefix, text string) string {
	safe := safeFilename(text)
	if safe == "" {
		return prefix
	}
	return prefix + "_" + safe
}

func createSessionDir(outputDir string) (string, error) {
	dir := filepath.Join(outputDir, "session_"+time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create session dir: %w", err)
	}
	return dir, nil
}

func readTexts(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texts file: %w", err)
	}
	defer file.Close()

	var texts []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read texts file: %w", err)
	}
	return texts, nil
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// makeThumbnail downscales img to the given width, preserving aspect ratio.
func makeThumbnail(img *image.RGBA, width int) *image.RGBA {
	bounds := img.Bounds()
	if bounds.Dx() <= width {
		return img
	}
	height := bounds.Dy() * width / bounds.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}
