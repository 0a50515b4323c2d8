package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/the-o-space/Cue/internal/sentiment"
	"github.com/the-o-space/Cue/internal/server"
	"github.com/the-o-space/Cue/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the art generation HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "127.0.0.1:8001", "Listen address (host:port)")
	serveCmd.Flags().String("size", "1920x1080", "Image size as WIDTHxHEIGHT")
	serveCmd.Flags().Int("max-concurrent-generations", 2, "Max concurrent image generations")
	serveCmd.Flags().Duration("generation-timeout", 2*time.Minute, "Timeout per image generation")
	serveCmd.Flags().Int64("seed", 0, "Fixed seed for all requests (0 = per-request random)")
	serveCmd.Flags().String("session-db", "", "SQLite database recording each generation")

	mustBind := func(key string, name string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag: %v", err))
		}
	}

	mustBind("serve.addr", "addr")
	mustBind("serve.size", "size")
	mustBind("serve.max_concurrent_generations", "max-concurrent-generations")
	mustBind("serve.generation_timeout", "generation-timeout")
	mustBind("serve.seed", "seed")
	mustBind("serve.session_db", "session-db")
}

func runServe(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	addr := viper.GetString("serve.addr")
	sizeStr := viper.GetString("serve.size")
	maxConc := viper.GetInt("serve.max_concurrent_generations")
	genTimeout := viper.GetDuration("serve.generation_timeout")
	seed := viper.GetInt64("serve.seed")
	sessionDB := viper.GetString("serve.session_db")
	analyzerURL := viper.GetString("analyzer-url")

	width, height, err := parseSize(sizeStr)
	if err != nil {
		return err
	}

	var analyzer sentiment.Analyzer
	if analyzerURL != "" {
		analyzer = sentiment.NewHTTPAnalyzer(analyzerURL)
	}

	var store *session.Store
	if sessionDB != "" {
		store, err = session.Open(sessionDB)
		if err != nil {
			return fmt.Errorf("failed to open session db: %w", err)
		}
		defer store.Close()
	}

	handler, err := server.NewArtHandler(server.Config{
		Width:                    width,
		Height:                   height,
		Seed:                     seed,
		MaxConcurrentGenerations: maxConc,
		GenerationTimeout:        genTimeout,
	}, analyzer, store, logger)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	handler.Routes(mux)

	logger.Info("api server listening",
		"addr", addr,
		"size", fmt.Sprintf("%dx%d", width, height),
		"max_concurrent_generations", maxConc,
		"analyzer_configured", analyzer != nil,
	)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	return srv.ListenAndServe()
}
