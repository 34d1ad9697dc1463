// Command lognormd is an HTTP server: POST a rule set and a log line,
// get the normalized JSON back.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	lognorm "github.com/ritamzico/lognorm"
)

var allowedOrigins = []string{
	"http://localhost:5173",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func main() {
	port := pflag.Int("port", 8080, "port to listen on")
	debug := pflag.Bool("debug", false, "enable debug tracing on request-scoped contexts")
	pflag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	mux := http.NewServeMux()

	mux.HandleFunc("/normalize", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var body struct {
			Rules string `json:"rules"`
			Line  string `json:"line"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if body.Rules == "" {
			writeError(w, http.StatusBadRequest, "missing field: rules")
			return
		}
		if body.Line == "" {
			writeError(w, http.StatusBadRequest, "missing field: line")
			return
		}

		ctx := lognorm.New(lognorm.WithDebug(*debug))
		if err := ctx.Load(bytes.NewReader([]byte(body.Rules))); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid rules: %v", err))
			return
		}
		if err := ctx.Optimize(); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		obj, matched := ctx.Normalize(body.Line)
		writeJSON(w, http.StatusOK, struct {
			Matched bool           `json:"matched"`
			Fields  map[string]any `json:"fields"`
		}{Matched: matched, Fields: obj.ToMap()})
	})

	addr := fmt.Sprintf(":%d", *port)
	logger.Info().Str("addr", addr).Msg("lognormd listening")
	if err := http.ListenAndServe(addr, corsMiddleware(loggingMiddleware(logger, mux))); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
