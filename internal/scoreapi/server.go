// Package scoreapi serves finished runs over HTTP: a JSON submission
// endpoint, a gzip-compressed leaderboard and a websocket feed of every
// accepted record. Client posts runs to such a server.
package scoreapi

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/storage"
)

const (
	// DefaultMode is assumed when a submission carries no mode.
	DefaultMode = "horde"

	maxBodyBytes = 4 << 10
	defaultLimit = 10
	maxLimit     = 100
)

//go:embed score.schema.json
var schemaJSON string

var submissionSchema = jsonschema.MustCompileString("score.schema.json", schemaJSON)

// Submission is the body of POST /api/score.
type Submission struct {
	Mode string `json:"mode,omitempty"`
	core.ScoreRecord
}

// Entry is one leaderboard row, also pushed to websocket subscribers.
type Entry struct {
	ID        int64     `json:"id"`
	Mode      string    `json:"mode"`
	Score     int       `json:"score"`
	Lines     int       `json:"lines"`
	Level     int       `json:"level"`
	Survivors int       `json:"survivors"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Store is the persistence the server needs.
type Store interface {
	SaveRun(mode string, rec core.ScoreRecord) (int64, error)
	TopRuns(mode string, limit int) ([]storage.Run, error)
}

// Server handles the score endpoints.
type Server struct {
	store    Store
	log      *log.Logger
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewServer creates a server backed by store. A nil logger discards output.
func NewServer(store Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		store: store,
		log:   logger,
		hub:   NewHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Hub returns the websocket subscriber set.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the routed endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/score", s.handleSubmit)
	mux.Handle("GET /api/scores", gzhttp.GzipHandler(http.HandlerFunc(s.handleList)))
	mux.HandleFunc("GET /ws/scores", s.handleFeed)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Score API listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("scoreapi: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("Stopping score API")
	s.hub.CloseAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("scoreapi: shutdown: %w", err)
	}
	return nil
}

// DecodeSubmission validates raw JSON against the submission schema and
// decodes it.
func DecodeSubmission(body []byte) (Submission, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return Submission{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := submissionSchema.Validate(raw); err != nil {
		return Submission{}, fmt.Errorf("invalid submission: %w", err)
	}

	var sub Submission
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&sub); err != nil {
		return Submission{}, fmt.Errorf("invalid submission: %w", err)
	}
	if sub.Mode == "" {
		sub.Mode = DefaultMode
	}
	return sub, nil
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read body")
		return
	}
	if len(body) > maxBodyBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "body too large")
		return
	}

	sub, err := DecodeSubmission(body)
	if err != nil {
		s.log.Debug("Rejected submission", "remote", r.RemoteAddr, "err", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.store.SaveRun(sub.Mode, sub.ScoreRecord)
	if err != nil {
		s.log.Error("Cannot store run", "err", err)
		writeError(w, http.StatusInternalServerError, "cannot store run")
		return
	}

	entry := Entry{
		ID:        id,
		Mode:      sub.Mode,
		Score:     sub.Score,
		Lines:     sub.Lines,
		Level:     sub.Level,
		Survivors: sub.Survivors,
		CreatedAt: time.Now().UTC(),
	}
	s.log.Info("Run accepted", "id", id, "mode", sub.Mode, "score", sub.Score)
	s.hub.Broadcast(entry)

	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("mode")
	if mode == "" {
		mode = DefaultMode
	}
	limit := defaultLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLimit)
	}

	runs, err := s.store.TopRuns(mode, limit)
	if err != nil {
		s.log.Error("Cannot list runs", "err", err)
		writeError(w, http.StatusInternalServerError, "cannot list runs")
		return
	}

	entries := make([]Entry, 0, len(runs))
	for _, run := range runs {
		entries = append(entries, entryFromRun(run))
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("Websocket upgrade failed", "err", err)
		return
	}
	s.log.Debug("Feed subscriber joined", "remote", r.RemoteAddr)
	s.hub.Serve(conn)
	s.log.Debug("Feed subscriber left", "remote", r.RemoteAddr)
}

func entryFromRun(run storage.Run) Entry {
	return Entry{
		ID:        run.ID,
		Mode:      run.Mode,
		Score:     run.Record.Score,
		Lines:     run.Record.Lines,
		Level:     run.Record.Level,
		Survivors: run.Record.Survivors,
		CreatedAt: run.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
