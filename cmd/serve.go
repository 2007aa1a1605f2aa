package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/ireal/db"
	"github.com/jsphweid/ireal/metrics"
	"github.com/jsphweid/ireal/model"
	"github.com/jsphweid/ireal/render"
	"github.com/jsphweid/ireal/song"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// SongStore keeps decoded songs for lookup by ID. db.Store is one.
type SongStore interface {
	PutCollection(c *model.Collection) error
	GetSong(id string) (model.Song, error)
}

var (
	decoder       = song.NewDecoder()
	store         SongStore
	sentryMetrics = &metrics.SentryMetrics{}
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the decoder over HTTP",
	Long:  `Serves POST /decode, POST /render and, with DynamoDB configured, GET /songs/{id}.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

// LoadServeDeps sets up what the handlers decode with and where they keep
// songs. A nil s turns song storage off.
func LoadServeDeps(s SongStore, m *metrics.SentryMetrics) {
	decoder = newDecoder()
	store = s
	if m != nil {
		sentryMetrics = m
	}
}

func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/decode", HandleDecode).Methods("POST")
	router.HandleFunc("/render", HandleRender).Methods("POST")
	router.HandleFunc("/songs/{id}", HandleGetSong).Methods("GET")
	return router
}

func serve(ctx context.Context) error {
	m, err := metrics.Init(cfg.Sentry.DSN, cfg.Sentry.Environment)
	if err != nil {
		return err
	}
	defer m.Flush()

	var s SongStore
	if cfg.Dynamo.Endpoint != "" {
		dbStore, err := db.Connect(cfg.Dynamo.Endpoint, cfg.Dynamo.Region, cfg.Dynamo.Table)
		if err != nil {
			return err
		}
		s = dbStore
	}
	LoadServeDeps(s, m)

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(NewRouter())
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving",
		zap.String("addr", cfg.Server.Addr),
		zap.Bool("storage", s != nil),
		zap.Bool("sentry", m.Enabled()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func HandleDecode(w http.ResponseWriter, r *http.Request) {
	c, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	if store != nil {
		if err := store.PutCollection(c); err != nil {
			writeError(w, r, http.StatusInternalServerError, fmt.Errorf("storing songs: %w", err))
			return
		}
	}
	writeJSON(w, http.StatusOK, decodeResponse(c, false))
}

func HandleRender(w http.ResponseWriter, r *http.Request) {
	c, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, decodeResponse(c, true))
}

func HandleGetSong(w http.ResponseWriter, r *http.Request) {
	if store == nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("song storage is not configured"))
		return
	}
	id := mux.Vars(r)["id"]
	s, err := store.GetSong(id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, fmt.Errorf("no song with id %s", id))
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	res := songResult(s)
	res.Chart = render.Render(s.Music)
	writeJSON(w, http.StatusOK, res)
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (*model.Collection, bool) {
	var input model.DecodeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("could not unmarshal request body: %w", err))
		return nil, false
	}
	start := time.Now()
	c, err := decoder.DecodeCollection(r.Context(), input.URL)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return nil, false
	}
	sentryMetrics.RecordDecode(r.Context(), time.Since(start), len(c.Songs), len(c.Failures))
	return c, true
}

func decodeResponse(c *model.Collection, chart bool) model.DecodeResponse {
	res := model.DecodeResponse{Title: c.Title, Songs: make([]model.SongResult, 0, len(c.Songs))}
	for _, s := range c.Songs {
		if chart {
			res.Songs = append(res.Songs, model.SongResult{
				ID:       s.ID,
				Title:    s.Title,
				Composer: s.Composer,
				Style:    s.Style,
				Key:      s.Key,
				BPM:      s.BPM,
				Chart:    render.Render(s.Music),
			})
			continue
		}
		res.Songs = append(res.Songs, songResult(s))
	}
	for _, f := range c.Failures {
		res.Failures = append(res.Failures, model.FailureResult{Index: f.Index, Title: f.Title, Error: f.Err.Error()})
	}
	return res
}

func songResult(s model.Song) model.SongResult {
	res := model.SongResult{
		ID:       s.ID,
		Title:    s.Title,
		Composer: s.Composer,
		Style:    s.Style,
		Key:      s.Key,
		BPM:      s.BPM,
	}
	if s.Music == nil {
		return res
	}
	for _, bar := range s.Music.Bars {
		br := model.BarResult{Beats: make([][]string, len(bar.Beats)), Repeat: bar.Repeat != model.NoRepeat}
		for i, slot := range bar.Beats {
			br.Beats[i] = make([]string, 0, len(slot))
			for _, el := range slot {
				text := el.Chord.String()
				if el.Alternate {
					text = "(" + text + ")"
				}
				br.Beats[i] = append(br.Beats[i], text)
			}
		}
		res.Bars = append(res.Bars, br)
	}
	return res
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("writing response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logger.Warn("request failed",
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err))
	if status >= http.StatusInternalServerError {
		sentryMetrics.RecordError(err, r.URL.Path)
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}
