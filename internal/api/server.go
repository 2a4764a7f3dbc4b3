package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/conversight/conversight/internal/analysis"
	"github.com/conversight/conversight/internal/ingest"
	"github.com/conversight/conversight/internal/nlp"
	"github.com/conversight/conversight/internal/platform/config"
	"github.com/conversight/conversight/internal/platform/observability"
	"github.com/conversight/conversight/internal/platform/worker"
	"github.com/conversight/conversight/internal/report"
)

const (
	requestTimeout    = 60 * time.Second
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
	janitorInterval   = 5 * time.Minute
	dateLayout        = "2006-01-02"
)

// Server serves the upload-and-analyze API.
type Server struct {
	cfg       *config.Config
	logger    *zerolog.Logger
	sessions  *SessionCache
	stopWords map[string]bool
	limiter   *rate.Limiter
}

func New(cfg *config.Config, logger *zerolog.Logger) *Server {
	return &Server{
		cfg:       cfg,
		logger:    logger,
		sessions:  NewSessionCache(cfg.SessionTTL),
		stopWords: nlp.LoadStopWords(cfg.StopwordPath),
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	}
}

// Router wires all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(api chi.Router) {
		api.With(s.rateLimit).Post("/sessions", s.handleCreateSession)

		api.Route("/sessions/{id}", func(sr chi.Router) {
			sr.Get("/", s.handleSessionSummary)
			sr.Get("/stats", s.handleStats)
			sr.Get("/recap", s.handleRecap)
			sr.Get("/sentiment", s.handleSentiment)
			sr.Get("/terms", s.handleTerms)
			sr.Get("/topics", s.handleTopics)
			sr.Get("/emojis", s.handleEmojis)
			sr.Get("/activity/series", s.handleActivitySeries)
			sr.Get("/activity/week", s.handleActivityWeek)
			sr.Get("/activity/month", s.handleActivityMonth)
			sr.Get("/activity/heatmap", s.handleActivityHeatmap)
			sr.Get("/comparative", s.handleComparative)
			sr.Get("/wordcloud.png", s.handleWordCloud)
			sr.Get("/export.csv", s.handleExportCSV)
			sr.Get("/report.xlsx", s.handleReport)
		})
	})

	return r
}

// Start runs the server and the session janitor until the context is
// canceled.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		_ = worker.Loop(ctx, worker.Config{ //nolint:errcheck // exits on ctx cancel only
			Name:     "session-janitor",
			Interval: janitorInterval,
			Logger:   s.logger,
			Tick: func(context.Context) error {
				s.sessions.EvictExpired()
				return nil
			},
		})
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.APIPort),
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)

		defer cancel()

		_ = srv.Shutdown(shutdownCtx) //nolint:errcheck // best-effort shutdown
	}()

	s.logger.Info().Int("port", s.cfg.APIPort).Msg("API server starting")

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "too many uploads, slow down")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close() //nolint:errcheck // read-only temp file

	raw, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	platform := r.FormValue("platform")

	sess, cached, err := s.sessions.GetOrParse(raw, platform)
	if err != nil {
		s.writeParseError(w, platform, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": sess.ID,
		"platform":   sess.Profile.Name,
		"rows":       len(sess.Table),
		"users":      sess.Table.Users(),
		"cached":     cached,
	})
}

// writeParseError maps the ingest error taxonomy onto HTTP statuses. A
// signature mismatch is a user warning, not a server failure.
func (s *Server) writeParseError(w http.ResponseWriter, platform string, err error) {
	switch {
	case errors.Is(err, ingest.ErrSignatureMismatch):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"warning": fmt.Sprintf("this does not look like a %s export, check the selected platform", platform),
		})
	case errors.Is(err, ingest.ErrUnknownPlatform):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Str("platform", platform).Msg("failed to parse upload")
		writeError(w, http.StatusInternalServerError, "failed to process the export")
	}
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, ok := s.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found or expired")
		return nil, false
	}

	return sess, true
}

func (s *Server) handleSessionSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sess.ID,
		"platform":   sess.Profile.Name,
		"rows":       len(sess.Table),
		"users":      sess.Table.Users(),
		"created_at": sess.CreatedAt,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	defer observeAnalysis("stats")()

	stats := analysis.Fetch(r.URL.Query().Get("user"), sess.Table, sess.Profile)

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleRecap(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	defer observeAnalysis("recap")()

	user := r.URL.Query().Get("user")
	stats := analysis.Fetch(user, sess.Table, sess.Profile)

	recap := map[string]any{
		"stats":       stats,
		"personality": analysis.Personality(stats),
		"comments":    analysis.FunComments(stats),
		"streak":      analysis.LongestStreak(sess.Table, user),
	}

	if date, username, message, err := analysis.Throwback(sess.Table.ForUser(user)); err == nil {
		recap["throwback"] = map[string]string{
			"date":     date,
			"username": username,
			"message":  message,
		}
	}

	writeJSON(w, http.StatusOK, recap)
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	defer observeAnalysis("sentiment")()

	rows := sess.Table.ForUser(r.URL.Query().Get("user"))

	labels := make([]nlp.SentimentLabel, len(rows))
	counts := make(map[nlp.SentimentLabel]int)

	for i, row := range rows {
		labels[i] = nlp.Sentiment(row.Message)
		counts[labels[i]]++
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"counts": counts,
		"vibe":   nlp.MoodVibe(labels),
	})
}

func (s *Server) handleTerms(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	defer observeAnalysis("terms")()

	rows := sess.Table.ForUser(r.URL.Query().Get("user"))

	terms, err := nlp.TopTerms(rows.Messages(), sess.Profile, nil, s.cfg.TopTermCount)
	if err != nil && !errors.Is(err, nlp.ErrEmptyCorpus) {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"terms": terms})
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	defer observeAnalysis("topics")()

	count := s.cfg.TopicCount
	if v := r.URL.Query().Get("count"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			count = parsed
		}
	}

	rows := sess.Table.ForUser(r.URL.Query().Get("user"))

	topics, err := nlp.Topics(rows.Messages(), count, sess.Profile, nil)
	if err != nil && !errors.Is(err, nlp.ErrEmptyCorpus) {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"topics": topics})
}

func (s *Server) handleEmojis(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	defer observeAnalysis("emojis")()

	freq := nlp.EmojiFrequency(r.URL.Query().Get("user"), sess.Table)

	payload := map[string]any{"emojis": freq}
	if top, ok := nlp.GuessTopEmoji(freq); ok {
		payload["top"] = top
	}

	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleActivitySeries(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, analysis.ActivityOverTime(r.URL.Query().Get("user"), sess.Table))
}

func (s *Server) handleActivityWeek(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, analysis.WeekActivity(r.URL.Query().Get("user"), sess.Table))
}

func (s *Server) handleActivityMonth(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, analysis.MonthActivity(r.URL.Query().Get("user"), sess.Table))
}

func (s *Server) handleActivityHeatmap(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, analysis.Heatmap(r.URL.Query().Get("user"), sess.Table))
}

func (s *Server) handleComparative(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	users := strings.Split(r.URL.Query().Get("users"), ",")
	if len(users) < 2 {
		writeError(w, http.StatusBadRequest, "pick at least two users to compare")
		return
	}

	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date, want YYYY-MM-DD")
		return
	}

	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date, want YYYY-MM-DD")
		return
	}

	writeJSON(w, http.StatusOK, analysis.Comparative(sess.Table, users, from, to))
}

func (s *Server) handleWordCloud(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	defer observeAnalysis("wordcloud")()

	img, err := nlp.WordCloud(r.URL.Query().Get("user"), sess.Table, sess.Profile, s.stopWords, nlp.CloudOptions{
		FontFile: s.cfg.WordcloudFont,
		Width:    s.cfg.WordcloudWidth,
		Height:   s.cfg.WordcloudHeight,
	})
	if err != nil {
		if errors.Is(err, nlp.ErrEmptyCorpus) {
			writeError(w, http.StatusUnprocessableEntity, "no words left to draw")
			return
		}

		s.logger.Error().Err(err).Msg("word cloud rendering failed")
		writeError(w, http.StatusInternalServerError, "word cloud rendering failed")

		return
	}

	w.Header().Set("Content-Type", "image/png")

	if err := png.Encode(w, img); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode word cloud")
	}
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="chat_analysis.csv"`)

	if err := report.WriteCSV(w, sess.Table.ForUser(r.URL.Query().Get("user"))); err != nil {
		s.logger.Error().Err(err).Msg("failed to write csv export")
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	defer observeAnalysis("report")()

	user := r.URL.Query().Get("user")
	rows := sess.Table.ForUser(user)

	terms, err := nlp.TopTerms(rows.Messages(), sess.Profile, nil, s.cfg.TopTermCount)
	if err != nil && !errors.Is(err, nlp.ErrEmptyCorpus) {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	topics, err := nlp.Topics(rows.Messages(), s.cfg.TopicCount, sess.Profile, nil)
	if err != nil && !errors.Is(err, nlp.ErrEmptyCorpus) {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="chat_analysis_full.xlsx"`)

	wb := report.Workbook{
		Table:  rows,
		Emojis: nlp.EmojiFrequency(user, sess.Table),
		Terms:  terms,
		Topics: topics,
	}

	if err := report.WriteWorkbook(w, wb); err != nil {
		s.logger.Error().Err(err).Msg("failed to write report workbook")
	}
}

func observeAnalysis(kind string) func() {
	start := time.Now()

	return func() {
		observability.AnalysisDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(payload) //nolint:errcheck // response already committed
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
