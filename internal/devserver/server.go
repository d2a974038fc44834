// Package devserver はローカル開発と結合テスト用の固定データバックエンドです。
// 復習スケジューリングは行わず、受け取った操作を記録するだけです。
package devserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"recall_keep/internal/middleware"
	"recall_keep/internal/model"
	"recall_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Fixtures はサーバーの初期データです。
type Fixtures struct {
	Due   []model.ReviewItem
	Inbox []model.InboxItem
}

type Options struct {
	SecretKey      string
	AllowedOrigins []string
}

type Server struct {
	mu          sync.Mutex
	due         []model.ReviewItem
	inbox       []model.InboxItem
	reviews     []model.SubmitReviewRequest
	bulkUpdates []model.BulkUpdateRequest
	requests    map[string]int
	failures    map[string]int
	opts        Options
	logger      *slog.Logger
}

func New(fixtures Fixtures, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		due:      append([]model.ReviewItem(nil), fixtures.Due...),
		inbox:    append([]model.InboxItem(nil), fixtures.Inbox...),
		requests: make(map[string]int),
		failures: make(map[string]int),
		opts:     opts,
		logger:   logger,
	}
}

// Handler はルーティング済みの http.Handler を返します。
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewStructuredLogger(s.logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.JWTAuthMiddleware(s.opts.SecretKey))
		r.Use(s.recordAndInjectFailures)

		r.Route("/recall", func(r chi.Router) {
			r.Get("/due", s.getDue)
			r.Get("/stats", s.getStats)
			r.Post("/review", s.postReview)
		})
		r.Route("/inbox/items", func(r chi.Router) {
			r.Get("/", s.getInboxItems)
			r.Put("/bulk-update", s.putBulkUpdate)
		})
	})

	return r
}

// SetFailure は method+path への以降のリクエストを status で失敗させます。status=0 で解除。
func (s *Server) SetFailure(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := routeKey(method, path)
	if status == 0 {
		delete(s.failures, key)
		return
	}
	s.failures[key] = status
}

// RequestCount は method+path が受けたリクエスト数です (失敗させたものも含む)。
func (s *Server) RequestCount(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[routeKey(method, path)]
}

// Reviews は受理した復習結果を受信順に返します。
func (s *Server) Reviews() []model.SubmitReviewRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.SubmitReviewRequest(nil), s.reviews...)
}

// BulkUpdates は受理した一括更新を受信順に返します。
func (s *Server) BulkUpdates() []model.BulkUpdateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.BulkUpdateRequest(nil), s.bulkUpdates...)
}

func (s *Server) recordAndInjectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := routeKey(r.Method, r.URL.Path)

		s.mu.Lock()
		s.requests[key]++
		status, fail := s.failures[key]
		s.mu.Unlock()

		if fail {
			logger := middleware.GetLogger(r.Context())
			logger.Info("Injected failure", slog.String("route", key), slog.Int("status", status))
			webutil.RespondWithJSON(w, status, model.APIErrorResponse{Error: fmt.Sprintf("injected failure (%d)", status)}, logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func routeKey(method, path string) string {
	return method + " " + path
}
