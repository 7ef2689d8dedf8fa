// Package http exposes the dashboard as a JSON API. Requests are
// authenticated by the X-User-ID header set by the gateway.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/shubhamverma8991/credit-tracker/internal/cache"
	"github.com/shubhamverma8991/credit-tracker/internal/dashboard"
	applog "github.com/shubhamverma8991/credit-tracker/internal/log"
	"github.com/shubhamverma8991/credit-tracker/internal/store"
)

type Server struct {
	http.Server

	store       store.Store
	dashboard   *dashboard.Service
	rateLimiter *rateLimiter
	now         func() time.Time

	// Analytics responses are cached per user and endpoint; any write
	// for a user invalidates that user's entries.
	analyticsCache *cache.LRUCache[[]byte]
	cacheManager   *cache.Manager

	shutdownOnce sync.Once
}

type Options struct {
	Addr      string
	CacheTTL  time.Duration
	CacheSize int
	Logger    *applog.Logger
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(st store.Store, opts Options) *Server {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * time.Second
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 256
	}
	if opts.Logger == nil {
		opts.Logger = applog.New(applog.DefaultConfig())
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:    opts.Addr,
			Handler: applog.Middleware(opts.Logger)(mux),
		},
		store:          st,
		dashboard:      dashboard.New(st),
		rateLimiter:    newRateLimiter(),
		now:            time.Now,
		analyticsCache: cache.NewLRUCache[[]byte](opts.CacheSize, opts.CacheTTL),
		cacheManager:   cache.NewManager(),
	}
	s.cacheManager.Register(s.analyticsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/summary", s.guard(s.handleSummary))
	mux.HandleFunc("GET /api/analytics/breakdown", s.guard(s.handleBreakdown))
	mux.HandleFunc("GET /api/analytics/monthly", s.guard(s.handleMonthly))
	mux.HandleFunc("GET /api/analytics/trend", s.guard(s.handleTrend))
	mux.HandleFunc("GET /api/analytics/top-card", s.guard(s.handleTopCard))
	mux.HandleFunc("GET /api/analytics/cards", s.guard(s.handleCardSpending))

	mux.HandleFunc("GET /api/notifications", s.guard(s.handleListNotifications))
	mux.HandleFunc("POST /api/notifications/{id}/dismiss", s.guard(s.handleDismissNotification))
	mux.HandleFunc("POST /api/notifications/reset", s.guard(s.handleResetNotifications))

	mux.HandleFunc("GET /api/cards", s.guard(s.handleListCards))
	mux.HandleFunc("POST /api/cards", s.guard(s.handleCreateCard))
	mux.HandleFunc("PATCH /api/cards/{id}", s.guard(s.handleUpdateCard))
	mux.HandleFunc("DELETE /api/cards/{id}", s.guard(s.handleDeleteCard))

	mux.HandleFunc("GET /api/expenses", s.guard(s.handleListExpenses))
	mux.HandleFunc("POST /api/expenses", s.guard(s.handleCreateExpense))
	mux.HandleFunc("PATCH /api/expenses/{id}", s.guard(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.guard(s.handleDeleteExpense))

	mux.HandleFunc("GET /api/offers", s.guard(s.handleListOffers))
	mux.HandleFunc("POST /api/offers", s.guard(s.handleCreateOffer))
	mux.HandleFunc("PATCH /api/offers/{id}", s.guard(s.handleUpdateOffer))
	mux.HandleFunc("DELETE /api/offers/{id}", s.guard(s.handleDeleteOffer))

	mux.HandleFunc("POST /api/signout", s.guard(s.handleSignOut))

	return s
}

// today is the reference date for all derivations in a request,
// normalized to day granularity.
func (s *Server) today() time.Time {
	n := s.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// invalidateUser drops the user's cached analytics after a write.
func (s *Server) invalidateUser(userID string) {
	s.analyticsCache.DeletePrefix(userID + ":")
}

// Shutdown stops the cleanup goroutines and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
