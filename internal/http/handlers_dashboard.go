package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

const defaultPeriodDays = 30

// periodDays reads the ?days query parameter. Any positive integer is
// a valid period; absent means 30.
func periodDays(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return defaultPeriodDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return 0, fmt.Errorf("days must be a positive integer, got %q", raw)
	}
	return days, nil
}

// serveCached writes the cached response for key if present, otherwise
// computes the payload, caches its encoding and writes it.
func (s *Server) serveCached(w http.ResponseWriter, key string, compute func() (any, error)) {
	if body, ok := s.analyticsCache.Get(key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
		return
	}

	payload, err := compute()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	s.analyticsCache.Set(key, body)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	days, err := periodDays(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	key := fmt.Sprintf("%s:summary:%d", uid, days)

	s.serveCached(w, key, func() (any, error) {
		view, err := s.dashboard.Summary(r.Context(), uid, s.today(), days)
		if err != nil {
			return nil, err
		}
		return view, nil
	})
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	days, err := periodDays(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	allTime := r.URL.Query().Get("scope") == "all"
	key := fmt.Sprintf("%s:breakdown:%d:%t", uid, days, allTime)

	s.serveCached(w, key, func() (any, error) {
		return s.dashboard.Breakdown(r.Context(), uid, s.today(), days, allTime)
	})
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	key := uid + ":monthly"

	s.serveCached(w, key, func() (any, error) {
		return s.dashboard.Monthly(r.Context(), uid, s.today())
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	key := uid + ":trend"

	s.serveCached(w, key, func() (any, error) {
		return s.dashboard.Trend(r.Context(), uid, s.today())
	})
}

func (s *Server) handleCardSpending(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	days, err := periodDays(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	key := fmt.Sprintf("%s:cards:%d", uid, days)

	s.serveCached(w, key, func() (any, error) {
		return s.dashboard.CardSpending(r.Context(), uid, s.today(), days)
	})
}

func (s *Server) handleTopCard(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	days, err := periodDays(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	key := fmt.Sprintf("%s:top-card:%d", uid, days)

	s.serveCached(w, key, func() (any, error) {
		return s.dashboard.TopCard(r.Context(), uid, s.today(), days)
	})
}
