package http

import (
	"errors"
	"net/http"

	applog "github.com/shubhamverma8991/credit-tracker/internal/log"
	"github.com/shubhamverma8991/credit-tracker/internal/store"
)

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.store.ListCards(r.Context(), userID(r))
	if err != nil {
		s.logError(r, "Failed to list cards", err, applog.OpList)
		writeError(w, http.StatusInternalServerError, "failed to list cards")
		return
	}

	out := make([]cardJSON, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardJSON(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	card, err := req.toCard(userID(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.CreateCard(r.Context(), card)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.invalidateUser(userID(r))
	s.logWrite(r, "card", created.ID, applog.OpCreate)
	writeJSON(w, http.StatusCreated, toCardJSON(created))
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	upd, err := req.toUpdate()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := r.PathValue("id")
	updated, err := s.store.UpdateCard(r.Context(), userID(r), id, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "card not found")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.invalidateUser(userID(r))
	s.logWrite(r, "card", id, applog.OpUpdate)
	writeJSON(w, http.StatusOK, toCardJSON(updated))
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteCard(r.Context(), userID(r), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "card not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete card")
		return
	}

	s.invalidateUser(userID(r))
	s.logWrite(r, "card", id, applog.OpDelete)
	w.WriteHeader(http.StatusNoContent)
}

// logWrite records a successful mutation with the request's logger.
func (s *Server) logWrite(r *http.Request, entity, id, op string) {
	sl := applog.NewStructuredLogger(applog.FromContext(r.Context()))
	sl.LogRecordWrite(r.Context(), entity, id, op, userID(r))
}

func (s *Server) logError(r *http.Request, msg string, err error, op string) {
	sl := applog.NewStructuredLogger(applog.FromContext(r.Context()))
	sl.LogError(r.Context(), msg, err, applog.ComponentHTTP, op, applog.NewFields().WithUser(userID(r)))
}
