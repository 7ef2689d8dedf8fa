package http

import (
	"errors"
	"net/http"

	applog "github.com/shubhamverma8991/credit-tracker/internal/log"
	"github.com/shubhamverma8991/credit-tracker/internal/query"
	"github.com/shubhamverma8991/credit-tracker/internal/store"
)

func (s *Server) handleListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := s.store.ListOffers(r.Context(), userID(r), "")
	if err != nil {
		s.logError(r, "Failed to list offers", err, applog.OpList)
		writeError(w, http.StatusInternalServerError, "failed to list offers")
		return
	}

	f := query.OfferFilter{
		CardID:     r.URL.Query().Get("card_id"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
	}
	offers = query.Offers(offers, f)

	out := make([]offerJSON, 0, len(offers))
	for _, o := range offers {
		out = append(out, toOfferJSON(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateOffer(w http.ResponseWriter, r *http.Request) {
	var req offerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	offer, err := req.toOffer()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.CreateOffer(r.Context(), userID(r), offer)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "card not found")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.invalidateUser(userID(r))
	s.logWrite(r, "offer", created.ID, applog.OpCreate)
	writeJSON(w, http.StatusCreated, toOfferJSON(created))
}

func (s *Server) handleUpdateOffer(w http.ResponseWriter, r *http.Request) {
	var req offerRequest
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
	updated, err := s.store.UpdateOffer(r.Context(), userID(r), id, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "offer not found")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.invalidateUser(userID(r))
	s.logWrite(r, "offer", id, applog.OpUpdate)
	writeJSON(w, http.StatusOK, toOfferJSON(updated))
}

func (s *Server) handleDeleteOffer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteOffer(r.Context(), userID(r), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "offer not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete offer")
		return
	}

	s.invalidateUser(userID(r))
	s.logWrite(r, "offer", id, applog.OpDelete)
	w.WriteHeader(http.StatusNoContent)
}
