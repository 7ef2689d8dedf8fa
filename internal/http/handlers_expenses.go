package http

import (
	"errors"
	"net/http"

	"github.com/shubhamverma8991/credit-tracker/internal/core"
	applog "github.com/shubhamverma8991/credit-tracker/internal/log"
	"github.com/shubhamverma8991/credit-tracker/internal/query"
	"github.com/shubhamverma8991/credit-tracker/internal/store"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.store.ListExpenses(r.Context(), userID(r), "")
	if err != nil {
		s.logError(r, "Failed to list expenses", err, applog.OpList)
		writeError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}

	f := query.ExpenseFilter{CardID: r.URL.Query().Get("card_id")}
	if cat := r.URL.Query().Get("category"); cat != "" {
		f.Category = core.ParseCategory(cat)
	}
	expenses = query.Expenses(expenses, f)

	out := make([]expenseJSON, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseJSON(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	expense, err := req.toExpense(userID(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.CreateExpense(r.Context(), expense)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "card not found")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.invalidateUser(userID(r))
	s.logWrite(r, "expense", created.ID, applog.OpCreate)
	writeJSON(w, http.StatusCreated, toExpenseJSON(created))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
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
	updated, err := s.store.UpdateExpense(r.Context(), userID(r), id, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "expense not found")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.invalidateUser(userID(r))
	s.logWrite(r, "expense", id, applog.OpUpdate)
	writeJSON(w, http.StatusOK, toExpenseJSON(updated))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteExpense(r.Context(), userID(r), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "expense not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}

	s.invalidateUser(userID(r))
	s.logWrite(r, "expense", id, applog.OpDelete)
	w.WriteHeader(http.StatusNoContent)
}
