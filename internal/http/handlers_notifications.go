package http

import "net/http"

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := s.dashboard.Notifications(r.Context(), userID(r), s.today())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to derive notifications")
		return
	}

	out := make([]notificationJSON, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, toNotificationJSON(n))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDismissNotification(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing notification id")
		return
	}
	s.dashboard.Dismiss(userID(r), id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetNotifications(w http.ResponseWriter, r *http.Request) {
	s.dashboard.ResetDismissed(userID(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	s.dashboard.Drop(userID(r))
	s.invalidateUser(userID(r))
	w.WriteHeader(http.StatusNoContent)
}
