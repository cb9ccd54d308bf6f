package http

import (
	"encoding/json"
	"net/http"

	"github.com/quizmaster/quizmaster/internal/attempt"
	auth "github.com/quizmaster/quizmaster/internal/auth/middleware"
	"github.com/quizmaster/quizmaster/internal/grading"
)

// SnapshotProvider hands out the per-user snapshot store backing in-progress
// attempts, so one user's saved answers never shadow another's.
type SnapshotProvider func(userID int64) (attempt.SnapshotStore, error)

// SaveAttemptHandler persists the caller's in-progress answers for a quiz so
// an interrupted attempt can resume where it left off.
func SaveAttemptHandler(provider SnapshotProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, ok := idParam(r, "quizID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid quiz id")
			return
		}
		userID := auth.SubjectFromContext(r.Context())
		if userID == 0 {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		var req struct {
			Answers []grading.Answer `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		snaps, err := provider(userID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if err := snaps.Save(quizID, req.Answers); err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeMessage(w, http.StatusOK, "Attempt saved")
	}
}

// GetAttemptHandler returns the caller's saved answers for a quiz, if any.
func GetAttemptHandler(provider SnapshotProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, ok := idParam(r, "quizID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid quiz id")
			return
		}
		userID := auth.SubjectFromContext(r.Context())
		if userID == 0 {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		snaps, err := provider(userID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		answers, found, err := snaps.Load(quizID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if !found {
			writeMessage(w, http.StatusNotFound, "No saved attempt")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"answers": answers})
	}
}

// DeleteAttemptHandler discards the caller's saved answers for a quiz.
// Deleting a snapshot that does not exist succeeds.
func DeleteAttemptHandler(provider SnapshotProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, ok := idParam(r, "quizID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid quiz id")
			return
		}
		userID := auth.SubjectFromContext(r.Context())
		if userID == 0 {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		snaps, err := provider(userID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if err := snaps.Delete(quizID); err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeMessage(w, http.StatusOK, "Attempt discarded")
	}
}
