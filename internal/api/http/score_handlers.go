package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	auth "github.com/quizmaster/quizmaster/internal/auth/middleware"
	"github.com/quizmaster/quizmaster/internal/grading"
	"github.com/quizmaster/quizmaster/internal/quiz"
	"github.com/quizmaster/quizmaster/internal/score"
	"github.com/quizmaster/quizmaster/internal/syncx"
)

// SubmitQuizHandler grades a submission for the authenticated user and
// persists the score. The event log gets one append per successful
// submission; a failed append does not fail the request.
func SubmitQuizHandler(engine *grading.Engine, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		if userID == 0 {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		var req struct {
			QuizID    int64            `json:"quiz_id"`
			Answers   []grading.Answer `json:"answers"`
			TimeTaken string           `json:"time_taken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.QuizID <= 0 {
			writeMessage(w, http.StatusBadRequest, "quiz_id required")
			return
		}

		sc, res, err := engine.Submit(r.Context(), userID, req.QuizID, req.Answers, req.TimeTaken)
		if err != nil {
			switch {
			case errors.Is(err, quiz.ErrQuizNotFound):
				writeMessage(w, http.StatusNotFound, "Quiz not found")
			case errors.Is(err, grading.ErrNoQuestions):
				writeMessage(w, http.StatusBadRequest, "No questions found for this quiz")
			default:
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		if events != nil {
			data, _ := json.Marshal(sc)
			if err := events.Append(r.Context(), syncx.Event{
				Type:     "quiz.submitted",
				Key:      sc.ID,
				DataJSON: string(data),
			}); err != nil {
				log.Printf("event append: %v", err)
			}
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"message":    "Quiz submitted successfully",
			"score":      sc,
			"percentage": res.Percentage,
		})
	}
}

// UserScoresHandler lists the authenticated user's scores, newest first.
func UserScoresHandler(scores score.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		if userID == 0 {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		list, err := scores.ListByUser(r.Context(), userID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// UserStatsHandler returns the aggregate statistics for the authenticated
// user. A user with no attempts gets all zeros, not an error.
func UserStatsHandler(scores score.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		if userID == 0 {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		stats, err := scores.AggregateForUser(r.Context(), userID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func ScoresByQuizHandler(scores score.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, ok := idParam(r, "quizID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid quiz id")
			return
		}
		list, err := scores.ListByQuiz(r.Context(), quizID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// AllScoresHandler is the admin dump of every attempt. An optional user_id
// query narrows it to one user.
func AllScoresHandler(scores score.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if raw := r.URL.Query().Get("user_id"); raw != "" {
			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				writeMessage(w, http.StatusBadRequest, "invalid user id")
				return
			}
			list, err := scores.ListByUser(r.Context(), userID)
			if err != nil {
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			writeJSON(w, http.StatusOK, list)
			return
		}
		list, err := scores.ListAll(r.Context())
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}
