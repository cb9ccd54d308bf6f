package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/quizmaster/quizmaster/internal/attempt"
	"github.com/quizmaster/quizmaster/internal/quiz"
)

type quizRequest struct {
	ChapterID    int64  `json:"chapter_id"`
	Name         string `json:"name"`
	DateOfQuiz   int64  `json:"date_of_quiz"`
	TimeLimitMin int    `json:"time_limit_min"`
	TimeDuration string `json:"time_duration"`
	Remarks      string `json:"remarks"`
}

// canonicalDuration collapses the two accepted time-limit inputs into the one
// stored HH:MM form. Explicit minutes win over a raw duration string.
func canonicalDuration(minutes int, duration string) string {
	if minutes > 0 {
		return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
	}
	return duration
}

func CreateQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req quizRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.Name == "" || req.ChapterID <= 0 {
			writeMessage(w, http.StatusBadRequest, "chapter_id and name required")
			return
		}
		if _, err := store.GetChapter(r.Context(), req.ChapterID); err != nil {
			if errors.Is(err, quiz.ErrChapterNotFound) {
				writeMessage(w, http.StatusNotFound, "Chapter not found")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		dur := canonicalDuration(req.TimeLimitMin, req.TimeDuration)
		if dur == "" {
			dur = "00:30"
		}
		date := req.DateOfQuiz
		if date == 0 {
			date = time.Now().Unix()
		}
		qz, err := store.CreateQuiz(r.Context(), quiz.Quiz{
			ChapterID:    req.ChapterID,
			Name:         req.Name,
			DateOfQuiz:   date,
			TimeDuration: dur,
			Remarks:      req.Remarks,
		})
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "Quiz created successfully",
			"quiz":    qz,
		})
	}
}

func ListQuizzesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizzes, err := store.ListQuizzes(r.Context())
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, quizzes)
	}
}

func ListQuizzesByChapterHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chapterID, ok := idParam(r, "chapterID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid chapter id")
			return
		}
		quizzes, err := store.ListQuizzesByChapter(r.Context(), chapterID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, quizzes)
	}
}

// GetQuizHandler returns the quiz with its questions in the student-safe
// shape; correct options never leave through this endpoint.
func GetQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "quizID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid quiz id")
			return
		}
		qz, err := store.GetQuiz(r.Context(), id)
		if err != nil {
			if errors.Is(err, quiz.ErrQuizNotFound) {
				writeMessage(w, http.StatusNotFound, "Quiz not found")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		qz.Questions, err = store.ListQuestionsByQuizSafe(r.Context(), qz.ID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		qz.TimeLimitSeconds = int(attempt.TimeLimit(0, qz.TimeDuration).Seconds())
		writeJSON(w, http.StatusOK, qz)
	}
}

func UpdateQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "quizID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid quiz id")
			return
		}
		var req quizRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		qz, err := store.GetQuiz(r.Context(), id)
		if err != nil {
			if errors.Is(err, quiz.ErrQuizNotFound) {
				writeMessage(w, http.StatusNotFound, "Quiz not found")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if req.ChapterID > 0 && req.ChapterID != qz.ChapterID {
			if _, err := store.GetChapter(r.Context(), req.ChapterID); err != nil {
				if errors.Is(err, quiz.ErrChapterNotFound) {
					writeMessage(w, http.StatusNotFound, "Chapter not found")
					return
				}
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			qz.ChapterID = req.ChapterID
		}
		if req.Name != "" {
			qz.Name = req.Name
		}
		if req.Remarks != "" {
			qz.Remarks = req.Remarks
		}
		if d := canonicalDuration(req.TimeLimitMin, req.TimeDuration); d != "" {
			qz.TimeDuration = d
		}
		if req.DateOfQuiz > 0 {
			qz.DateOfQuiz = req.DateOfQuiz
		}
		qz, err = store.UpdateQuiz(r.Context(), qz)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Quiz updated successfully",
			"quiz":    qz,
		})
	}
}

func DeleteQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "quizID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid quiz id")
			return
		}
		if err := store.DeleteQuiz(r.Context(), id); err != nil {
			if errors.Is(err, quiz.ErrQuizNotFound) {
				writeMessage(w, http.StatusNotFound, "Quiz not found")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeMessage(w, http.StatusOK, "Quiz deleted successfully")
	}
}
