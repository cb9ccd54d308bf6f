package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quizmaster/quizmaster/internal/quiz"
)

func CreateChapterHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SubjectID   int64  `json:"subject_id"`
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.Name == "" || req.SubjectID <= 0 {
			writeMessage(w, http.StatusBadRequest, "subject_id and name required")
			return
		}
		if _, err := store.GetSubject(r.Context(), req.SubjectID); err != nil {
			if errors.Is(err, quiz.ErrSubjectNotFound) {
				writeMessage(w, http.StatusNotFound, "Subject not found")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		ch, err := store.CreateChapter(r.Context(), quiz.Chapter{
			SubjectID:   req.SubjectID,
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "Chapter created successfully",
			"chapter": ch,
		})
	}
}

func ListChaptersHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chapters, err := store.ListChapters(r.Context())
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, chapters)
	}
}

func ListChaptersBySubjectHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subjectID, ok := idParam(r, "subjectID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid subject id")
			return
		}
		chapters, err := store.ListChaptersBySubject(r.Context(), subjectID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, chapters)
	}
}

func GetChapterHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "chapterID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid chapter id")
			return
		}
		ch, err := store.GetChapter(r.Context(), id)
		if err != nil {
			if errors.Is(err, quiz.ErrChapterNotFound) {
				writeMessage(w, http.StatusNotFound, "Chapter not found")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, ch)
	}
}

func UpdateChapterHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "chapterID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid chapter id")
			return
		}
		var req struct {
			SubjectID   int64  `json:"subject_id"`
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		ch, err := store.GetChapter(r.Context(), id)
		if err != nil {
			if errors.Is(err, quiz.ErrChapterNotFound) {
				writeMessage(w, http.StatusNotFound, "Chapter not found")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if req.SubjectID > 0 && req.SubjectID != ch.SubjectID {
			if _, err := store.GetSubject(r.Context(), req.SubjectID); err != nil {
				if errors.Is(err, quiz.ErrSubjectNotFound) {
					writeMessage(w, http.StatusNotFound, "Subject not found")
					return
				}
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			ch.SubjectID = req.SubjectID
		}
		if req.Name != "" {
			ch.Name = req.Name
		}
		if req.Description != "" {
			ch.Description = req.Description
		}
		ch, err = store.UpdateChapter(r.Context(), ch)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Chapter updated successfully",
			"chapter": ch,
		})
	}
}

func DeleteChapterHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "chapterID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid chapter id")
			return
		}
		if err := store.DeleteChapter(r.Context(), id); err != nil {
			if errors.Is(err, quiz.ErrChapterNotFound) {
				writeMessage(w, http.StatusNotFound, "Chapter not found")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeMessage(w, http.StatusOK, "Chapter deleted successfully")
	}
}
