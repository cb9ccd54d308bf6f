package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quizmaster/quizmaster/internal/quiz"
)

func CreateSubjectHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.Name == "" {
			writeMessage(w, http.StatusBadRequest, "name required")
			return
		}
		sub, err := store.CreateSubject(r.Context(), quiz.Subject{Name: req.Name, Description: req.Description})
		if err != nil {
			if errors.Is(err, quiz.ErrDuplicateSubject) {
				writeMessage(w, http.StatusBadRequest, "Subject already exists")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "Subject created successfully",
			"subject": sub,
		})
	}
}

func ListSubjectsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subjects, err := store.ListSubjects(r.Context())
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		chapters, err := store.ListChapters(r.Context())
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		bySubject := map[int64][]quiz.Chapter{}
		for _, c := range chapters {
			bySubject[c.SubjectID] = append(bySubject[c.SubjectID], c)
		}
		for i := range subjects {
			subjects[i].Chapters = bySubject[subjects[i].ID]
		}
		writeJSON(w, http.StatusOK, subjects)
	}
}

func GetSubjectHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "subjectID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid subject id")
			return
		}
		sub, err := store.GetSubject(r.Context(), id)
		if err != nil {
			if errors.Is(err, quiz.ErrSubjectNotFound) {
				writeMessage(w, http.StatusNotFound, "Subject not found")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		sub.Chapters, err = store.ListChaptersBySubject(r.Context(), sub.ID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, sub)
	}
}

func UpdateSubjectHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "subjectID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid subject id")
			return
		}
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		sub, err := store.GetSubject(r.Context(), id)
		if err != nil {
			if errors.Is(err, quiz.ErrSubjectNotFound) {
				writeMessage(w, http.StatusNotFound, "Subject not found")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		// Blank fields keep their stored values.
		if req.Name != "" {
			sub.Name = req.Name
		}
		if req.Description != "" {
			sub.Description = req.Description
		}
		sub, err = store.UpdateSubject(r.Context(), sub)
		if err != nil {
			if errors.Is(err, quiz.ErrDuplicateSubject) {
				writeMessage(w, http.StatusBadRequest, "Subject already exists")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Subject updated successfully",
			"subject": sub,
		})
	}
}

func DeleteSubjectHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "subjectID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid subject id")
			return
		}
		if err := store.DeleteSubject(r.Context(), id); err != nil {
			if errors.Is(err, quiz.ErrSubjectNotFound) {
				writeMessage(w, http.StatusNotFound, "Subject not found")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeMessage(w, http.StatusOK, "Subject deleted successfully")
	}
}
