package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quizmaster/quizmaster/internal/quiz"
)

type questionRequest struct {
	QuizID            int64  `json:"quiz_id"`
	QuestionStatement string `json:"question_statement"`
	Option1           string `json:"option1"`
	Option2           string `json:"option2"`
	Option3           string `json:"option3"`
	Option4           string `json:"option4"`
	CorrectOption     int    `json:"correct_option"`
}

func CreateQuestionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req questionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.QuizID <= 0 || req.QuestionStatement == "" {
			writeMessage(w, http.StatusBadRequest, "quiz_id and question_statement required")
			return
		}
		if req.CorrectOption < 1 || req.CorrectOption > 4 {
			writeMessage(w, http.StatusBadRequest, "correct_option must be between 1 and 4")
			return
		}
		if _, err := store.GetQuiz(r.Context(), req.QuizID); err != nil {
			if errors.Is(err, quiz.ErrQuizNotFound) {
				writeMessage(w, http.StatusNotFound, "Quiz not found")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		q, err := store.CreateQuestion(r.Context(), quiz.Question{
			QuizID:            req.QuizID,
			QuestionStatement: req.QuestionStatement,
			Option1:           req.Option1,
			Option2:           req.Option2,
			Option3:           req.Option3,
			Option4:           req.Option4,
			CorrectOption:     req.CorrectOption,
		})
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message":  "Question created successfully",
			"question": q,
		})
	}
}

// ListQuestionsByQuizHandler is the admin view; correct options included.
func ListQuestionsByQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, ok := idParam(r, "quizID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid quiz id")
			return
		}
		questions, err := store.ListQuestionsByQuiz(r.Context(), quizID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, questions)
	}
}

// ListQuestionsForUserHandler serves questions with the correct option
// stripped, for quiz takers.
func ListQuestionsForUserHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, ok := idParam(r, "quizID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid quiz id")
			return
		}
		questions, err := store.ListQuestionsByQuizSafe(r.Context(), quizID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, questions)
	}
}

func GetQuestionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "questionID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid question id")
			return
		}
		q, err := store.GetQuestion(r.Context(), id)
		if err != nil {
			if errors.Is(err, quiz.ErrQuestionNotFound) {
				writeMessage(w, http.StatusNotFound, "Question not found")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

func UpdateQuestionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "questionID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid question id")
			return
		}
		var req questionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		q, err := store.GetQuestion(r.Context(), id)
		if err != nil {
			if errors.Is(err, quiz.ErrQuestionNotFound) {
				writeMessage(w, http.StatusNotFound, "Question not found")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if req.QuestionStatement != "" {
			q.QuestionStatement = req.QuestionStatement
		}
		if req.Option1 != "" {
			q.Option1 = req.Option1
		}
		if req.Option2 != "" {
			q.Option2 = req.Option2
		}
		if req.Option3 != "" {
			q.Option3 = req.Option3
		}
		if req.Option4 != "" {
			q.Option4 = req.Option4
		}
		if req.CorrectOption != 0 {
			if req.CorrectOption < 1 || req.CorrectOption > 4 {
				writeMessage(w, http.StatusBadRequest, "correct_option must be between 1 and 4")
				return
			}
			q.CorrectOption = req.CorrectOption
		}
		q, err = store.UpdateQuestion(r.Context(), q)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message":  "Question updated successfully",
			"question": q,
		})
	}
}

func DeleteQuestionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "questionID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid question id")
			return
		}
		if err := store.DeleteQuestion(r.Context(), id); err != nil {
			if errors.Is(err, quiz.ErrQuestionNotFound) {
				writeMessage(w, http.StatusNotFound, "Question not found")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeMessage(w, http.StatusOK, "Question deleted successfully")
	}
}
