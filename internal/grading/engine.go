// Package grading turns a submitted answer set into a correctness count and a
// persisted score record.
package grading

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quizmaster/quizmaster/internal/quiz"
	"github.com/quizmaster/quizmaster/internal/score"
)

var (
	// ErrNoQuestions means the quiz exists but has nothing to grade.
	ErrNoQuestions = errors.New("no questions found for this quiz")
	// ErrStore wraps a persistence failure; the score was not saved.
	ErrStore = errors.New("score storage failed")
)

// Unanswered is the sentinel option for a question the user skipped.
const Unanswered = -1

// Answer is one (question, selected option) pair from a submission. The
// submission as a whole is keyed by question id; option values outside 1-4
// never match and simply count as incorrect.
type Answer struct {
	QuestionID     int64 `json:"question_id"`
	SelectedOption int   `json:"selected_option"`
}

// Result is the graded outcome before persistence.
type Result struct {
	TotalQuestions int     `json:"total_questions"`
	CorrectCount   int     `json:"correct_count"`
	Percentage     float64 `json:"percentage"`
}

// QuestionSource is the read-only catalog view the engine grades against.
type QuestionSource interface {
	GetQuiz(ctx context.Context, id int64) (quiz.Quiz, error)
	ListQuestionsByQuiz(ctx context.Context, quizID int64) ([]quiz.Question, error)
}

// ScoreSink persists one record per completed attempt.
type ScoreSink interface {
	Create(ctx context.Context, s score.Score) (score.Score, error)
}

type Engine struct {
	quizzes QuestionSource
	scores  ScoreSink
	now     func() time.Time
}

type Option func(*Engine)

// WithClock is test-only for deterministic attempt timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(quizzes QuestionSource, scores ScoreSink, opts ...Option) *Engine {
	e := &Engine{quizzes: quizzes, scores: scores, now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Grade computes the correctness count for a submission without persisting
// anything. Answers referencing questions outside the quiz are ignored;
// questions with no matching answer count as incorrect. TotalQuestions is the
// quiz's question count at grading time, never the number of answers.
func (e *Engine) Grade(ctx context.Context, quizID int64, answers []Answer) (Result, error) {
	if _, err := e.quizzes.GetQuiz(ctx, quizID); err != nil {
		return Result{}, err
	}
	questions, err := e.quizzes.ListQuestionsByQuiz(ctx, quizID)
	if err != nil {
		return Result{}, err
	}
	if len(questions) == 0 {
		return Result{}, ErrNoQuestions
	}

	correctByID := make(map[int64]int, len(questions))
	for _, q := range questions {
		correctByID[q.ID] = q.CorrectOption
	}

	correct := 0
	for _, a := range answers {
		if want, ok := correctByID[a.QuestionID]; ok && a.SelectedOption == want {
			correct++
		}
	}

	total := len(questions)
	return Result{
		TotalQuestions: total,
		CorrectCount:   correct,
		Percentage:     float64(correct) / float64(total) * 100,
	}, nil
}

// Submit grades the submission and persists exactly one Score. Grading and the
// write form one logical unit: a storage failure surfaces as ErrStore and no
// score is reported back.
func (e *Engine) Submit(ctx context.Context, userID, quizID int64, answers []Answer, timeTaken string) (score.Score, Result, error) {
	res, err := e.Grade(ctx, quizID, answers)
	if err != nil {
		return score.Score{}, Result{}, err
	}

	sc, err := e.scores.Create(ctx, score.Score{
		QuizID:             quizID,
		UserID:             userID,
		TimeStampOfAttempt: e.now().Unix(),
		TotalQuestions:     res.TotalQuestions,
		TotalScored:        res.CorrectCount,
		TimeTaken:          timeTaken,
	})
	if err != nil {
		return score.Score{}, Result{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return sc, res, nil
}
