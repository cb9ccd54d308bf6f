// Package score persists the immutable outcome of quiz attempts and serves
// the per-user statistics derived from them.
package score

import (
	"context"
	"math"
)

// Score is one completed attempt. Rows are append-only: a re-attempt creates
// a new row, nothing updates or recomputes an existing one.
type Score struct {
	ID                 string `json:"id"`
	QuizID             int64  `json:"quiz_id"`
	UserID             int64  `json:"user_id"`
	TimeStampOfAttempt int64  `json:"time_stamp_of_attempt"`
	TotalQuestions     int    `json:"total_questions"`
	TotalScored        int    `json:"total_scored"`
	TimeTaken          string `json:"time_taken,omitempty"`
}

// Stats aggregates all of one user's scores. AverageScore is a percentage
// rounded to two decimals; every field is zero for a user with no scores.
type Stats struct {
	TotalQuizzes   int     `json:"totalQuizzes"`
	TotalQuestions int     `json:"totalQuestions"`
	TotalCorrect   int     `json:"totalCorrect"`
	AverageScore   float64 `json:"averageScore"`
}

type Store interface {
	Create(ctx context.Context, s Score) (Score, error)
	ListByUser(ctx context.Context, userID int64) ([]Score, error)
	ListByQuiz(ctx context.Context, quizID int64) ([]Score, error)
	ListAll(ctx context.Context) ([]Score, error)
	AggregateForUser(ctx context.Context, userID int64) (Stats, error)
}

// aggregate folds scores into Stats, guarding the zero-questions division.
func aggregate(scores []Score) Stats {
	var st Stats
	st.TotalQuizzes = len(scores)
	for _, s := range scores {
		st.TotalQuestions += s.TotalQuestions
		st.TotalCorrect += s.TotalScored
	}
	if st.TotalQuestions > 0 {
		st.AverageScore = round2(float64(st.TotalCorrect) / float64(st.TotalQuestions) * 100)
	}
	return st
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
