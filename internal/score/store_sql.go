package score

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Create(ctx context.Context, sc Score) (Score, error) {
	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	if sc.TimeStampOfAttempt == 0 {
		sc.TimeStampOfAttempt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (id, quiz_id, user_id, time_stamp_of_attempt, total_questions, total_scored, time_taken)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		sc.ID, sc.QuizID, sc.UserID, sc.TimeStampOfAttempt, sc.TotalQuestions, sc.TotalScored, sc.TimeTaken)
	if err != nil {
		return Score{}, err
	}
	return sc, nil
}

func (s *SQLStore) ListByUser(ctx context.Context, userID int64) ([]Score, error) {
	return s.scan(ctx,
		`SELECT id, quiz_id, user_id, time_stamp_of_attempt, total_questions, total_scored, time_taken
		 FROM scores WHERE user_id=$1 ORDER BY time_stamp_of_attempt DESC`, userID)
}

func (s *SQLStore) ListByQuiz(ctx context.Context, quizID int64) ([]Score, error) {
	return s.scan(ctx,
		`SELECT id, quiz_id, user_id, time_stamp_of_attempt, total_questions, total_scored, time_taken
		 FROM scores WHERE quiz_id=$1 ORDER BY time_stamp_of_attempt DESC`, quizID)
}

func (s *SQLStore) ListAll(ctx context.Context) ([]Score, error) {
	return s.scan(ctx,
		`SELECT id, quiz_id, user_id, time_stamp_of_attempt, total_questions, total_scored, time_taken
		 FROM scores ORDER BY time_stamp_of_attempt DESC`)
}

func (s *SQLStore) AggregateForUser(ctx context.Context, userID int64) (Stats, error) {
	scores, err := s.ListByUser(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	return aggregate(scores), nil
}

func (s *SQLStore) scan(ctx context.Context, query string, args ...any) ([]Score, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Score{}
	for rows.Next() {
		var sc Score
		if err := rows.Scan(&sc.ID, &sc.QuizID, &sc.UserID, &sc.TimeStampOfAttempt,
			&sc.TotalQuestions, &sc.TotalScored, &sc.TimeTaken); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
