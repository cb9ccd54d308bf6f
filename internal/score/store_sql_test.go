package score_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/quizmaster/quizmaster/internal/db"
	"github.com/quizmaster/quizmaster/internal/score"
)

// seeds the catalog rows the scores table references.
func openSeededDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })

	stmts := []string{
		`INSERT INTO users (id, username, password_hash, full_name, role, created_at, updated_at)
		 VALUES (7, 'alice', 'x', 'Alice', 'user', 0, 0)`,
		`INSERT INTO subjects (id, name) VALUES (1, 'Math')`,
		`INSERT INTO chapters (id, subject_id, name) VALUES (1, 1, 'Algebra')`,
		`INSERT INTO quizzes (id, chapter_id, name, date_of_quiz) VALUES (1, 1, 'Quiz 1', 0)`,
		`INSERT INTO quizzes (id, chapter_id, name, date_of_quiz) VALUES (2, 1, 'Quiz 2', 0)`,
	}
	for _, s := range stmts {
		if _, err := dbh.Exec(s); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return dbh
}

func TestSQLStoreCreateAssignsID(t *testing.T) {
	ctx := context.Background()
	store := score.NewSQLStore(openSeededDB(t))

	sc, err := store.Create(ctx, score.Score{
		QuizID: 1, UserID: 7, TotalQuestions: 4, TotalScored: 2, TimeTaken: "00:03:10",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sc.ID == "" {
		t.Fatal("expected generated id")
	}
	if sc.TimeStampOfAttempt == 0 {
		t.Fatal("expected defaulted timestamp")
	}
}

func TestSQLStoreListAndAggregate(t *testing.T) {
	ctx := context.Background()
	store := score.NewSQLStore(openSeededDB(t))

	seed := []score.Score{
		{QuizID: 1, UserID: 7, TimeStampOfAttempt: 100, TotalQuestions: 10, TotalScored: 7},
		{QuizID: 2, UserID: 7, TimeStampOfAttempt: 300, TotalQuestions: 3, TotalScored: 1},
		{QuizID: 1, UserID: 7, TimeStampOfAttempt: 200, TotalQuestions: 10, TotalScored: 9},
	}
	for _, s := range seed {
		if _, err := store.Create(ctx, s); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	byUser, err := store.ListByUser(ctx, 7)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(byUser) != 3 {
		t.Fatalf("got %d scores, want 3", len(byUser))
	}
	if byUser[0].TimeStampOfAttempt != 300 || byUser[2].TimeStampOfAttempt != 100 {
		t.Fatalf("not sorted newest first: %+v", byUser)
	}

	byQuiz, err := store.ListByQuiz(ctx, 1)
	if err != nil {
		t.Fatalf("list by quiz: %v", err)
	}
	if len(byQuiz) != 2 {
		t.Fatalf("got %d scores for quiz 1, want 2", len(byQuiz))
	}

	stats, err := store.AggregateForUser(ctx, 7)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	// 17/23 = 73.91%
	if stats.TotalQuizzes != 3 || stats.TotalQuestions != 23 || stats.TotalCorrect != 17 {
		t.Fatalf("totals mismatch: %+v", stats)
	}
	if stats.AverageScore != 73.91 {
		t.Fatalf("average = %v, want 73.91", stats.AverageScore)
	}
}
