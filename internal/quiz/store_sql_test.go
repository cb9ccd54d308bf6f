package quiz_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/quizmaster/quizmaster/internal/db"
	"github.com/quizmaster/quizmaster/internal/quiz"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	return dbh
}

func TestSubjectCRUD(t *testing.T) {
	ctx := context.Background()
	store := quiz.NewSQLStore(openTestDB(t))

	sub, err := store.CreateSubject(ctx, quiz.Subject{Name: "Physics", Description: "mechanics"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sub.ID == 0 {
		t.Fatal("expected assigned id")
	}

	if _, err := store.CreateSubject(ctx, quiz.Subject{Name: "Physics"}); !errors.Is(err, quiz.ErrDuplicateSubject) {
		t.Fatalf("duplicate name: got %v, want ErrDuplicateSubject", err)
	}

	got, err := store.GetSubject(ctx, sub.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Physics" || got.Description != "mechanics" {
		t.Fatalf("get mismatch: %+v", got)
	}

	got.Description = "kinematics"
	if _, err := store.UpdateSubject(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := store.DeleteSubject(ctx, sub.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetSubject(ctx, sub.ID); !errors.Is(err, quiz.ErrSubjectNotFound) {
		t.Fatalf("get after delete: got %v, want ErrSubjectNotFound", err)
	}
	if err := store.DeleteSubject(ctx, sub.ID); !errors.Is(err, quiz.ErrSubjectNotFound) {
		t.Fatalf("double delete: got %v, want ErrSubjectNotFound", err)
	}
}

func TestChaptersBySubject(t *testing.T) {
	ctx := context.Background()
	store := quiz.NewSQLStore(openTestDB(t))

	math, _ := store.CreateSubject(ctx, quiz.Subject{Name: "Math"})
	bio, _ := store.CreateSubject(ctx, quiz.Subject{Name: "Biology"})

	for _, name := range []string{"Algebra", "Geometry"} {
		if _, err := store.CreateChapter(ctx, quiz.Chapter{SubjectID: math.ID, Name: name}); err != nil {
			t.Fatalf("create chapter: %v", err)
		}
	}
	if _, err := store.CreateChapter(ctx, quiz.Chapter{SubjectID: bio.ID, Name: "Cells"}); err != nil {
		t.Fatalf("create chapter: %v", err)
	}

	chapters, err := store.ListChaptersBySubject(ctx, math.ID)
	if err != nil {
		t.Fatalf("list by subject: %v", err)
	}
	if len(chapters) != 2 {
		t.Fatalf("got %d chapters, want 2", len(chapters))
	}
	for _, c := range chapters {
		if c.SubjectID != math.ID {
			t.Fatalf("chapter %d belongs to subject %d", c.ID, c.SubjectID)
		}
	}
}

func TestQuizAndQuestionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := quiz.NewSQLStore(openTestDB(t))

	sub, _ := store.CreateSubject(ctx, quiz.Subject{Name: "History"})
	ch, _ := store.CreateChapter(ctx, quiz.Chapter{SubjectID: sub.ID, Name: "Ancient"})

	qz, err := store.CreateQuiz(ctx, quiz.Quiz{
		ChapterID:    ch.ID,
		Name:         "Quiz 1",
		DateOfQuiz:   1700000000,
		TimeDuration: "00:45",
	})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	q, err := store.CreateQuestion(ctx, quiz.Question{
		QuizID:            qz.ID,
		QuestionStatement: "Capital of the Roman Empire?",
		Option1:           "Rome",
		Option2:           "Athens",
		Option3:           "Carthage",
		Option4:           "Alexandria",
		CorrectOption:     1,
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}

	full, err := store.ListQuestionsByQuiz(ctx, qz.ID)
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	if len(full) != 1 || full[0].CorrectOption != 1 {
		t.Fatalf("full listing mismatch: %+v", full)
	}

	safe, err := store.ListQuestionsByQuizSafe(ctx, qz.ID)
	if err != nil {
		t.Fatalf("list safe: %v", err)
	}
	if safe[0].CorrectOption != 0 {
		t.Fatalf("safe listing leaked correct option: %+v", safe[0])
	}
	if safe[0].QuestionStatement != q.QuestionStatement {
		t.Fatalf("safe listing lost statement: %+v", safe[0])
	}

	// Deleting the quiz cascades to its questions.
	if err := store.DeleteQuiz(ctx, qz.ID); err != nil {
		t.Fatalf("delete quiz: %v", err)
	}
	left, err := store.ListQuestionsByQuiz(ctx, qz.ID)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("questions survived quiz delete: %+v", left)
	}
	if _, err := store.GetQuestion(ctx, q.ID); !errors.Is(err, quiz.ErrQuestionNotFound) {
		t.Fatalf("get question after cascade: got %v, want ErrQuestionNotFound", err)
	}
}

func TestGetQuizNotFound(t *testing.T) {
	store := quiz.NewSQLStore(openTestDB(t))
	if _, err := store.GetQuiz(context.Background(), 9999); !errors.Is(err, quiz.ErrQuizNotFound) {
		t.Fatalf("got %v, want ErrQuizNotFound", err)
	}
}
