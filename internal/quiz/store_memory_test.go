package quiz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/quizmaster/quizmaster/internal/quiz"
)

func seedTree(t *testing.T, store quiz.Store) (quiz.Subject, quiz.Chapter, quiz.Quiz, quiz.Question) {
	t.Helper()
	ctx := context.Background()
	sub, err := store.CreateSubject(ctx, quiz.Subject{Name: "Chemistry"})
	if err != nil {
		t.Fatalf("seed subject: %v", err)
	}
	ch, err := store.CreateChapter(ctx, quiz.Chapter{SubjectID: sub.ID, Name: "Acids"})
	if err != nil {
		t.Fatalf("seed chapter: %v", err)
	}
	qz, err := store.CreateQuiz(ctx, quiz.Quiz{ChapterID: ch.ID, Name: "Quiz", DateOfQuiz: 1, TimeDuration: "00:15"})
	if err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	q, err := store.CreateQuestion(ctx, quiz.Question{
		QuizID:            qz.ID,
		QuestionStatement: "pH of pure water?",
		Option1:           "7", Option2: "0", Option3: "14", Option4: "1",
		CorrectOption: 1,
	})
	if err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return sub, ch, qz, q
}

func TestMemoryDeleteSubjectCascades(t *testing.T) {
	ctx := context.Background()
	store := quiz.NewInMemoryStore()
	sub, ch, qz, q := seedTree(t, store)

	if err := store.DeleteSubject(ctx, sub.ID); err != nil {
		t.Fatalf("delete subject: %v", err)
	}
	if _, err := store.GetChapter(ctx, ch.ID); !errors.Is(err, quiz.ErrChapterNotFound) {
		t.Fatalf("chapter survived: %v", err)
	}
	if _, err := store.GetQuiz(ctx, qz.ID); !errors.Is(err, quiz.ErrQuizNotFound) {
		t.Fatalf("quiz survived: %v", err)
	}
	if _, err := store.GetQuestion(ctx, q.ID); !errors.Is(err, quiz.ErrQuestionNotFound) {
		t.Fatalf("question survived: %v", err)
	}
}

func TestMemoryDeleteChapterCascades(t *testing.T) {
	ctx := context.Background()
	store := quiz.NewInMemoryStore()
	sub, ch, qz, q := seedTree(t, store)

	if err := store.DeleteChapter(ctx, ch.ID); err != nil {
		t.Fatalf("delete chapter: %v", err)
	}
	if _, err := store.GetQuiz(ctx, qz.ID); !errors.Is(err, quiz.ErrQuizNotFound) {
		t.Fatalf("quiz survived: %v", err)
	}
	if _, err := store.GetQuestion(ctx, q.ID); !errors.Is(err, quiz.ErrQuestionNotFound) {
		t.Fatalf("question survived: %v", err)
	}
	// The parent subject is untouched.
	if _, err := store.GetSubject(ctx, sub.ID); err != nil {
		t.Fatalf("subject should remain: %v", err)
	}
}
