package grading_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/quizmaster/quizmaster/internal/grading"
	"github.com/quizmaster/quizmaster/internal/quiz"
	"github.com/quizmaster/quizmaster/internal/score"
)

// seedQuiz creates a quiz with the given correct options and returns its id
// plus the created question ids in order.
func seedQuiz(t *testing.T, store quiz.Store, correct ...int) (int64, []int64) {
	t.Helper()
	ctx := context.Background()
	sub, err := store.CreateSubject(ctx, quiz.Subject{Name: "Math"})
	if err != nil {
		t.Fatalf("create subject: %v", err)
	}
	ch, err := store.CreateChapter(ctx, quiz.Chapter{SubjectID: sub.ID, Name: "Algebra"})
	if err != nil {
		t.Fatalf("create chapter: %v", err)
	}
	qz, err := store.CreateQuiz(ctx, quiz.Quiz{ChapterID: ch.ID, Name: "Quiz 1", TimeDuration: "00:30"})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	ids := make([]int64, 0, len(correct))
	for i, c := range correct {
		q, err := store.CreateQuestion(ctx, quiz.Question{
			QuizID:            qz.ID,
			QuestionStatement: "q",
			Option1:           "a", Option2: "b", Option3: "c", Option4: "d",
			CorrectOption: c,
		})
		if err != nil {
			t.Fatalf("create question %d: %v", i, err)
		}
		ids = append(ids, q.ID)
	}
	return qz.ID, ids
}

func TestGradeAllCorrect(t *testing.T) {
	store := quiz.NewInMemoryStore()
	quizID, qids := seedQuiz(t, store, 2, 4, 1)
	eng := grading.NewEngine(store, score.NewInMemoryStore())

	res, err := eng.Grade(context.Background(), quizID, []grading.Answer{
		{QuestionID: qids[0], SelectedOption: 2},
		{QuestionID: qids[1], SelectedOption: 4},
		{QuestionID: qids[2], SelectedOption: 1},
	})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if res.CorrectCount != 3 || res.TotalQuestions != 3 {
		t.Fatalf("got %d/%d, want 3/3", res.CorrectCount, res.TotalQuestions)
	}
	if res.Percentage != 100 {
		t.Fatalf("percentage = %v, want 100", res.Percentage)
	}
}

func TestGradePartial(t *testing.T) {
	store := quiz.NewInMemoryStore()
	quizID, qids := seedQuiz(t, store, 2, 4, 1)
	eng := grading.NewEngine(store, score.NewInMemoryStore())

	// Two of three correct -> 66.67 (rounded only for display).
	res, err := eng.Grade(context.Background(), quizID, []grading.Answer{
		{QuestionID: qids[0], SelectedOption: 2},
		{QuestionID: qids[1], SelectedOption: 3},
		{QuestionID: qids[2], SelectedOption: 1},
	})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if res.CorrectCount != 2 || res.TotalQuestions != 3 {
		t.Fatalf("got %d/%d, want 2/3", res.CorrectCount, res.TotalQuestions)
	}
	if math.Abs(res.Percentage-66.666) > 0.01 {
		t.Fatalf("percentage = %v, want ~66.67", res.Percentage)
	}
}

func TestGradeEmptySubmission(t *testing.T) {
	store := quiz.NewInMemoryStore()
	quizID, _ := seedQuiz(t, store, 2, 4, 1)
	eng := grading.NewEngine(store, score.NewInMemoryStore())

	res, err := eng.Grade(context.Background(), quizID, nil)
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if res.CorrectCount != 0 || res.Percentage != 0 {
		t.Fatalf("got count=%d pct=%v, want zeros", res.CorrectCount, res.Percentage)
	}
	if res.TotalQuestions != 3 {
		t.Fatalf("total = %d, want 3 (unanswered questions still count)", res.TotalQuestions)
	}
}

func TestGradeIgnoresForeignAndOutOfRange(t *testing.T) {
	store := quiz.NewInMemoryStore()
	quizID, qids := seedQuiz(t, store, 2)
	eng := grading.NewEngine(store, score.NewInMemoryStore())

	res, err := eng.Grade(context.Background(), quizID, []grading.Answer{
		{QuestionID: qids[0] + 999, SelectedOption: 2}, // not in this quiz
		{QuestionID: qids[0], SelectedOption: 7},       // out of range, never matches
		{QuestionID: qids[0], SelectedOption: grading.Unanswered},
	})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if res.CorrectCount != 0 {
		t.Fatalf("count = %d, want 0", res.CorrectCount)
	}
	// Duplicates and strays must never push the count past the total.
	if res.CorrectCount < 0 || res.CorrectCount > res.TotalQuestions {
		t.Fatalf("count %d outside [0,%d]", res.CorrectCount, res.TotalQuestions)
	}
}

func TestGradeQuizNotFound(t *testing.T) {
	store := quiz.NewInMemoryStore()
	eng := grading.NewEngine(store, score.NewInMemoryStore())

	_, err := eng.Grade(context.Background(), 42, nil)
	if !errors.Is(err, quiz.ErrQuizNotFound) {
		t.Fatalf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestGradeNoQuestions(t *testing.T) {
	store := quiz.NewInMemoryStore()
	quizID, _ := seedQuiz(t, store) // zero questions
	eng := grading.NewEngine(store, score.NewInMemoryStore())

	_, err := eng.Grade(context.Background(), quizID, nil)
	if !errors.Is(err, grading.ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}

func TestSubmitPersistsOneScore(t *testing.T) {
	store := quiz.NewInMemoryStore()
	quizID, qids := seedQuiz(t, store, 2, 4)
	scores := score.NewInMemoryStore()
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	eng := grading.NewEngine(store, scores, grading.WithClock(func() time.Time { return at }))

	sc, res, err := eng.Submit(context.Background(), 7, quizID, []grading.Answer{
		{QuestionID: qids[0], SelectedOption: 2},
	}, "00:04:12")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sc.TotalScored != 1 || sc.TotalQuestions != 2 {
		t.Fatalf("score row %d/%d, want 1/2", sc.TotalScored, sc.TotalQuestions)
	}
	if sc.TimeStampOfAttempt != at.Unix() {
		t.Fatalf("timestamp = %d, want %d", sc.TimeStampOfAttempt, at.Unix())
	}
	if res.Percentage != 50 {
		t.Fatalf("percentage = %v, want 50", res.Percentage)
	}

	list, err := scores.ListByUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != sc.ID {
		t.Fatalf("persisted rows = %+v, want the one submitted score", list)
	}
}

type failingSink struct{}

func (failingSink) Create(context.Context, score.Score) (score.Score, error) {
	return score.Score{}, errors.New("disk full")
}

func TestSubmitStorageFailure(t *testing.T) {
	store := quiz.NewInMemoryStore()
	quizID, qids := seedQuiz(t, store, 1)
	eng := grading.NewEngine(store, failingSink{})

	_, _, err := eng.Submit(context.Background(), 7, quizID, []grading.Answer{
		{QuestionID: qids[0], SelectedOption: 1},
	}, "")
	if !errors.Is(err, grading.ErrStore) {
		t.Fatalf("err = %v, want ErrStore", err)
	}
}
