package quiz

import (
	"context"
	"errors"
)

var (
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrChapterNotFound  = errors.New("chapter not found")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("question not found")
	// ErrDuplicateSubject is returned when a subject with the same name exists.
	ErrDuplicateSubject = errors.New("subject already exists")
)

// Store is the catalog of subjects, chapters, quizzes and questions.
// Question reads come in two flavors: the full row for admins and grading,
// and a student-safe row with the correct option stripped.
type Store interface {
	CreateSubject(ctx context.Context, s Subject) (Subject, error)
	ListSubjects(ctx context.Context) ([]Subject, error)
	GetSubject(ctx context.Context, id int64) (Subject, error)
	UpdateSubject(ctx context.Context, s Subject) (Subject, error)
	DeleteSubject(ctx context.Context, id int64) error

	CreateChapter(ctx context.Context, c Chapter) (Chapter, error)
	ListChapters(ctx context.Context) ([]Chapter, error)
	ListChaptersBySubject(ctx context.Context, subjectID int64) ([]Chapter, error)
	GetChapter(ctx context.Context, id int64) (Chapter, error)
	UpdateChapter(ctx context.Context, c Chapter) (Chapter, error)
	DeleteChapter(ctx context.Context, id int64) error

	CreateQuiz(ctx context.Context, q Quiz) (Quiz, error)
	ListQuizzes(ctx context.Context) ([]Quiz, error)
	ListQuizzesByChapter(ctx context.Context, chapterID int64) ([]Quiz, error)
	GetQuiz(ctx context.Context, id int64) (Quiz, error)
	UpdateQuiz(ctx context.Context, q Quiz) (Quiz, error)
	DeleteQuiz(ctx context.Context, id int64) error

	CreateQuestion(ctx context.Context, q Question) (Question, error)
	ListQuestionsByQuiz(ctx context.Context, quizID int64) ([]Question, error)
	ListQuestionsByQuizSafe(ctx context.Context, quizID int64) ([]Question, error)
	GetQuestion(ctx context.Context, id int64) (Question, error)
	UpdateQuestion(ctx context.Context, q Question) (Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
}
