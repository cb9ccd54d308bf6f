package quiz

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// --- subjects ---

func (s *SQLStore) CreateSubject(ctx context.Context, sub Subject) (Subject, error) {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO subjects (name, description) VALUES ($1,$2) RETURNING id`,
		sub.Name, sub.Description).Scan(&sub.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Subject{}, ErrDuplicateSubject
		}
		return Subject{}, err
	}
	return sub, nil
}

func (s *SQLStore) ListSubjects(ctx context.Context) ([]Subject, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description FROM subjects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Subject{}
	for rows.Next() {
		var sub Subject
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Description); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetSubject(ctx context.Context, id int64) (Subject, error) {
	var sub Subject
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description FROM subjects WHERE id=$1`, id).
		Scan(&sub.ID, &sub.Name, &sub.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return Subject{}, ErrSubjectNotFound
	}
	return sub, err
}

func (s *SQLStore) UpdateSubject(ctx context.Context, sub Subject) (Subject, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE subjects SET name=$1, description=$2 WHERE id=$3`,
		sub.Name, sub.Description, sub.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Subject{}, ErrDuplicateSubject
		}
		return Subject{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Subject{}, ErrSubjectNotFound
	}
	return sub, nil
}

func (s *SQLStore) DeleteSubject(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM subjects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSubjectNotFound
	}
	return nil
}

// --- chapters ---

func (s *SQLStore) CreateChapter(ctx context.Context, c Chapter) (Chapter, error) {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO chapters (subject_id, name, description) VALUES ($1,$2,$3) RETURNING id`,
		c.SubjectID, c.Name, c.Description).Scan(&c.ID)
	if err != nil {
		return Chapter{}, err
	}
	return c, nil
}

func (s *SQLStore) ListChapters(ctx context.Context) ([]Chapter, error) {
	return s.scanChapters(ctx, `SELECT id, subject_id, name, description FROM chapters ORDER BY id`)
}

func (s *SQLStore) ListChaptersBySubject(ctx context.Context, subjectID int64) ([]Chapter, error) {
	return s.scanChapters(ctx,
		`SELECT id, subject_id, name, description FROM chapters WHERE subject_id=$1 ORDER BY id`, subjectID)
}

func (s *SQLStore) scanChapters(ctx context.Context, query string, args ...any) ([]Chapter, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Chapter{}
	for rows.Next() {
		var c Chapter
		if err := rows.Scan(&c.ID, &c.SubjectID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetChapter(ctx context.Context, id int64) (Chapter, error) {
	var c Chapter
	err := s.db.QueryRowContext(ctx,
		`SELECT id, subject_id, name, description FROM chapters WHERE id=$1`, id).
		Scan(&c.ID, &c.SubjectID, &c.Name, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return Chapter{}, ErrChapterNotFound
	}
	return c, err
}

func (s *SQLStore) UpdateChapter(ctx context.Context, c Chapter) (Chapter, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE chapters SET subject_id=$1, name=$2, description=$3 WHERE id=$4`,
		c.SubjectID, c.Name, c.Description, c.ID)
	if err != nil {
		return Chapter{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Chapter{}, ErrChapterNotFound
	}
	return c, nil
}

func (s *SQLStore) DeleteChapter(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chapters WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrChapterNotFound
	}
	return nil
}

// --- quizzes ---

func (s *SQLStore) CreateQuiz(ctx context.Context, q Quiz) (Quiz, error) {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO quizzes (chapter_id, name, date_of_quiz, time_duration, remarks)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		q.ChapterID, q.Name, q.DateOfQuiz, q.TimeDuration, q.Remarks).Scan(&q.ID)
	if err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (s *SQLStore) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	return s.scanQuizzes(ctx,
		`SELECT id, chapter_id, name, date_of_quiz, time_duration, remarks FROM quizzes ORDER BY id`)
}

func (s *SQLStore) ListQuizzesByChapter(ctx context.Context, chapterID int64) ([]Quiz, error) {
	return s.scanQuizzes(ctx,
		`SELECT id, chapter_id, name, date_of_quiz, time_duration, remarks FROM quizzes WHERE chapter_id=$1 ORDER BY id`,
		chapterID)
}

func (s *SQLStore) scanQuizzes(ctx context.Context, query string, args ...any) ([]Quiz, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Quiz{}
	for rows.Next() {
		var q Quiz
		if err := rows.Scan(&q.ID, &q.ChapterID, &q.Name, &q.DateOfQuiz, &q.TimeDuration, &q.Remarks); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetQuiz(ctx context.Context, id int64) (Quiz, error) {
	var q Quiz
	err := s.db.QueryRowContext(ctx,
		`SELECT id, chapter_id, name, date_of_quiz, time_duration, remarks FROM quizzes WHERE id=$1`, id).
		Scan(&q.ID, &q.ChapterID, &q.Name, &q.DateOfQuiz, &q.TimeDuration, &q.Remarks)
	if errors.Is(err, sql.ErrNoRows) {
		return Quiz{}, ErrQuizNotFound
	}
	return q, err
}

func (s *SQLStore) UpdateQuiz(ctx context.Context, q Quiz) (Quiz, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE quizzes SET chapter_id=$1, name=$2, date_of_quiz=$3, time_duration=$4, remarks=$5 WHERE id=$6`,
		q.ChapterID, q.Name, q.DateOfQuiz, q.TimeDuration, q.Remarks, q.ID)
	if err != nil {
		return Quiz{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Quiz{}, ErrQuizNotFound
	}
	return q, nil
}

func (s *SQLStore) DeleteQuiz(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQuizNotFound
	}
	return nil
}

// --- questions ---

func (s *SQLStore) CreateQuestion(ctx context.Context, q Question) (Question, error) {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO questions (quiz_id, question_statement, option1, option2, option3, option4, correct_option)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		q.QuizID, q.QuestionStatement, q.Option1, q.Option2, q.Option3, q.Option4, q.CorrectOption).Scan(&q.ID)
	if err != nil {
		return Question{}, err
	}
	return q, nil
}

func (s *SQLStore) ListQuestionsByQuiz(ctx context.Context, quizID int64) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quiz_id, question_statement, option1, option2, option3, option4, correct_option
		 FROM questions WHERE quiz_id=$1 ORDER BY id`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Question{}
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.QuestionStatement,
			&q.Option1, &q.Option2, &q.Option3, &q.Option4, &q.CorrectOption); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// ListQuestionsByQuizSafe strips the correct option before the rows leave the
// store, so handlers cannot leak it by accident.
func (s *SQLStore) ListQuestionsByQuizSafe(ctx context.Context, quizID int64) ([]Question, error) {
	qs, err := s.ListQuestionsByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	for i := range qs {
		qs[i].CorrectOption = 0
	}
	return qs, nil
}

func (s *SQLStore) GetQuestion(ctx context.Context, id int64) (Question, error) {
	var q Question
	err := s.db.QueryRowContext(ctx,
		`SELECT id, quiz_id, question_statement, option1, option2, option3, option4, correct_option
		 FROM questions WHERE id=$1`, id).
		Scan(&q.ID, &q.QuizID, &q.QuestionStatement,
			&q.Option1, &q.Option2, &q.Option3, &q.Option4, &q.CorrectOption)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, ErrQuestionNotFound
	}
	return q, err
}

func (s *SQLStore) UpdateQuestion(ctx context.Context, q Question) (Question, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE questions SET quiz_id=$1, question_statement=$2, option1=$3, option2=$4, option3=$5, option4=$6, correct_option=$7
		 WHERE id=$8`,
		q.QuizID, q.QuestionStatement, q.Option1, q.Option2, q.Option3, q.Option4, q.CorrectOption, q.ID)
	if err != nil {
		return Question{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Question{}, ErrQuestionNotFound
	}
	return q, nil
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // sqlite, postgres
		strings.Contains(msg, "duplicate key")
}
