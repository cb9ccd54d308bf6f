package quiz

import (
	"context"
	"sort"
	"sync"
)

// memoryStore keeps the catalog in maps. It backs tests and demo runs without
// a database file.
type memoryStore struct {
	mu        sync.RWMutex
	nextID    int64
	subjects  map[int64]Subject
	chapters  map[int64]Chapter
	quizzes   map[int64]Quiz
	questions map[int64]Question
}

func NewInMemoryStore() Store {
	return &memoryStore{
		subjects:  map[int64]Subject{},
		chapters:  map[int64]Chapter{},
		quizzes:   map[int64]Quiz{},
		questions: map[int64]Question{},
	}
}

func (m *memoryStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memoryStore) CreateSubject(_ context.Context, s Subject) (Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.subjects {
		if existing.Name == s.Name {
			return Subject{}, ErrDuplicateSubject
		}
	}
	s.ID = m.id()
	m.subjects[s.ID] = s
	return s, nil
}

func (m *memoryStore) ListSubjects(_ context.Context) ([]Subject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Subject, 0, len(m.subjects))
	for _, s := range m.subjects {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStore) GetSubject(_ context.Context, id int64) (Subject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.subjects[id]
	if !ok {
		return Subject{}, ErrSubjectNotFound
	}
	return s, nil
}

func (m *memoryStore) UpdateSubject(_ context.Context, s Subject) (Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subjects[s.ID]; !ok {
		return Subject{}, ErrSubjectNotFound
	}
	m.subjects[s.ID] = s
	return s, nil
}

func (m *memoryStore) DeleteSubject(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subjects[id]; !ok {
		return ErrSubjectNotFound
	}
	delete(m.subjects, id)
	for cid, c := range m.chapters {
		if c.SubjectID == id {
			m.removeChapterTree(cid)
		}
	}
	return nil
}

// removeChapterTree mirrors the schema's ON DELETE CASCADE. Caller holds mu.
func (m *memoryStore) removeChapterTree(chapterID int64) {
	delete(m.chapters, chapterID)
	for qid, q := range m.quizzes {
		if q.ChapterID == chapterID {
			m.removeQuizTree(qid)
		}
	}
}

func (m *memoryStore) removeQuizTree(quizID int64) {
	delete(m.quizzes, quizID)
	for qid, q := range m.questions {
		if q.QuizID == quizID {
			delete(m.questions, qid)
		}
	}
}

func (m *memoryStore) CreateChapter(_ context.Context, c Chapter) (Chapter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.id()
	m.chapters[c.ID] = c
	return c, nil
}

func (m *memoryStore) ListChapters(_ context.Context) ([]Chapter, error) {
	return m.filterChapters(func(Chapter) bool { return true }), nil
}

func (m *memoryStore) ListChaptersBySubject(_ context.Context, subjectID int64) ([]Chapter, error) {
	return m.filterChapters(func(c Chapter) bool { return c.SubjectID == subjectID }), nil
}

func (m *memoryStore) filterChapters(keep func(Chapter) bool) []Chapter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Chapter{}
	for _, c := range m.chapters {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryStore) GetChapter(_ context.Context, id int64) (Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.chapters[id]
	if !ok {
		return Chapter{}, ErrChapterNotFound
	}
	return c, nil
}

func (m *memoryStore) UpdateChapter(_ context.Context, c Chapter) (Chapter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chapters[c.ID]; !ok {
		return Chapter{}, ErrChapterNotFound
	}
	m.chapters[c.ID] = c
	return c, nil
}

func (m *memoryStore) DeleteChapter(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chapters[id]; !ok {
		return ErrChapterNotFound
	}
	m.removeChapterTree(id)
	return nil
}

func (m *memoryStore) CreateQuiz(_ context.Context, q Quiz) (Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q.ID = m.id()
	q.Questions = nil
	m.quizzes[q.ID] = q
	return q, nil
}

func (m *memoryStore) ListQuizzes(_ context.Context) ([]Quiz, error) {
	return m.filterQuizzes(func(Quiz) bool { return true }), nil
}

func (m *memoryStore) ListQuizzesByChapter(_ context.Context, chapterID int64) ([]Quiz, error) {
	return m.filterQuizzes(func(q Quiz) bool { return q.ChapterID == chapterID }), nil
}

func (m *memoryStore) filterQuizzes(keep func(Quiz) bool) []Quiz {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Quiz{}
	for _, q := range m.quizzes {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryStore) GetQuiz(_ context.Context, id int64) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, ErrQuizNotFound
	}
	return q, nil
}

func (m *memoryStore) UpdateQuiz(_ context.Context, q Quiz) (Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[q.ID]; !ok {
		return Quiz{}, ErrQuizNotFound
	}
	q.Questions = nil
	m.quizzes[q.ID] = q
	return q, nil
}

func (m *memoryStore) DeleteQuiz(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[id]; !ok {
		return ErrQuizNotFound
	}
	m.removeQuizTree(id)
	return nil
}

func (m *memoryStore) CreateQuestion(_ context.Context, q Question) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[q.QuizID]; !ok {
		return Question{}, ErrQuizNotFound
	}
	q.ID = m.id()
	m.questions[q.ID] = q
	return q, nil
}

func (m *memoryStore) ListQuestionsByQuiz(_ context.Context, quizID int64) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Question{}
	for _, q := range m.questions {
		if q.QuizID == quizID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStore) ListQuestionsByQuizSafe(ctx context.Context, quizID int64) ([]Question, error) {
	qs, err := m.ListQuestionsByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	for i := range qs {
		qs[i].CorrectOption = 0
	}
	return qs, nil
}

func (m *memoryStore) GetQuestion(_ context.Context, id int64) (Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.questions[id]
	if !ok {
		return Question{}, ErrQuestionNotFound
	}
	return q, nil
}

func (m *memoryStore) UpdateQuestion(_ context.Context, q Question) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.questions[q.ID]; !ok {
		return Question{}, ErrQuestionNotFound
	}
	m.questions[q.ID] = q
	return q, nil
}

func (m *memoryStore) DeleteQuestion(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.questions[id]; !ok {
		return ErrQuestionNotFound
	}
	delete(m.questions, id)
	return nil
}
