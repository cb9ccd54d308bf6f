package score

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu     sync.RWMutex
	scores []Score
}

func NewInMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) Create(_ context.Context, sc Score) (Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	if sc.TimeStampOfAttempt == 0 {
		sc.TimeStampOfAttempt = time.Now().Unix()
	}
	m.scores = append(m.scores, sc)
	return sc, nil
}

func (m *memoryStore) ListByUser(_ context.Context, userID int64) ([]Score, error) {
	return m.filter(func(s Score) bool { return s.UserID == userID }), nil
}

func (m *memoryStore) ListByQuiz(_ context.Context, quizID int64) ([]Score, error) {
	return m.filter(func(s Score) bool { return s.QuizID == quizID }), nil
}

func (m *memoryStore) ListAll(_ context.Context) ([]Score, error) {
	return m.filter(func(Score) bool { return true }), nil
}

func (m *memoryStore) AggregateForUser(ctx context.Context, userID int64) (Stats, error) {
	scores, err := m.ListByUser(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	return aggregate(scores), nil
}

func (m *memoryStore) filter(keep func(Score) bool) []Score {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Score{}
	for _, s := range m.scores {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimeStampOfAttempt > out[j].TimeStampOfAttempt
	})
	return out
}
