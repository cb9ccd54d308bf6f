package attempt

import (
	"sync"

	"github.com/quizmaster/quizmaster/internal/grading"
)

// SnapshotStore persists the answer buffer between page reloads, keyed by quiz
// id. Implementations must treat Delete of a missing key as success.
type SnapshotStore interface {
	Save(quizID int64, answers []grading.Answer) error
	// Load returns (answers, true) when a snapshot exists. A snapshot that
	// cannot be decoded is discarded and reported as absent, not as an error.
	Load(quizID int64) ([]grading.Answer, bool, error)
	Delete(quizID int64) error
}

type memorySnapshots struct {
	mu sync.Mutex
	m  map[int64][]grading.Answer
}

func NewMemorySnapshots() SnapshotStore {
	return &memorySnapshots{m: map[int64][]grading.Answer{}}
}

func (s *memorySnapshots) Save(quizID int64, answers []grading.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]grading.Answer, len(answers))
	copy(cp, answers)
	s.m[quizID] = cp
	return nil
}

func (s *memorySnapshots) Load(quizID int64) ([]grading.Answer, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	answers, ok := s.m[quizID]
	if !ok {
		return nil, false, nil
	}
	cp := make([]grading.Answer, len(answers))
	copy(cp, answers)
	return cp, true, nil
}

func (s *memorySnapshots) Delete(quizID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, quizID)
	return nil
}
