package attempt

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quizmaster/quizmaster/internal/grading"
)

// FSSnapshots keeps one JSON file per quiz under a base directory, the durable
// analogue of the browser's per-quiz saved-answers key.
type FSSnapshots struct{ base string }

func NewFSSnapshots(base string) (*FSSnapshots, error) {
	if base == "" {
		base = "./data/attempts"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSSnapshots{base: base}, nil
}

func (s *FSSnapshots) path(quizID int64) string {
	return filepath.Join(s.base, fmt.Sprintf("quiz_%d_answers.json", quizID))
}

func (s *FSSnapshots) Save(quizID int64, answers []grading.Answer) error {
	buf, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(quizID), buf, 0o644)
}

func (s *FSSnapshots) Load(quizID int64) ([]grading.Answer, bool, error) {
	buf, err := os.ReadFile(s.path(quizID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var answers []grading.Answer
	if err := json.Unmarshal(buf, &answers); err != nil {
		// Corrupt snapshot: drop it and start the attempt fresh.
		_ = os.Remove(s.path(quizID))
		return nil, false, nil
	}
	return answers, true, nil
}

func (s *FSSnapshots) Delete(quizID int64) error {
	err := os.Remove(s.path(quizID))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
