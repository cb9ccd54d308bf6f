package attempt

import (
	"errors"
	"sync"

	"github.com/quizmaster/quizmaster/internal/grading"
)

var ErrIndexOutOfRange = errors.New("question index out of range")

// Buffer accumulates the user's selections during one attempt: one slot per
// quiz question, a navigation cursor, and a snapshot written through on every
// mutation so a reload resumes instead of starting over.
type Buffer struct {
	mu        sync.Mutex
	quizID    int64
	answers   []grading.Answer
	cursor    int
	snapshots SnapshotStore
}

// NewBuffer initializes one unanswered slot per question, in quiz order. When
// the snapshot store holds answers for the same quiz and question set, they
// are resumed; a snapshot for a different question set is discarded.
func NewBuffer(quizID int64, questionIDs []int64, snapshots SnapshotStore) (*Buffer, error) {
	b := &Buffer{
		quizID:    quizID,
		answers:   make([]grading.Answer, len(questionIDs)),
		snapshots: snapshots,
	}
	for i, id := range questionIDs {
		b.answers[i] = grading.Answer{QuestionID: id, SelectedOption: grading.Unanswered}
	}

	saved, ok, err := snapshots.Load(quizID)
	if err != nil {
		return nil, err
	}
	if ok && sameQuestionSet(b.answers, saved) {
		copy(b.answers, saved)
		// Park the cursor on the first unanswered question.
		for i, a := range b.answers {
			if a.SelectedOption == grading.Unanswered {
				b.cursor = i
				break
			}
		}
	} else if ok {
		_ = snapshots.Delete(quizID)
	}
	return b, nil
}

func sameQuestionSet(fresh, saved []grading.Answer) bool {
	if len(fresh) != len(saved) {
		return false
	}
	for i := range fresh {
		if fresh[i].QuestionID != saved[i].QuestionID {
			return false
		}
	}
	return true
}

// Select overwrites the slot at index unconditionally; last write wins.
func (b *Buffer) Select(index, option int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.answers) {
		return ErrIndexOutOfRange
	}
	b.answers[index].SelectedOption = option
	return b.snapshots.Save(b.quizID, b.answers)
}

// Next moves the cursor forward without mutating answers. It reports whether
// the cursor moved (false at the last question).
func (b *Buffer) Next() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cursor >= len(b.answers)-1 {
		return false
	}
	b.cursor++
	return true
}

// Prev moves the cursor back without mutating answers.
func (b *Buffer) Prev() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cursor <= 0 {
		return false
	}
	b.cursor--
	return true
}

func (b *Buffer) Cursor() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor
}

// Current returns the answer slot under the cursor.
func (b *Buffer) Current() grading.Answer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.answers[b.cursor]
}

// Answers returns a copy of every slot, answered or not.
func (b *Buffer) Answers() []grading.Answer {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := make([]grading.Answer, len(b.answers))
	copy(cp, b.answers)
	return cp
}

// Unanswered counts the slots still at the sentinel, for the finish
// confirmation step.
func (b *Buffer) Unanswered() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, a := range b.answers {
		if a.SelectedOption == grading.Unanswered {
			n++
		}
	}
	return n
}

func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.answers)
}

// Clear deletes the persisted snapshot after a successful submission.
func (b *Buffer) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshots.Delete(b.quizID)
}
