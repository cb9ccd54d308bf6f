package quiz

type Subject struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Chapters []Chapter `json:"chapters,omitempty"`
}

type Chapter struct {
	ID          int64  `json:"id"`
	SubjectID   int64  `json:"subject_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Quiz belongs to a chapter. TimeDuration is the canonical "HH:MM" limit
// stored by the admin; the attempt package resolves it to seconds.
type Quiz struct {
	ID           int64  `json:"id"`
	ChapterID    int64  `json:"chapter_id"`
	Name         string `json:"name"`
	DateOfQuiz   int64  `json:"date_of_quiz"`
	TimeDuration string `json:"time_duration"`
	Remarks      string `json:"remarks,omitempty"`

	// TimeLimitSeconds is the resolved limit served on the quiz detail view.
	// Not a stored column; handlers fill it from TimeDuration.
	TimeLimitSeconds int `json:"time_limit_seconds,omitempty"`

	Questions []Question `json:"questions,omitempty"`
}

// Question is a four-option MCQ. CorrectOption is 1-4 and is zeroed (and thus
// omitted from JSON) when the question is served to quiz takers.
type Question struct {
	ID                int64  `json:"id"`
	QuizID            int64  `json:"quiz_id"`
	QuestionStatement string `json:"question_statement"`
	Option1           string `json:"option1"`
	Option2           string `json:"option2"`
	Option3           string `json:"option3"`
	Option4           string `json:"option4"`
	CorrectOption     int    `json:"correct_option,omitempty"`
}
