package domain

import "fmt"

// QuizMode selects how answers are submitted
type QuizMode string

const (
	QuizModeText   QuizMode = "text"
	QuizModeChoice QuizMode = "choice"
)

// Question is a multiple-choice question: the target entry and the
// shuffled definitions shown as options
type Question struct {
	Target  Entry
	Options []string
}

// QuizSession holds the transient state of one quiz run
type QuizSession struct {
	ID       string
	Mode     QuizMode
	Target   Entry
	Options  []string
	Pending  bool
	Asked    int
	Answered int
	Score    int
}

// Begin makes q the pending question
func (s *QuizSession) Begin(q Question) {
	s.Target = q.Target
	s.Options = q.Options
	s.Pending = true
	s.Asked++
}

// Record closes the pending question with the given result.
// It is a no-op when no question is pending.
func (s *QuizSession) Record(correct bool) {
	if !s.Pending {
		return
	}
	s.Pending = false
	s.Answered++
	if correct {
		s.Score++
	}
}

// Summary returns the score line shown when the quiz ends
func (s *QuizSession) Summary() string {
	return fmt.Sprintf("Your score: %d/%d", s.Score, s.Answered)
}
