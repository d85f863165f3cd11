package service

import (
	"sync"

	"dictioquiz/internal/domain"

	"go.uber.org/zap"
)

// Stats summarises the collection and finished quizzes
type Stats struct {
	Words           int
	QuizzesFinished int
	Answered        int
	Correct         int
}

// Accuracy returns the share of correct answers in percent
func (s Stats) Accuracy() int {
	if s.Answered == 0 {
		return 0
	}
	return s.Correct * 100 / s.Answered
}

// StatsService accumulates quiz results for the process lifetime
type StatsService struct {
	store  *WordStore
	logger *zap.Logger

	mu       sync.Mutex
	finished int
	answered int
	correct  int
}

// NewStatsService creates a new stats service
func NewStatsService(store *WordStore, logger *zap.Logger) *StatsService {
	return &StatsService{
		store:  store,
		logger: logger,
	}
}

// RecordQuiz adds a finished session to the totals
func (s *StatsService) RecordQuiz(session *domain.QuizSession) {
	s.mu.Lock()
	s.finished++
	s.answered += session.Answered
	s.correct += session.Score
	s.mu.Unlock()

	s.logger.Info("Quiz finished",
		zap.String("session_id", session.ID),
		zap.String("mode", string(session.Mode)),
		zap.Int("score", session.Score),
		zap.Int("answered", session.Answered),
	)
}

// Current returns a snapshot of the statistics
func (s *StatsService) Current() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Words:           s.store.Len(),
		QuizzesFinished: s.finished,
		Answered:        s.answered,
		Correct:         s.correct,
	}
}
