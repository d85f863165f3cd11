package service

import (
	"math/rand/v2"
	"strings"
	"sync"

	"dictioquiz/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Number of wrong definitions offered next to the correct one
const choiceDistractors = 3

// QuizEngine picks questions and checks answers
type QuizEngine struct {
	logger *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuizEngine creates a quiz engine. A nil rng is replaced by a randomly seeded one.
func NewQuizEngine(rng *rand.Rand, logger *zap.Logger) *QuizEngine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &QuizEngine{
		logger: logger,
		rng:    rng,
	}
}

// StartSession creates a fresh session with zeroed counters
func (e *QuizEngine) StartSession(mode domain.QuizMode) *domain.QuizSession {
	s := &domain.QuizSession{
		ID:   uuid.NewString(),
		Mode: mode,
	}
	e.logger.Debug("Quiz session started",
		zap.String("session_id", s.ID),
		zap.String("mode", string(mode)),
	)
	return s
}

// NextQuestion selects one entry uniformly at random
func (e *QuizEngine) NextQuestion(list domain.WordList) (domain.Entry, error) {
	if len(list) == 0 {
		return domain.Entry{}, domain.ErrEmptyList
	}

	e.mu.Lock()
	i := e.rng.IntN(len(list))
	e.mu.Unlock()

	return list[i], nil
}

// CheckAnswer compares the submitted text with the target definition,
// ignoring case and surrounding whitespace
func (e *QuizEngine) CheckAnswer(target domain.Entry, submitted string) bool {
	return normalizeAnswer(submitted) == normalizeAnswer(target.Definition)
}

// AskQuestion builds a multiple-choice question: a random target plus up to
// three definitions of other entries, shuffled. The option count is min(4, len(list)).
func (e *QuizEngine) AskQuestion(list domain.WordList) (domain.Question, error) {
	if len(list) == 0 {
		return domain.Question{}, domain.ErrEmptyList
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	target := e.rng.IntN(len(list))

	others := make([]int, 0, len(list)-1)
	for i := range list {
		if i != target {
			others = append(others, i)
		}
	}
	e.rng.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})

	options := make([]string, 0, choiceDistractors+1)
	options = append(options, list[target].Definition)
	for _, i := range others[:min(choiceDistractors, len(others))] {
		options = append(options, list[i].Definition)
	}
	e.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return domain.Question{Target: list[target], Options: options}, nil
}

// CheckChoice reports whether the chosen option is the target's definition
func (e *QuizEngine) CheckChoice(target domain.Entry, chosen string) bool {
	return chosen == target.Definition
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
