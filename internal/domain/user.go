package domain

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle              UserState = "idle"
	StateWaitingWord       UserState = "waiting_word"
	StateWaitingDefinition UserState = "waiting_definition"
	StateWaitingSearch     UserState = "waiting_search"
	StateQuiz              UserState = "quiz"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State       UserState
	CurrentWord string
	Quiz        *QuizSession

	// Listing shown last, so pagination and deletes can re-render it
	Query string
	Page  int
}
