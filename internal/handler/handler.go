package handler

import (
	"sync"

	"dictioquiz/internal/domain"
	"dictioquiz/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot    *tele.Bot
	store  *service.WordStore
	quiz   *service.QuizEngine
	stats  *service.StatsService
	logger *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Serializes updates of a single user
	userLocks map[int64]*sync.Mutex
	lockMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	store *service.WordStore,
	quiz *service.QuizEngine,
	stats *service.StatsService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:       bot,
		store:     store,
		quiz:      quiz,
		stats:     stats,
		logger:    logger,
		states:    make(map[int64]*domain.StateData),
		userLocks: make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.serialized(h.handleStart))
	h.bot.Handle("/search", h.serialized(h.handleSearchCommand))
	h.bot.Handle("/delete", h.serialized(h.handleDeleteCommand))
	h.bot.Handle("/quiz", h.serialized(h.handleTextQuiz))
	h.bot.Handle("/choice", h.serialized(h.handleChoiceQuiz))
	h.bot.Handle("/finish", h.serialized(h.handleFinish))
	h.bot.Handle("/stats", h.serialized(h.handleStats))

	// Text messages
	h.bot.Handle(tele.OnText, h.serialized(h.handleText))

	// Callback queries (inline buttons)
	h.bot.Handle(&btnAddWord, h.serialized(h.handleAddWord))
	h.bot.Handle(&btnListWords, h.serialized(h.handleListWords))
	h.bot.Handle(&btnSearch, h.serialized(h.handleSearchPrompt))
	h.bot.Handle(&btnQuiz, h.serialized(h.handleTextQuiz))
	h.bot.Handle(&btnChoiceQuiz, h.serialized(h.handleChoiceQuiz))
	h.bot.Handle(&btnFinish, h.serialized(h.handleFinish))
	h.bot.Handle(&btnStats, h.serialized(h.handleStats))
	h.bot.Handle(&btnCancel, h.serialized(h.handleCancel))
	h.bot.Handle(&btnBack, h.serialized(h.handleStart))

	// Buttons carrying a payload
	h.bot.Handle(&btnDelete, h.serialized(h.handleDeleteButton))
	h.bot.Handle(&btnPage, h.serialized(h.handlePage))
	h.bot.Handle(&btnOption, h.serialized(h.handleOption))

	// Generic callback handler for anything that slipped through
	h.bot.Handle(tele.OnCallback, h.serialized(h.handleCallback))
}

// serialized runs next while holding the sender's lock
func (h *Handler) serialized(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Sender() == nil {
			return nil
		}
		lock := h.userLock(c.Sender().ID)
		lock.Lock()
		defer lock.Unlock()
		return next(c)
	}
}

func (h *Handler) userLock(userID int64) *sync.Mutex {
	h.lockMux.Lock()
	defer h.lockMux.Unlock()

	lock, exists := h.userLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.userLocks[userID] = lock
	}
	return lock
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state, dropping any running quiz
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// Inline keyboard buttons
var (
	btnAddWord = tele.Btn{
		Unique: "add_word",
		Text:   "➕ Add word",
	}
	btnListWords = tele.Btn{
		Unique: "list_words",
		Text:   "📚 Words",
	}
	btnSearch = tele.Btn{
		Unique: "search",
		Text:   "🔍 Search",
	}
	btnQuiz = tele.Btn{
		Unique: "quiz",
		Text:   "📝 Quiz",
	}
	btnChoiceQuiz = tele.Btn{
		Unique: "choice_quiz",
		Text:   "🔘 Choice quiz",
	}
	btnStats = tele.Btn{
		Unique: "stats",
		Text:   "📊 Stats",
	}
	btnFinish = tele.Btn{
		Unique: "finish",
		Text:   "🏁 Finish",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnBack = tele.Btn{
		Unique: "back",
		Text:   "🏠 Main menu",
	}

	// Payload buttons; the Data field is filled per message
	btnDelete = tele.Btn{Unique: "del"}
	btnPage   = tele.Btn{Unique: "page"}
	btnOption = tele.Btn{Unique: "opt"}
)

const mainMenuText = "🏠 Main menu\n\nChoose an action:"

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnAddWord, btnListWords),
		menu.Row(btnSearch),
		menu.Row(btnQuiz, btnChoiceQuiz),
		menu.Row(btnStats),
	)
	return menu
}

func cancelMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnCancel))
	return menu
}
