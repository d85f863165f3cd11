package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"dictioquiz/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgFillBoth      = "⚠️ Both fields must be filled."
	msgDuplicateWord = "⚠️ This word already exists."
	msgNotPersisted  = "⚠️ The change is kept for now, but the word list could not be written to storage."
	msgTryLater      = "Something went wrong. Please try again later."
)

// handleAddWord starts the add-word flow
func (h *Handler) handleAddWord(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingWord})
	return h.reply(c, "✏️ Send the word you want to add:", cancelMarkup())
}

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingWord:
		return h.receiveWord(c, userID, text)

	case domain.StateWaitingDefinition:
		return h.receiveDefinition(c, userID, state.CurrentWord, text)

	case domain.StateWaitingSearch:
		return h.showWords(c, text, 1)

	case domain.StateQuiz:
		return h.answerText(c, state.Quiz, text)

	default:
		// Idle state - treat text as a search query
		return h.showWords(c, text, 1)
	}
}

func (h *Handler) receiveWord(c tele.Context, userID int64, word string) error {
	if word == "" {
		return c.Send(msgFillBoth, cancelMarkup())
	}
	if h.store.Entries().Contains(word) {
		return c.Send(msgDuplicateWord+"\n\nSend another word:", cancelMarkup())
	}

	h.SetState(userID, &domain.StateData{
		State:       domain.StateWaitingDefinition,
		CurrentWord: word,
	})
	return c.Send(fmt.Sprintf("📖 Now send the definition of “%s”:", word), cancelMarkup())
}

func (h *Handler) receiveDefinition(c tele.Context, userID int64, word, definition string) error {
	err := h.store.Add(word, definition)

	var writeErr *domain.StorageWriteError
	switch {
	case errors.Is(err, domain.ErrEmptyField):
		return c.Send(msgFillBoth, cancelMarkup())

	case errors.Is(err, domain.ErrDuplicateWord):
		h.SetState(userID, &domain.StateData{State: domain.StateWaitingWord})
		return c.Send(msgDuplicateWord+"\n\nSend another word:", cancelMarkup())

	case errors.As(err, &writeErr):
		h.ResetState(userID)
		return c.Send(msgNotPersisted+"\n\n"+mainMenuText, mainMenuMarkup())

	case err != nil:
		h.logger.Error("Failed to add word",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		h.ResetState(userID)
		return c.Send(msgTryLater, mainMenuMarkup())
	}

	h.logger.Info("Word added",
		zap.Int64("user_id", userID),
		zap.String("word", word),
	)

	h.ResetState(userID)
	return c.Send(
		fmt.Sprintf("✅ Saved!\n\n📝 %s — %s\n\n%s", word, strings.TrimSpace(definition), mainMenuText),
		mainMenuMarkup(),
	)
}

// handleDeleteCommand handles /delete <word>
func (h *Handler) handleDeleteCommand(c tele.Context) error {
	word := commandPayload(c.Text())
	if word == "" {
		return c.Send("Usage: /delete <word>")
	}

	removed, err := h.store.Remove(word)
	if err != nil {
		return c.Send(msgNotPersisted)
	}
	if removed == 0 {
		return c.Send(fmt.Sprintf("“%s” is not in your dictionary.", word))
	}

	h.logger.Info("Word deleted",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("word", word),
	)
	return c.Send(fmt.Sprintf("🗑 Deleted “%s”.", word), mainMenuMarkup())
}

// handleDeleteButton removes the word carried by the button and re-renders the listing
func (h *Handler) handleDeleteButton(c tele.Context) error {
	userID := c.Sender().ID
	word := c.Callback().Data

	removed, err := h.store.Remove(word)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: msgNotPersisted, ShowAlert: true})
	}
	if removed == 0 {
		return c.Respond(&tele.CallbackResponse{Text: "Already deleted"})
	}

	h.logger.Info("Word deleted",
		zap.Int64("user_id", userID),
		zap.String("word", word),
	)

	state := h.GetState(userID)
	return h.showWords(c, state.Query, state.Page)
}

// commandPayload returns the text after the command token
func commandPayload(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text
	}
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		return strings.TrimSpace(text[i:])
	}
	return ""
}
