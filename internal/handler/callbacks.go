package handler

import (
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Telegram rejects callback data longer than this many bytes
const maxCallbackData = 64

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// fitsCallback reports whether payload can travel as data of a button with the given unique.
// telebot encodes it as "\f<unique>|<payload>" and drops anything it cannot parse back.
func fitsCallback(unique, payload string) bool {
	if payload == "" || len(payload)+len(unique)+2 > maxCallbackData {
		return false
	}
	return cleanCallbackData(payload) == payload
}

// parseOptionData splits "<question>:<option>" button data
func parseOptionData(data string) (question, option int, ok bool) {
	q, o, found := strings.Cut(data, ":")
	if !found {
		return 0, 0, false
	}
	question, err := strconv.Atoi(q)
	if err != nil {
		return 0, 0, false
	}
	option, err = strconv.Atoi(o)
	if err != nil {
		return 0, 0, false
	}
	return question, option, true
}

// reply edits the message behind a callback, or sends a new one for commands and text
func (h *Handler) reply(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil {
		return c.Send(text, markup)
	}

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// Same content as before, usually a double tap
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles callbacks no specific endpoint matched,
// e.g. data that telebot could not split into unique and payload
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Info("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	unique := callback.Unique
	if unique == "" {
		unique, _, _ = strings.Cut(data, "|")
	}

	switch unique {
	case btnAddWord.Unique:
		return h.handleAddWord(c)
	case btnListWords.Unique:
		return h.handleListWords(c)
	case btnSearch.Unique:
		return h.handleSearchPrompt(c)
	case btnQuiz.Unique:
		return h.handleTextQuiz(c)
	case btnChoiceQuiz.Unique:
		return h.handleChoiceQuiz(c)
	case btnFinish.Unique:
		return h.handleFinish(c)
	case btnStats.Unique:
		return h.handleStats(c)
	case btnCancel.Unique:
		return h.handleCancel(c)
	case btnBack.Unique:
		return h.handleStart(c)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}
