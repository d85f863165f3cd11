package handler

import (
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command and the main menu button
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User opened main menu",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	h.ResetState(userID)
	return h.reply(c, mainMenuText, mainMenuMarkup())
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	h.ResetState(c.Sender().ID)
	return h.reply(c, mainMenuText, mainMenuMarkup())
}

// handleStats shows collection size and quiz totals
func (h *Handler) handleStats(c tele.Context) error {
	stats := h.stats.Current()

	text := fmt.Sprintf(
		"📊 Stats\n\n📚 Words: %d\n🏁 Quizzes finished: %d\n✅ Correct answers: %d/%d (%d%%)",
		stats.Words,
		stats.QuizzesFinished,
		stats.Correct,
		stats.Answered,
		stats.Accuracy(),
	)

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnBack))
	return h.reply(c, text, markup)
}
