package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dictioquiz/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgNoWords      = "📭 No words available for the quiz."
	msgStaleOption  = "This question has already been answered."
	msgQuizOver     = "This quiz is over."
	msgPickAnOption = "Pick one of the options above or press 🏁 Finish."
)

// handleTextQuiz starts a quiz with typed answers
func (h *Handler) handleTextQuiz(c tele.Context) error {
	return h.startQuiz(c, domain.QuizModeText)
}

// handleChoiceQuiz starts a multiple-choice quiz
func (h *Handler) handleChoiceQuiz(c tele.Context) error {
	return h.startQuiz(c, domain.QuizModeChoice)
}

func (h *Handler) startQuiz(c tele.Context, mode domain.QuizMode) error {
	userID := c.Sender().ID
	session := h.quiz.StartSession(mode)

	h.logger.Info("Quiz started",
		zap.Int64("user_id", userID),
		zap.String("session_id", session.ID),
		zap.String("mode", string(mode)),
	)

	h.SetState(userID, &domain.StateData{State: domain.StateQuiz, Quiz: session})
	return h.askNext(c, session, "")
}

// askNext puts the next question of the session on screen, prefixed by feedback on the previous one
func (h *Handler) askNext(c tele.Context, session *domain.QuizSession, prefix string) error {
	list := h.store.Entries()

	markup := &tele.ReplyMarkup{}
	var text string

	switch session.Mode {
	case domain.QuizModeChoice:
		q, err := h.quiz.AskQuestion(list)
		if errors.Is(err, domain.ErrEmptyList) {
			return h.quizUnavailable(c, session, prefix)
		}
		session.Begin(q)

		var b strings.Builder
		fmt.Fprintf(&b, "%s❓ Question %d\n\nWhat is the definition of “%s”?\n\n", prefix, session.Asked, q.Target.Word)
		rows := make([]tele.Row, 0, len(q.Options)+1)
		for i, option := range q.Options {
			fmt.Fprintf(&b, "%d. %s\n", i+1, option)
			label := fmt.Sprintf("%d. %s", i+1, truncate(option, maxButtonText))
			rows = append(rows, markup.Row(markup.Data(label, btnOption.Unique, optionData(session.Asked, i))))
		}
		rows = append(rows, markup.Row(btnFinish))
		markup.Inline(rows...)
		text = b.String()

	default:
		entry, err := h.quiz.NextQuestion(list)
		if errors.Is(err, domain.ErrEmptyList) {
			return h.quizUnavailable(c, session, prefix)
		}
		session.Begin(domain.Question{Target: entry})

		text = fmt.Sprintf("%s❓ Question %d\n\nDefine: %s", prefix, session.Asked, entry.Word)
		markup.Inline(markup.Row(btnFinish))
	}

	return h.reply(c, text, markup)
}

// quizUnavailable ends the session because the list is empty and returns to the menu
func (h *Handler) quizUnavailable(c tele.Context, session *domain.QuizSession, prefix string) error {
	userID := c.Sender().ID
	h.logger.Info("Quiz requested with no words",
		zap.Int64("user_id", userID),
		zap.String("session_id", session.ID),
	)

	if session.Answered > 0 {
		h.stats.RecordQuiz(session)
		prefix += session.Summary() + "\n\n"
	}

	h.ResetState(userID)
	return h.reply(c, prefix+msgNoWords+"\n\n"+mainMenuText, mainMenuMarkup())
}

// answerText checks a typed answer in the running quiz
func (h *Handler) answerText(c tele.Context, session *domain.QuizSession, text string) error {
	if session == nil {
		h.ResetState(c.Sender().ID)
		return c.Send(mainMenuText, mainMenuMarkup())
	}
	if session.Mode == domain.QuizModeChoice {
		return c.Send(msgPickAnOption)
	}
	if !session.Pending {
		return h.askNext(c, session, "")
	}

	correct := h.quiz.CheckAnswer(session.Target, text)
	session.Record(correct)

	h.logger.Debug("Answer checked",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("session_id", session.ID),
		zap.Bool("correct", correct),
	)

	return h.askNext(c, session, feedback(correct, session.Target))
}

// handleOption checks a multiple-choice button press
func (h *Handler) handleOption(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)

	session := state.Quiz
	if state.State != domain.StateQuiz || session == nil || session.Mode != domain.QuizModeChoice {
		return c.Respond(&tele.CallbackResponse{Text: msgQuizOver})
	}

	question, option, ok := parseOptionData(cleanCallbackData(c.Callback().Data))
	if !ok || question != session.Asked || !session.Pending || option < 0 || option >= len(session.Options) {
		return c.Respond(&tele.CallbackResponse{Text: msgStaleOption})
	}

	correct := h.quiz.CheckChoice(session.Target, session.Options[option])
	session.Record(correct)

	h.logger.Debug("Choice checked",
		zap.Int64("user_id", userID),
		zap.String("session_id", session.ID),
		zap.Bool("correct", correct),
	)

	return h.askNext(c, session, feedback(correct, session.Target))
}

// handleFinish ends the running quiz and shows the score
func (h *Handler) handleFinish(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)
	h.ResetState(userID)

	if state.State != domain.StateQuiz || state.Quiz == nil {
		return h.reply(c, mainMenuText, mainMenuMarkup())
	}

	h.stats.RecordQuiz(state.Quiz)
	return h.reply(c, "🏁 Quiz finished\n\n"+state.Quiz.Summary()+"\n\n"+mainMenuText, mainMenuMarkup())
}

func feedback(correct bool, target domain.Entry) string {
	if correct {
		return "✅ Correct!\n\n"
	}
	return fmt.Sprintf("❌ Incorrect! The correct answer is: %s\n\n", target.Definition)
}

func optionData(question, option int) string {
	return strconv.Itoa(question) + ":" + strconv.Itoa(option)
}
