package testutil

import (
	tele "gopkg.in/telebot.v3"
)

// Reply is a message the handler sent or edited
type Reply struct {
	Text   string
	Markup *tele.ReplyMarkup
}

// FakeContext records what a handler does with a telebot context.
// Methods not overridden here panic through the nil embedded interface.
type FakeContext struct {
	tele.Context

	User          *tele.User
	MessageText   string
	CallbackQuery *tele.Callback
	EditErr       error

	Sent      []Reply
	Edited    []Reply
	Responses []*tele.CallbackResponse
}

// NewMessageContext simulates a text message or command from userID
func NewMessageContext(userID int64, text string) *FakeContext {
	return &FakeContext{
		User:        &tele.User{ID: userID, Username: "tester"},
		MessageText: text,
	}
}

// NewCallbackContext simulates an inline button press already split by telebot
func NewCallbackContext(userID int64, unique, data string) *FakeContext {
	user := &tele.User{ID: userID, Username: "tester"}
	return &FakeContext{
		User: user,
		CallbackQuery: &tele.Callback{
			ID:     "cb",
			Sender: user,
			Unique: unique,
			Data:   data,
		},
	}
}

func (c *FakeContext) Sender() *tele.User { return c.User }

func (c *FakeContext) Text() string { return c.MessageText }

func (c *FakeContext) Callback() *tele.Callback { return c.CallbackQuery }

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	c.Sent = append(c.Sent, newReply(what, opts))
	return nil
}

func (c *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	if c.EditErr != nil {
		return c.EditErr
	}
	c.Edited = append(c.Edited, newReply(what, opts))
	return nil
}

func (c *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		c.Responses = append(c.Responses, &tele.CallbackResponse{})
		return nil
	}
	c.Responses = append(c.Responses, resp...)
	return nil
}

// Last returns the most recent sent or edited message
func (c *FakeContext) Last() Reply {
	if len(c.Sent) > 0 {
		return c.Sent[len(c.Sent)-1]
	}
	if len(c.Edited) > 0 {
		return c.Edited[len(c.Edited)-1]
	}
	return Reply{}
}

// LastResponse returns the text of the most recent callback answer
func (c *FakeContext) LastResponse() string {
	if len(c.Responses) == 0 {
		return ""
	}
	return c.Responses[len(c.Responses)-1].Text
}

// Buttons returns the inline buttons of a markup that have the given unique
func Buttons(markup *tele.ReplyMarkup, unique string) []tele.InlineButton {
	if markup == nil {
		return nil
	}
	var found []tele.InlineButton
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			if btn.Unique == unique {
				found = append(found, btn)
			}
		}
	}
	return found
}

func newReply(what interface{}, opts []interface{}) Reply {
	r := Reply{}
	if s, ok := what.(string); ok {
		r.Text = s
	}
	for _, opt := range opts {
		if m, ok := opt.(*tele.ReplyMarkup); ok {
			r.Markup = m
		}
	}
	return r
}
