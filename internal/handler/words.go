package handler

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"dictioquiz/internal/domain"

	tele "gopkg.in/telebot.v3"
)

const (
	pageSize = 10
	// Keeps a full page well under Telegram's message size limit
	maxListedDefinition = 200
	maxButtonText       = 40
)

// handleListWords shows the whole dictionary
func (h *Handler) handleListWords(c tele.Context) error {
	return h.showWords(c, "", 1)
}

// handleSearchPrompt waits for a search query
func (h *Handler) handleSearchPrompt(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingSearch})
	return h.reply(c, "🔍 Send a word or part of a definition to search for:", cancelMarkup())
}

// handleSearchCommand handles /search <query>
func (h *Handler) handleSearchCommand(c tele.Context) error {
	return h.showWords(c, commandPayload(c.Text()), 1)
}

// handlePage handles page navigation of the current listing
func (h *Handler) handlePage(c tele.Context) error {
	page, err := strconv.Atoi(cleanCallbackData(c.Callback().Data))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}

	state := h.GetState(c.Sender().ID)
	return h.showWords(c, state.Query, page)
}

// showWords renders one page of entries matching query and remembers the listing
func (h *Handler) showWords(c tele.Context, query string, page int) error {
	matches := slices.Collect(h.store.Search(query))

	totalPages := (len(matches) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	page = min(max(page, 1), totalPages)

	h.SetState(c.Sender().ID, &domain.StateData{
		State: domain.StateIdle,
		Query: query,
		Page:  page,
	})

	if len(matches) == 0 {
		text := "📭 Your dictionary is empty. Press ➕ Add word to start."
		if query != "" {
			text = fmt.Sprintf("🔍 Nothing found for “%s”.", query)
		}
		return h.reply(c, text+"\n\n"+mainMenuText, mainMenuMarkup())
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(matches))

	text, markup := renderWordPage(query, matches[start:end], start, len(matches), page, totalPages)
	return h.reply(c, text, markup)
}

// renderWordPage builds the listing text and its keyboard
func renderWordPage(query string, entries []domain.Entry, offset, total, page, totalPages int) (string, *tele.ReplyMarkup) {
	var b strings.Builder
	if query == "" {
		fmt.Fprintf(&b, "📚 Your words (%d)", total)
	} else {
		fmt.Fprintf(&b, "🔍 Results for “%s” (%d)", query, total)
	}
	if totalPages > 1 {
		fmt.Fprintf(&b, ", page %d/%d", page, totalPages)
	}
	b.WriteString(":\n\n")

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	undeletable := false

	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s — %s\n", offset+i+1, e.Word, truncate(e.Definition, maxListedDefinition))

		if !fitsCallback(btnDelete.Unique, e.Word) {
			undeletable = true
			continue
		}
		rows = append(rows, markup.Row(markup.Data("🗑 "+truncate(e.Word, maxButtonText), btnDelete.Unique, e.Word)))
	}

	if undeletable {
		b.WriteString("\nUse /delete <word> for entries without a 🗑 button.\n")
	}

	// Add pagination buttons
	if totalPages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", btnPage.Unique, strconv.Itoa(page-1)))
		}
		if page < totalPages {
			navRow = append(navRow, markup.Data("➡️", btnPage.Unique, strconv.Itoa(page+1)))
		}
		rows = append(rows, navRow)
	}

	// Add back button
	rows = append(rows, markup.Row(btnBack))

	markup.Inline(rows...)
	return b.String(), markup
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
