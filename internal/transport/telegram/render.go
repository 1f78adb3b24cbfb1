package telegram

import (
	"fmt"
	"strings"

	"buddy-hunt/internal/app"
	"buddy-hunt/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const progressBarLength = 12

// renderView turns a view into MarkdownV2 text and its inline keyboard. The
// keyboard is nil once the quiz is finished.
func renderView(v app.View) (string, *tgbotapi.InlineKeyboardMarkup) {
	var b strings.Builder

	if v.Title != "" {
		b.WriteString(bold(v.Title))
		b.WriteString("\n")
	}
	b.WriteString(md(buildProgressBar(v.Progress, progressBarLength)))
	b.WriteString("\n\n")

	if v.Finished {
		b.WriteString(bold("🎉 " + v.FinishTitle))
		if v.FinishMessage != "" {
			b.WriteString("\n\n")
			b.WriteString(md(v.FinishMessage))
		}
		return b.String(), nil
	}

	b.WriteString(bold(fmt.Sprintf("第 %d 题： %s", v.Number, v.Prompt)))
	switch v.Feedback.Kind {
	case domain.FeedbackSuccess:
		b.WriteString("\n\n✅ ")
		b.WriteString(md(v.Feedback.Text))
	case domain.FeedbackError:
		b.WriteString("\n\n❌ ")
		b.WriteString(italic(v.Feedback.Text))
	}

	kb := buildQuizKeyboard(v)
	return b.String(), &kb
}

// buildQuizKeyboard lays out one option per row followed by the submit or
// advance button. Disabled controls become noop buttons.
func buildQuizKeyboard(v app.View) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(v.Options)+1)
	for _, opt := range v.Options {
		label := opt.Label
		if opt.Selected {
			label = "🔘 " + label
		} else {
			label = "⚪ " + label
		}
		data := callbackData{Action: actionSelect, QuizID: v.QuizID, QuestionID: v.QuestionID, Index: opt.Index}
		if v.AdvanceVisible {
			data = callbackData{Action: actionNoop}
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, data.encode()),
		))
	}

	switch {
	case v.AdvanceVisible:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(labelAdvance+" ➡️", callbackData{Action: actionAdvance, QuizID: v.QuizID, QuestionID: v.QuestionID}.encode()),
		))
	case v.SubmitVisible && v.SubmitEnabled:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(labelSubmit, callbackData{Action: actionSubmit, QuizID: v.QuizID, QuestionID: v.QuestionID}.encode()),
		))
	case v.SubmitVisible:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("· "+labelSubmit+" ·", callbackData{Action: actionNoop}.encode()),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildProgressBar draws fraction (0..1) as a bar with a percentage.
func buildProgressBar(fraction float64, length int) string {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction * float64(length))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
	return fmt.Sprintf("[%s] %d%%", bar, int(fraction*100))
}
