package app

import "buddy-hunt/internal/domain"

// OptionView is one option as shown to the quiz taker.
type OptionView struct {
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// View is everything a presenter needs to draw the quiz. It is derived from
// controller state only.
type View struct {
	QuizID         string          `json:"quizId"`
	Title          string          `json:"title,omitempty"`
	QuestionID     string          `json:"questionId,omitempty"`
	Number         int             `json:"number"`
	Total          int             `json:"total"`
	Prompt         string          `json:"prompt,omitempty"`
	Options        []OptionView    `json:"options,omitempty"`
	SubmitVisible  bool            `json:"submitVisible"`
	SubmitEnabled  bool            `json:"submitEnabled"`
	AdvanceVisible bool            `json:"advanceVisible"`
	Feedback       domain.Feedback `json:"feedback"`
	Progress       float64         `json:"progress"`
	Finished       bool            `json:"finished"`
	FinishTitle    string          `json:"finishTitle,omitempty"`
	FinishMessage  string          `json:"finishMessage,omitempty"`
}

// View renders the current state.
func (c *Controller) View() View {
	v := View{
		QuizID:   c.quiz.ID,
		Title:    c.quiz.Title,
		Total:    len(c.quiz.Questions),
		Feedback: c.feedback,
		Progress: c.ProgressFraction(),
	}
	if c.Finished() {
		v.Number = v.Total
		v.Finished = true
		v.FinishTitle = c.quiz.FinishTitle
		v.FinishMessage = c.quiz.FinishMessage
		return v
	}

	q := c.current()
	v.QuestionID = q.ID
	v.Number = c.index + 1
	v.Prompt = q.Prompt
	v.Options = make([]OptionView, len(q.Options))
	for i, label := range q.Options {
		v.Options[i] = OptionView{Index: i, Label: label, Selected: i == c.selected}
	}
	v.SubmitVisible = true
	v.SubmitEnabled = c.selected >= 0 && !c.solved
	v.AdvanceVisible = c.solved
	return v
}
