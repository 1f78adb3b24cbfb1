package domain

// Question is one multiple-choice question with exactly one correct option.
type Question struct {
	ID           string   `json:"id" yaml:"id"`
	Prompt       string   `json:"prompt" yaml:"prompt"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correctIndex" yaml:"correct_index"`
}

// Quiz is an ordered list of questions plus the text shown once all are answered.
type Quiz struct {
	ID            string     `json:"id" yaml:"id"`
	Title         string     `json:"title" yaml:"title"`
	Questions     []Question `json:"questions" yaml:"questions"`
	FinishTitle   string     `json:"finishTitle" yaml:"finish_title"`
	FinishMessage string     `json:"finishMessage" yaml:"finish_message"`
}

// FeedbackKind tags the inline feedback line.
type FeedbackKind string

const (
	FeedbackNone    FeedbackKind = ""
	FeedbackSuccess FeedbackKind = "success"
	FeedbackError   FeedbackKind = "error"
)

// Feedback is the result line shown under the options.
type Feedback struct {
	Kind FeedbackKind `json:"kind"`
	Text string       `json:"text"`
}
