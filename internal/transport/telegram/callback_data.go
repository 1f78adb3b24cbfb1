package telegram

import (
	"strconv"
	"strings"
)

// Callback actions. Data looks like "select:<quizID>:<questionID>:<index>";
// the question id lets a tap on an outdated keyboard be recognised.
const (
	actionSelect  = "select"
	actionSubmit  = "submit"
	actionAdvance = "advance"
	actionNoop    = "noop"
)

type callbackData struct {
	Action     string
	QuizID     string
	QuestionID string
	Index      int
}

func (cd callbackData) encode() string {
	switch cd.Action {
	case actionSelect:
		return cd.Action + ":" + cd.QuizID + ":" + cd.QuestionID + ":" + strconv.Itoa(cd.Index)
	case actionNoop:
		return cd.Action
	default:
		return cd.Action + ":" + cd.QuizID + ":" + cd.QuestionID
	}
}

// decodeCallback parses callback data; ok is false for anything this bot did
// not produce.
func decodeCallback(data string) (callbackData, bool) {
	parts := strings.Split(data, ":")
	switch parts[0] {
	case actionNoop:
		return callbackData{Action: actionNoop}, len(parts) == 1
	case actionSubmit, actionAdvance:
		if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
			return callbackData{}, false
		}
		return callbackData{Action: parts[0], QuizID: parts[1], QuestionID: parts[2]}, true
	case actionSelect:
		if len(parts) != 4 || parts[1] == "" || parts[2] == "" {
			return callbackData{}, false
		}
		idx, err := strconv.Atoi(parts[3])
		if err != nil {
			return callbackData{}, false
		}
		return callbackData{Action: actionSelect, QuizID: parts[1], QuestionID: parts[2], Index: idx}, true
	}
	return callbackData{}, false
}
