package telegram

import (
	"strings"
	"testing"

	"buddy-hunt/internal/app"
	"buddy-hunt/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestRenderViewWithSelection(t *testing.T) {
	v := app.View{
		QuizID:        "quiz-1",
		QuestionID:    "q1",
		Title:         "Buddy Hunt",
		Number:        1,
		Total:         3,
		Prompt:        "pick one",
		Options:       []app.OptionView{{Index: 0, Label: "a"}, {Index: 1, Label: "b", Selected: true}},
		SubmitVisible: true,
		SubmitEnabled: true,
		Feedback:      domain.Feedback{Kind: domain.FeedbackError, Text: "再试一次."},
	}

	text, kb := renderView(v)
	require.NotNil(t, kb)
	require.Contains(t, text, "*Buddy Hunt*")
	require.Contains(t, text, "第 1 题")
	require.Contains(t, text, "再试一次\\.")

	rows := kb.InlineKeyboard
	require.Len(t, rows, 3)
	require.True(t, strings.HasPrefix(rows[1][0].Text, "🔘"))
	require.Equal(t, "select:quiz-1:q1:0", *rows[0][0].CallbackData)
	require.Equal(t, "submit:quiz-1:q1", *rows[2][0].CallbackData)
}

func TestRenderViewSolvedLocksOptions(t *testing.T) {
	v := app.View{
		QuizID:         "quiz-1",
		QuestionID:     "q1",
		Number:         1,
		Total:          3,
		Options:        []app.OptionView{{Index: 0, Label: "a", Selected: true}, {Index: 1, Label: "b"}},
		SubmitVisible:  true,
		AdvanceVisible: true,
		Feedback:       domain.Feedback{Kind: domain.FeedbackSuccess, Text: "ok"},
	}

	_, kb := renderView(v)
	require.NotNil(t, kb)
	rows := kb.InlineKeyboard
	require.Equal(t, "noop", *rows[0][0].CallbackData)
	require.Equal(t, "advance:quiz-1:q1", *rows[2][0].CallbackData)
}

func TestRenderViewDisabledSubmit(t *testing.T) {
	v := app.View{
		QuizID:        "quiz-1",
		Options:       []app.OptionView{{Index: 0, Label: "a"}, {Index: 1, Label: "b"}},
		SubmitVisible: true,
	}
	_, kb := renderView(v)
	require.Equal(t, "noop", *kb.InlineKeyboard[2][0].CallbackData)
}

func TestRenderFinishedView(t *testing.T) {
	text, kb := renderView(app.View{
		Finished:      true,
		Progress:      1,
		FinishTitle:   "恭喜你答对了所有问题！",
		FinishMessage: "locker 204.",
	})
	require.Nil(t, kb)
	require.Contains(t, text, "恭喜你答对了所有问题！")
	require.Contains(t, text, "locker 204\\.")
	require.Contains(t, text, "100%")
}

func TestBuildProgressBar(t *testing.T) {
	require.Equal(t, "[█████░░░░░] 50%", buildProgressBar(0.5, 10))
	require.Equal(t, "[░░░░░░░░░░] 0%", buildProgressBar(-1, 10))
	require.Equal(t, "[██████████] 100%", buildProgressBar(1, 10))
}

func TestCallbackData(t *testing.T) {
	cases := []callbackData{
		{Action: actionSelect, QuizID: "buddy-hunt", QuestionID: "2", Index: 2},
		{Action: actionSubmit, QuizID: "buddy-hunt", QuestionID: "2"},
		{Action: actionAdvance, QuizID: "buddy-hunt", QuestionID: "3"},
		{Action: actionNoop},
	}
	for _, cd := range cases {
		got, ok := decodeCallback(cd.encode())
		require.True(t, ok, cd.encode())
		require.Equal(t, cd, got)
	}

	for _, bad := range []string{"", "select:q", "select:q:1", "select:q:1:x", "select:q::1", "submit", "submit:q", "submit:q:", "name:3"} {
		_, ok := decodeCallback(bad)
		require.False(t, ok, bad)
	}
}
