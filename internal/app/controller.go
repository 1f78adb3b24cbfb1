package app

import (
	"time"

	"buddy-hunt/internal/domain"
)

const (
	// DefaultSuccessCelebration matches the confetti length after a correct answer.
	DefaultSuccessCelebration = 1400 * time.Millisecond
	// DefaultFinalCelebration is played once when the last question is cleared.
	DefaultFinalCelebration = 900 * time.Millisecond

	defaultSuccessText = "回答正确 ✔"
	defaultErrorText   = "回答错误，请再试一次。"
)

// Presenter receives a fresh View after every state change.
type Presenter interface {
	Render(view View)
}

// Celebrator plays the decorative success effect. It must not block.
type Celebrator interface {
	Celebrate(d time.Duration)
}

type nopPresenter struct{}

func (nopPresenter) Render(View) {}

type nopCelebrator struct{}

func (nopCelebrator) Celebrate(time.Duration) {}

// ControllerOption customises a Controller.
type ControllerOption func(*Controller)

// WithPresenter routes renders to p.
func WithPresenter(p Presenter) ControllerOption {
	return func(c *Controller) {
		if p != nil {
			c.presenter = p
		}
	}
}

// WithCelebrator routes success effects to cel.
func WithCelebrator(cel Celebrator) ControllerOption {
	return func(c *Controller) {
		if cel != nil {
			c.celebrator = cel
		}
	}
}

// WithCelebrationDurations overrides the success and final effect lengths.
// Zero values keep the defaults.
func WithCelebrationDurations(success, final time.Duration) ControllerOption {
	return func(c *Controller) {
		if success > 0 {
			c.successCelebration = success
		}
		if final > 0 {
			c.finalCelebration = final
		}
	}
}

// WithFeedbackText overrides the inline success and error lines.
func WithFeedbackText(success, failure string) ControllerOption {
	return func(c *Controller) {
		if success != "" {
			c.successText = success
		}
		if failure != "" {
			c.errorText = failure
		}
	}
}

// Controller is the progressive quiz state machine. It presents questions in
// order, accepts unlimited retries and only moves forward after a correct
// answer. It is not safe for concurrent use; Session serialises access.
type Controller struct {
	quiz domain.Quiz

	index    int
	selected int // -1 when nothing is selected
	solved   bool
	feedback domain.Feedback

	presenter          Presenter
	celebrator         Celebrator
	successCelebration time.Duration
	finalCelebration   time.Duration
	successText        string
	errorText          string
}

// NewController validates quiz and renders its first question.
func NewController(quiz domain.Quiz, opts ...ControllerOption) (*Controller, error) {
	if err := domain.ValidateQuiz(quiz); err != nil {
		return nil, err
	}
	c := &Controller{
		quiz:               quiz,
		selected:           -1,
		presenter:          nopPresenter{},
		celebrator:         nopCelebrator{},
		successCelebration: DefaultSuccessCelebration,
		finalCelebration:   DefaultFinalCelebration,
		successText:        defaultSuccessText,
		errorText:          defaultErrorText,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.render()
	return c, nil
}

// SelectOption marks option k of the current question as selected.
func (c *Controller) SelectOption(k int) error {
	if c.Finished() {
		return domain.ErrFinished
	}
	if c.solved {
		return domain.ErrAlreadySolved
	}
	if k < 0 || k >= len(c.current().Options) {
		return domain.ErrInvalidSelection
	}
	c.selected = k
	c.feedback = domain.Feedback{}
	c.render()
	return nil
}

// Submit checks the selected option. It reports whether the answer was
// correct; a wrong answer leaves the selection in place for a retry.
func (c *Controller) Submit() (bool, error) {
	if c.Finished() {
		return false, domain.ErrFinished
	}
	if c.solved {
		return false, domain.ErrAlreadySolved
	}
	if c.selected < 0 {
		return false, domain.ErrNoSelection
	}

	if c.selected == c.current().CorrectIndex {
		c.solved = true
		c.feedback = domain.Feedback{Kind: domain.FeedbackSuccess, Text: c.successText}
		c.render()
		c.celebrator.Celebrate(c.successCelebration)
		return true, nil
	}

	c.feedback = domain.Feedback{Kind: domain.FeedbackError, Text: c.errorText}
	c.render()
	return false, nil
}

// Advance moves past a correctly answered question, finishing the quiz after
// the last one.
func (c *Controller) Advance() error {
	if c.Finished() {
		return domain.ErrFinished
	}
	if !c.solved {
		return domain.ErrNotSolved
	}

	c.index++
	c.selected = -1
	c.solved = false
	c.feedback = domain.Feedback{}
	c.render()
	if c.Finished() {
		c.celebrator.Celebrate(c.finalCelebration)
	}
	return nil
}

// ProgressFraction is index/total while presenting and exactly 1 once finished.
func (c *Controller) ProgressFraction() float64 {
	if c.Finished() {
		return 1
	}
	return float64(c.index) / float64(len(c.quiz.Questions))
}

// Finished reports whether every question has been answered.
func (c *Controller) Finished() bool {
	return c.index >= len(c.quiz.Questions)
}

// Index is the zero-based position of the current question.
func (c *Controller) Index() int {
	return c.index
}

// Selection returns the selected option, if any.
func (c *Controller) Selection() (int, bool) {
	return c.selected, c.selected >= 0
}

// Quiz returns the quiz being played.
func (c *Controller) Quiz() domain.Quiz {
	return c.quiz
}

func (c *Controller) current() domain.Question {
	return c.quiz.Questions[c.index]
}

func (c *Controller) render() {
	c.presenter.Render(c.View())
}
