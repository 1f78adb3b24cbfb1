package telegram

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"buddy-hunt/internal/app"
	"buddy-hunt/internal/confetti"
	"buddy-hunt/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// QuizService is the subset of app.QuizService the bot drives.
type QuizService interface {
	Start(ctx context.Context, key app.SessionKey) (app.View, error)
	SelectOption(ctx context.Context, key app.SessionKey, k int) error
	Submit(ctx context.Context, key app.SessionKey) (bool, error)
	Advance(ctx context.Context, key app.SessionKey) error
	View(ctx context.Context, key app.SessionKey) (app.View, error)
	Subscribe(ctx context.Context, key app.SessionKey) (<-chan app.Update, func(), error)
}

type Handler struct {
	bot           Bot
	logger        *zap.Logger
	service       QuizService
	defaultQuizID string
	gif           confetti.GIFOptions
	timeout       int
	seed          func() int64
}

func NewHandler(bot Bot, logger *zap.Logger, service QuizService, defaultQuizID string, gif confetti.GIFOptions) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		bot:           bot,
		logger:        logger,
		service:       service,
		defaultQuizID: defaultQuizID,
		gif:           gif,
		timeout:       60,
		seed:          func() int64 { return time.Now().UnixNano() },
	}
}

// SetPollTimeout sets the long polling timeout in seconds.
func (h *Handler) SetPollTimeout(seconds int) {
	if seconds > 0 {
		h.timeout = seconds
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = h.timeout

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if !update.Message.IsCommand() {
		h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	switch update.Message.Command() {
	case "start":
		quizID := strings.TrimSpace(update.Message.CommandArguments())
		if quizID == "" {
			quizID = h.defaultQuizID
		}
		h.handleStart(ctx, chatID, quizID)
	default:
		h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) handleStart(ctx context.Context, chatID int64, quizID string) {
	key := sessionKey(quizID, chatID)
	view, err := h.service.Start(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrQuizNotFound) {
			h.send(newPlainMessage(chatID, msgQuizNotFound))
			return
		}
		h.logger.Error("failed to start quiz",
			zap.String("session", key.String()),
			zap.Error(err),
		)
		h.send(newPlainMessage(chatID, msgQuizUnavailable))
		return
	}

	h.send(newPlainMessage(chatID, msgWelcome))
	text, kb := renderView(view)
	msg := newMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	h.send(msg)
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data, ok := decodeCallback(cb.Data)
	if !ok || data.Action == actionNoop || cb.Message == nil {
		h.answer(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	key := sessionKey(data.QuizID, chatID)

	current, err := h.service.View(ctx, key)
	if err != nil {
		h.answerError(cb.ID, key, data, err)
		return
	}
	if current.QuestionID != data.QuestionID {
		// The keyboard belongs to a question that is no longer current.
		h.answer(cb.ID, msgQuestionMoved)
		h.editView(chatID, cb.Message.MessageID, current)
		return
	}

	celebrations, err := h.apply(ctx, key, data)
	if err != nil && !app.IsNoop(err) {
		h.answerError(cb.ID, key, data, err)
		return
	}
	h.answer(cb.ID, "")

	if err == nil {
		if view, verr := h.service.View(ctx, key); verr == nil {
			h.editView(chatID, cb.Message.MessageID, view)
		}
	}

	for _, d := range celebrations {
		h.celebrate(chatID, d)
	}
}

func (h *Handler) answerError(callbackID string, key app.SessionKey, data callbackData, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSelection):
		h.answer(callbackID, msgInvalidOption)
	case errors.Is(err, domain.ErrSessionNotFound):
		h.answer(callbackID, msgSessionExpired)
	default:
		h.logger.Error("callback action failed",
			zap.String("session", key.String()),
			zap.String("action", data.Action),
			zap.Error(err),
		)
		h.answer(callbackID, msgQuizUnavailable)
	}
}

// editView replaces the quiz message with view.
func (h *Handler) editView(chatID int64, messageID int, view app.View) {
	text, kb := renderView(view)
	var edit tgbotapi.EditMessageTextConfig
	if kb != nil {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *kb)
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	h.send(edit)
}

// apply runs one action while subscribed to the session, so the celebrations
// the controller emits during the action can be collected afterwards.
func (h *Handler) apply(ctx context.Context, key app.SessionKey, data callbackData) ([]time.Duration, error) {
	updates, cancel, err := h.service.Subscribe(ctx, key)
	if err != nil {
		return nil, err
	}
	defer cancel()

	switch data.Action {
	case actionSelect:
		err = h.service.SelectOption(ctx, key, data.Index)
	case actionSubmit:
		_, err = h.service.Submit(ctx, key)
	case actionAdvance:
		err = h.service.Advance(ctx, key)
	}

	var celebrations []time.Duration
	for {
		select {
		case u := <-updates:
			if u.Celebrate > 0 {
				celebrations = append(celebrations, u.Celebrate)
			}
		default:
			return celebrations, err
		}
	}
}

// celebrate renders a confetti burst lasting d and sends it as an animation.
// Failures are only logged.
func (h *Handler) celebrate(chatID int64, d time.Duration) {
	opts := h.gif
	opts.Duration = d
	opts.Seed = h.seed()

	var buf bytes.Buffer
	if err := confetti.RenderGIF(&buf, opts); err != nil {
		h.logger.Warn("render confetti failed", zap.Error(err))
		return
	}
	anim := tgbotapi.NewAnimation(chatID, tgbotapi.FileBytes{Name: "confetti.gif", Bytes: buf.Bytes()})
	h.send(anim)
}

func (h *Handler) answer(callbackID, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		h.logger.Debug("callback answer failed", zap.Error(err))
	}
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

func sessionKey(quizID string, chatID int64) app.SessionKey {
	return app.SessionKey{QuizID: quizID, UserID: "tg:" + strconv.FormatInt(chatID, 10)}
}
