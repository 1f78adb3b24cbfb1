package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const (
	msgWelcome         = "欢迎来到 Buddy Hunt！答对所有问题即可获得线索。"
	msgUnknownCommand  = "未知命令。发送 /start 开始答题。"
	msgQuizUnavailable = "这个问答暂时无法开始，请稍后再试。"
	msgQuizNotFound    = "找不到这个问答。"
	msgSessionExpired  = "会话已过期，请发送 /start 重新开始。"
	msgInvalidOption   = "无效的选项"
	msgQuestionMoved   = "这道题已经过去了，已显示当前题目。"

	labelSubmit  = "提交"
	labelAdvance = "下一题"
)

func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}
