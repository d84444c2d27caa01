package telegram

import (
	"fmt"
	"strings"

	"go-jobpilot-scraper/internal/scraper"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var markdownEscaper = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
	")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
	"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
	"}", "\\}", ".", "\\.", "!", "\\!", "\\", "\\\\",
)

// EscapeMarkdown escapes text for Telegram MarkdownV2.
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

// FormatJob renders a job as a MarkdownV2 message body.
func FormatJob(job scraper.Job) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔥 *%s*\n", EscapeMarkdown(job.Title))
	fmt.Fprintf(&b, "🏢 %s\n", EscapeMarkdown(job.Company))

	loc := job.Location
	if loc == "" {
		loc = "N/A"
	}
	fmt.Fprintf(&b, "📍 %s\n", EscapeMarkdown(loc))

	salary := job.Salary
	if salary == "" {
		salary = scraper.SalaryNotSpecified
	}
	fmt.Fprintf(&b, "💰 %s\n", EscapeMarkdown(salary))

	if len(job.Tags) > 0 {
		fmt.Fprintf(&b, "🛠 %s\n", EscapeMarkdown(strings.Join(job.Tags, " · ")))
	}
	if job.Link != "" {
		fmt.Fprintf(&b, "🔗 [View Job](%s)\n", escapeLink(job.Link))
	}
	return b.String()
}

// inside (...) only ")" and "\" need escaping
func escapeLink(link string) string {
	return strings.NewReplacer("\\", "\\\\", ")", "\\)").Replace(link)
}

func (b *Bot) SendJob(job scraper.Job) error {
	msg := tgbotapi.NewMessage(b.chatID, FormatJob(job))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if job.Link != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("🔗 View Job", job.Link),
			),
		)
	}

	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
