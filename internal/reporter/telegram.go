// Package reporter announces posted jobs to a Telegram chat.
package reporter

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-jobboard/internal/models"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramReporter struct {
	bot    sender
	chatID int64
}

// NewTelegramReporter logs the bot in with token. It fails when the token is rejected.
func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

// JobPosted sends the announcement for a posting the directory accepted.
func (t *TelegramReporter) JobPosted(ctx context.Context, payload models.PostJobPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.SendMessage(FormatJob(payload)); err != nil {
		return fmt.Errorf("send job announcement: %w", err)
	}
	return nil
}

// FormatJob builds the HTML announcement. Empty fields read N/A.
func FormatJob(p models.PostJobPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔥 <b>%s</b>\n", html.EscapeString(orNA(p.Title)))
	fmt.Fprintf(&b, "💰 %s\n", salaryText(p.SalaryMin, p.SalaryMax))
	fmt.Fprintf(&b, "📍 %s\n", html.EscapeString(orNA(p.Location)))
	fmt.Fprintf(&b, "🛠 %s\n", html.EscapeString(orNA(p.Skills)))
	if p.CreatedAt != "" {
		fmt.Fprintf(&b, "📅 %s\n", html.EscapeString(p.CreatedAt))
	}
	if desc := strings.TrimSpace(p.Description); desc != "" {
		fmt.Fprintf(&b, "\n%s", html.EscapeString(desc))
	}
	return strings.TrimRight(b.String(), "\n")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func salaryText(min, max *int) string {
	return salaryPart(min) + " - " + salaryPart(max)
}

func salaryPart(v *int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%d", *v)
}
