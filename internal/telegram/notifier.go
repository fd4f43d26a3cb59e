package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/camuig/paper-broker/internal/config"
	"github.com/camuig/paper-broker/internal/logger"
	"github.com/camuig/paper-broker/internal/storage"
)

type Notifier struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	enabled bool
	logger  *logger.Logger
}

func NewNotifier(cfg *config.Config, log *logger.Logger) *Notifier {
	if !cfg.Telegram.Enabled {
		return &Notifier{enabled: false, logger: log}
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		log.Error("failed to create telegram bot", "error", err)
		return &Notifier{enabled: false, logger: log}
	}

	log.Info("telegram bot connected", "username", bot.Self.UserName)

	return &Notifier{
		bot:     bot,
		chatID:  cfg.Telegram.ChatID,
		enabled: true,
		logger:  log,
	}
}

// NotifyOrder reports a persisted order outcome. Best-effort: failures are
// logged and swallowed.
func (n *Notifier) NotifyOrder(order *storage.Order) {
	emoji := "🟢"
	if order.Status == storage.StatusRejected {
		emoji = "🔴"
	}

	price := "-"
	if order.Price.Valid {
		price = order.Price.Decimal.StringFixed(2)
	}

	msg := fmt.Sprintf("%s *%s %s* #%d\nInstrumento: %d\nCantidad: %d\nPrecio: %s\nEstado: %s",
		emoji, order.Side, order.Type, order.ID,
		order.InstrumentID, order.Size, price, order.Status)
	n.send(msg)
}

func (n *Notifier) NotifyStatus(message string) {
	n.send(message)
}

func (n *Notifier) send(text string) {
	if !n.enabled {
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("send telegram message", "error", err)
	}
}
