package gateway

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramGateway struct {
	Bot     *tgbotapi.BotAPI
	Advisor Advisor

	stopOnce sync.Once
}

func NewTelegramGateway(token string, advisor Advisor) (*TelegramGateway, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	return &TelegramGateway{
		Bot:     bot,
		Advisor: advisor,
	}, nil
}

func (tg *TelegramGateway) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := tg.Bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			tg.stopReceiving()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}

			text := commandText(update.Message.Text)
			if text == "" {
				continue
			}
			from := "unknown"
			if update.Message.From != nil {
				from = update.Message.From.UserName
			}
			log.Printf("[telegram %s] %s", from, text)

			reply := tg.Advisor.Advise(ctx, text)
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, reply)
			if _, err := tg.Bot.Send(msg); err != nil {
				log.Printf("telegram send failed: %v", err)
			}
		}
	}
}

func (tg *TelegramGateway) Send(chatID string, text string) error {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil || id == 0 {
		return fmt.Errorf("invalid chat ID: %s", chatID)
	}

	msg := tgbotapi.NewMessage(id, text)
	_, err = tg.Bot.Send(msg)
	return err
}

func (tg *TelegramGateway) Stop() error {
	tg.stopReceiving()
	return nil
}

// stopReceiving closes the bot's update loop; the library panics on a second close.
func (tg *TelegramGateway) stopReceiving() {
	tg.stopOnce.Do(tg.Bot.StopReceivingUpdates)
}

// commandText strips a leading bot command such as "/weather" or
// "/start@bot"; a bare command yields "".
func commandText(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text
	}
	_, rest, _ := strings.Cut(text, " ")
	return strings.TrimSpace(rest)
}
