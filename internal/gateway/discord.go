package gateway

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// discordPrefix must start a message for the bot to answer it.
const discordPrefix = "!weather"

type DiscordGateway struct {
	Session *discordgo.Session
	Advisor Advisor
}

func NewDiscordGateway(token string, advisor Advisor) (*DiscordGateway, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentMessageContent

	return &DiscordGateway{
		Session: session,
		Advisor: advisor,
	}, nil
}

func (d *DiscordGateway) Start(ctx context.Context) error {
	remove := d.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot {
			return
		}
		city, ok := discordCity(m.Content)
		if !ok {
			return
		}
		log.Printf("[discord %s] %s", m.Author.Username, city)

		if _, err := s.ChannelMessageSend(m.ChannelID, d.Advisor.Advise(ctx, city)); err != nil {
			log.Printf("discord send failed: %v", err)
		}
	})
	defer remove()

	if err := d.Session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	log.Printf("Discord gateway connected")

	<-ctx.Done()
	return d.Stop()
}

func (d *DiscordGateway) Send(chatID string, text string) error {
	if chatID == "" {
		return fmt.Errorf("invalid channel ID: %q", chatID)
	}
	_, err := d.Session.ChannelMessageSend(chatID, text)
	return err
}

func (d *DiscordGateway) Stop() error {
	return d.Session.Close()
}

// discordCity extracts the city from "!weather <city>".
func discordCity(content string) (string, bool) {
	content = strings.TrimSpace(content)
	if len(content) < len(discordPrefix) || !strings.EqualFold(content[:len(discordPrefix)], discordPrefix) {
		return "", false
	}
	rest := content[len(discordPrefix):]
	if rest != "" && rest[0] != ' ' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
