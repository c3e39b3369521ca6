package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBot(t *testing.T) *tgbotapi.BotAPI {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/getMe") {
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"wear","username":"wear_bot"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
	}))
	t.Cleanup(srv.Close)

	bot, err := tgbotapi.NewBotAPIWithClient("token", srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)
	return bot
}

func TestTelegram_StopAfterCancelledStart(t *testing.T) {
	tg := &TelegramGateway{Bot: newTestBot(t), Advisor: &echoAdvisor{}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, tg.Start(ctx))

	assert.NotPanics(t, func() {
		assert.NoError(t, tg.Stop())
	})
}

func TestTelegram_StopTwice(t *testing.T) {
	tg := &TelegramGateway{Bot: newTestBot(t), Advisor: &echoAdvisor{}}

	assert.NotPanics(t, func() {
		assert.NoError(t, tg.Stop())
		assert.NoError(t, tg.Stop())
	})
}
