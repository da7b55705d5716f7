package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestTelegramSenderSendsHTMLToChat(t *testing.T) {
	api := &fakeAPI{}
	sender := &TelegramSender{api: api, chatID: 42}

	require.NoError(t, sender.Send(context.Background(), "<b>Pay rent</b>"))

	require.Len(t, api.sent, 1)
	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "<b>Pay rent</b>", msg.Text)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
}

func TestTelegramSenderWrapsErrors(t *testing.T) {
	boom := errors.New("boom")
	sender := &TelegramSender{api: &fakeAPI{err: boom}, chatID: 1}

	err := sender.Send(context.Background(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestSendersHonourCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	api := &fakeAPI{}
	assert.ErrorIs(t, (&TelegramSender{api: api, chatID: 1}).Send(ctx, "x"), context.Canceled)
	assert.Empty(t, api.sent)
	assert.ErrorIs(t, NewLogSender(zerolog.Nop()).Send(ctx, "x"), context.Canceled)
}

func TestLogSenderWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	sender := NewLogSender(zerolog.New(&buf))

	require.NoError(t, sender.Send(context.Background(), "reminder text"))

	assert.Contains(t, buf.String(), `"message":"reminder text"`)
	assert.Contains(t, buf.String(), `"component":"reminder"`)
}
