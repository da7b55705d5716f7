package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender writes reminders to the application log. It is used when no chat
// is configured.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log.With().Str("component", "reminder").Logger()}
}

func (s *LogSender) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info().Msg(text)
	return nil
}
