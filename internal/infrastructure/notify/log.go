package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stylematch/waitlist/internal/core/domain"
	"github.com/stylematch/waitlist/pkg/logger"
)

// LogNotifier writes a redacted line per submission. Used when no mail
// transport is configured.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, sub domain.Submission) error {
	n.log.Info().
		Str("kind", string(sub.Kind())).
		Str("id", sub.SubmissionID()).
		Str("email", logger.RedactEmail(sub.ContactEmail())).
		Time("submitted_at", sub.Received()).
		Msg(subject(sub))
	return nil
}
