package ports

import (
	"context"

	"github.com/stylematch/waitlist/internal/core/domain"
)

// Notifier delivers an out-of-band summary of a new submission.
type Notifier interface {
	Notify(ctx context.Context, sub domain.Submission) error
}

// NotificationQueue hands submissions to background notifier workers.
// Enqueue never blocks the caller.
type NotificationQueue interface {
	Enqueue(sub domain.Submission)
}
