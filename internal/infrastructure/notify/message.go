// Package notify implements ports.Notifier on top of Amazon SES and on top of
// the process log.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/stylematch/waitlist/internal/core/domain"
)

func subject(sub domain.Submission) string {
	return fmt.Sprintf("New %s signup", sub.Kind())
}

// body renders a plain-text summary of sub, one "Label: value" per line.
func body(sub domain.Submission) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}

	switch s := sub.(type) {
	case *domain.Customer:
		line("Name", s.Name)
		line("Email", s.Email)
		line("Style", string(s.Style))
		line("Budget", string(s.Budget))
	case *domain.Merchant:
		line("Business", s.BusinessName)
		line("Contact", s.ContactName)
		line("Email", s.Email)
		line("Category", string(s.Category))
	}
	line("ID", sub.SubmissionID())
	line("Submitted", sub.Received().UTC().Format(time.RFC3339))
	return b.String()
}
