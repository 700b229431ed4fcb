package usecase

import (
	"context"
	"fmt"
	"html"

	"github.com/vasapolrittideah/loginflow/services/profile-service/internal/model"
	"github.com/vasapolrittideah/loginflow/shared/mailer"
)

type htmlSender interface {
	SendHTML(to []string, subject, htmlBody string) error
}

// MailWelcomeNotifier emails a welcome message to the profile's address.
type MailWelcomeNotifier struct {
	sender  htmlSender
	subject string
}

func NewMailWelcomeNotifier(sender *mailer.Mailer, subject string) *MailWelcomeNotifier {
	return &MailWelcomeNotifier{sender: sender, subject: subject}
}

func (n *MailWelcomeNotifier) NotifyWelcome(_ context.Context, profile *model.Profile) error {
	if profile.Email == "" {
		return nil
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your account is ready. You are on the <b>%s</b> plan.</p>",
		html.EscapeString(profile.Email),
		html.EscapeString(fmt.Sprint(profile.Data["plan"])),
	)

	return n.sender.SendHTML([]string{profile.Email}, n.subject, body)
}
