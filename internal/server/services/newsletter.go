package services

import (
	"bytes"
	"context"
	"html/template"
	"strings"

	"github.com/formifyx/backend/internal/common"
	"github.com/formifyx/backend/internal/logging"
	"github.com/formifyx/backend/internal/server/mail"
)

const welcomeSubject = "Welcome to FormifyX!"

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<div style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 10px;">
  <h1 style="color: #007BFF; text-align: center;">Welcome to FormifyX!</h1>
  <p style="font-size: 16px; line-height: 1.6;">
    Thank you for subscribing to FormifyX! You'll receive updates on early access and exclusive offers.
  </p>
  <p style="font-size: 16px; line-height: 1.6;">
    We're excited to have you on board. Stay tuned for the latest news, tips, and updates.
  </p>
  <div style="text-align: center; margin-top: 30px;">
    <a href="{{.SiteURL}}" style="background-color: #007BFF; color: #fff; padding: 10px 20px; text-decoration: none; border-radius: 5px; font-size: 16px;">
      Visit Our Website
    </a>
  </div>
</div>
`))

// NewsletterService sends the welcome mail to new subscribers. Subscribers
// are not stored.
type NewsletterService struct {
	sender  mail.Sender
	from    string
	siteURL string
	logger  logging.Logger
}

func NewNewsletterService(sender mail.Sender, from, siteURL string, logger logging.Logger) *NewsletterService {
	return &NewsletterService{
		sender:  sender,
		from:    from,
		siteURL: siteURL,
		logger:  logger.With("module", "newsletter"),
	}
}

// Subscribe delivers the welcome mail synchronously. A blank email is
// common.ErrorValidation; any delivery failure is common.ErrorInternal.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return common.ErrorValidation
	}

	var body bytes.Buffer
	if err := welcomeTemplate.Execute(&body, struct{ SiteURL string }{s.siteURL}); err != nil {
		s.logger.Error(ctx, "render welcome mail failed", "error", err)
		return common.ErrorInternal
	}

	err := s.sender.Send(ctx, mail.Message{
		From:    s.from,
		To:      email,
		Subject: welcomeSubject,
		HTML:    body.String(),
	})
	if err != nil {
		s.logger.Error(ctx, "send welcome mail failed", "error", err)
		return common.ErrorInternal
	}

	s.logger.Info(ctx, "welcome mail sent")
	return nil
}
