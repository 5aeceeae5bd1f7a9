package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// TicketConfirmationEmailData holds data for the booking confirmation email.
type TicketConfirmationEmailData struct {
	Email      string
	Name       string
	EventTitle string
	Venue      string
	Date       string
	QRCode     string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendTicketConfirmation(ctx context.Context, data *TicketConfirmationEmailData) error
}
