// Package contact turns the contact form into a mailto: link so the visitor's
// own email client sends the message.
package contact

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultSubject is used when the visitor leaves the subject blank.
const DefaultSubject = "Contact from Portfolio"

// Message is a submitted contact form. Name, Email and Message are required,
// as the form's inputs are.
type Message struct {
	Name    string `form:"name" binding:"required"`
	Email   string `form:"email" binding:"required,email"`
	Subject string `form:"subject"`
	Message string `form:"message" binding:"required"`
}

// Body formats the message the way it appears in the email.
func (m Message) Body() string {
	return fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", m.Name, m.Email, m.Message)
}

// MailtoURL builds the mailto: link addressed to `to`.
func MailtoURL(to string, m Message) string {
	subject := strings.TrimSpace(m.Subject)
	if subject == "" {
		subject = DefaultSubject
	}
	return Compose(to, subject, m.Body())
}

// Compose builds a mailto: link with an already formatted subject and body.
func Compose(to, subject, body string) string {
	return "mailto:" + to + "?subject=" + Escape(subject) + "&body=" + Escape(body)
}

// Escape percent-encodes s for a mailto: header value. Spaces become %20;
// mail clients show a literal '+' for the form encoding.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
