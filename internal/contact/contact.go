// Package contact turns the contact form into a pre-filled email compose
// link. Nothing is stored or sent.
package contact

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

const (
	SubjectPrefix = "[Portfolio Contact] "
	Signature     = "--- Sent from Neural Interface Portfolio ---"
)

// Message is the contact form payload. Every field is required.
type Message struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Email   string `json:"email" form:"email" binding:"required"`
	Subject string `json:"subject" form:"subject" binding:"required"`
	Message string `json:"message" form:"message" binding:"required"`
}

// Missing lists the names of empty fields.
func (m Message) Missing() []string {
	var out []string
	for _, f := range []struct{ name, value string }{
		{"name", m.Name}, {"email", m.Email}, {"subject", m.Subject}, {"message", m.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			out = append(out, f.name)
		}
	}
	return out
}

// Body is the plain-text email body.
func (m Message) Body() string {
	return fmt.Sprintf("Name: %s\nEmail: %s\n\n%s\n\n%s", m.Name, m.Email, m.Message, Signature)
}

// Mailto builds the compose link addressed to recipient.
func Mailto(recipient string, m Message) (string, error) {
	addr, err := mail.ParseAddress(recipient)
	if err != nil {
		return "", fmt.Errorf("contact recipient %q: %w", recipient, err)
	}
	q := url.Values{}
	q.Set("subject", SubjectPrefix+m.Subject)
	q.Set("body", m.Body())
	// mail clients expect %20 rather than + for spaces
	query := strings.ReplaceAll(q.Encode(), "+", "%20")
	return "mailto:" + addr.Address + "?" + query, nil
}
