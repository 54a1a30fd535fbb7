package model

import (
	"regexp"
	"strings"
	"time"
)

// ContactMessage is one document of the contacts collection.
// ID and CreatedAt are assigned by the store; CreatedAt is nil for documents
// that were written without a server timestamp.
type ContactMessage struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Message   string     `json:"message"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// ContactForm holds the raw contact form fields as typed by the visitor.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// FieldErrors maps a form field ("name", "email", "message") to a user-facing message.
type FieldErrors map[string]string

// Form field keys used in FieldErrors.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks every field and returns all violations. An empty result means
// the form may be submitted.
func (f ContactForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs[FieldName] = "Name is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs[FieldEmail] = "Email is required"
	} else if !emailPattern.MatchString(f.Email) {
		errs[FieldEmail] = "Enter a valid email"
	}
	if strings.TrimSpace(f.Message) == "" {
		errs[FieldMessage] = "Message is required"
	}
	return errs
}

// ToMessage copies the form fields into a new, not yet persisted, ContactMessage.
func (f ContactForm) ToMessage() *ContactMessage {
	return &ContactMessage{
		Name:    f.Name,
		Email:   f.Email,
		Message: f.Message,
	}
}
