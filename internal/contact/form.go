// Package contact holds the state of one contact form across a submission.
package contact

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

// SubmitErrorMessage is shown when the message could not be stored.
const SubmitErrorMessage = "Something went wrong. Please try again."

// ErrInFlight is returned when Submit is called while a previous submit is still running.
var ErrInFlight = errors.New("contact: submission already in progress")

// Submitter is the part of service.ContactService a form needs.
type Submitter interface {
	Submit(ctx context.Context, form model.ContactForm) (*model.ContactMessage, error)
}

// Form is the contact form: its fields, per-field errors and the outcome of
// the last submit. A Form is not safe for concurrent field edits; only the
// in-flight guard is.
type Form struct {
	Fields      model.ContactForm
	Errors      model.FieldErrors
	Submitted   bool
	SubmitError string

	submitting atomic.Bool
}

// Submitting reports whether a submit is in flight; the submit control should be disabled.
func (f *Form) Submitting() bool {
	return f.submitting.Load()
}

// SetField updates one field and clears that field's error.
func (f *Form) SetField(field, value string) {
	switch field {
	case model.FieldName:
		f.Fields.Name = value
	case model.FieldEmail:
		f.Fields.Email = value
	case model.FieldMessage:
		f.Fields.Message = value
	default:
		return
	}
	delete(f.Errors, field)
}

// Submit validates the fields and, when valid, hands them to svc.
// Validation failures leave the fields untouched and make no calls.
// A store failure sets SubmitError and keeps the fields for a retry.
// Success clears the fields and sets Submitted.
func (f *Form) Submit(ctx context.Context, svc Submitter) error {
	if !f.submitting.CompareAndSwap(false, true) {
		return ErrInFlight
	}
	defer f.submitting.Store(false)

	f.SubmitError = ""
	f.Errors = f.Fields.Validate()
	if len(f.Errors) > 0 {
		f.Submitted = false
		return &service.ValidationError{Fields: f.Errors}
	}

	if _, err := svc.Submit(ctx, f.Fields); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			f.Errors = verr.Fields
		} else {
			f.SubmitError = SubmitErrorMessage
		}
		f.Submitted = false
		return err
	}

	f.Fields = model.ContactForm{}
	f.Errors = model.FieldErrors{}
	f.Submitted = true
	return nil
}
