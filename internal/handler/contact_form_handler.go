package handler

import (
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/contact"
	"github.com/portfolio/backend/internal/model"
)

//go:embed templates/contact_form.html
var contactFormHTML string

var contactFormTmpl = template.Must(template.New("contact_form").Parse(contactFormHTML))

// ContactForm handles GET /contact-form and renders an empty form fragment.
func (h *ContactHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	renderContactForm(w, &contact.Form{})
}

// ContactPost handles POST /contact (form-encoded) and re-renders the fragment
// with field errors, the submit error, or the success note. The fragment is
// always served with 200 so it can be swapped in place.
func (h *ContactHandler) ContactPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := &contact.Form{}
	for _, field := range []string{model.FieldName, model.FieldEmail, model.FieldMessage} {
		form.SetField(field, r.PostFormValue(field))
	}
	// the outcome is carried by the form state
	_ = form.Submit(r.Context(), h.contactService)

	renderContactForm(w, form)
}

func renderContactForm(w http.ResponseWriter, form *contact.Form) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := contactFormTmpl.Execute(w, form); err != nil {
		slog.Error("render contact form", "error", err)
	}
}
