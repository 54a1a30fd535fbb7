package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/portfolio/backend/internal/contact"
	"github.com/portfolio/backend/internal/dashboard"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

// ContactHandler handles contact form submission and the dashboard's message routes.
type ContactHandler struct {
	contactService service.ContactService
	loc            *time.Location
}

// NewContactHandler creates a ContactHandler with the given service. Exported
// dates are rendered in the server's local time zone.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService, loc: time.Local}
}

type validationErrorResponse struct {
	Error  string            `json:"error"`
	Fields model.FieldErrors `json:"fields"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// Submit handles POST /api/contact.
// All three fields are required and the email must look like an address.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.ContactForm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	form := &contact.Form{Fields: req}
	if err := form.Submit(r.Context(), h.contactService); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(validationErrorResponse{Error: "validation_failed", Fields: verr.Fields})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":   "submit_failed",
			"message": form.SubmitError,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(okResponse{OK: true})
}

// adminListResponse is the JSON response for GET /api/admin/messages.
type adminListResponse struct {
	Messages []*model.ContactMessage `json:"messages"`
}

// AdminList handles GET /api/admin/messages. The whole collection is returned
// newest first; filtering happens on the client.
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contactService.List(r.Context())
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":   "list_failed",
			"message": dashboard.MsgLoadFailed,
		})
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.ContactMessage{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(adminListResponse{Messages: messages})
}

// Delete handles DELETE /api/admin/messages/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "id_required"})
		return
	}

	if err := h.contactService.Delete(r.Context(), id); err != nil {
		w.Header().Set("Content-Type", "application/json")
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":   "delete_failed",
			"message": dashboard.MsgDeleteFailed,
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminExport handles GET /api/admin/messages/export and streams the whole
// collection as an .xlsx workbook.
func (h *ContactHandler) AdminExport(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contactService.List(r.Context())
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":   "list_failed",
			"message": dashboard.MsgLoadFailed,
		})
		return
	}

	var buf bytes.Buffer
	if err := dashboard.ExportXLSX(&buf, messages, h.loc); err != nil {
		slog.Error("export messages", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "export_failed"})
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="messages.xlsx"`)
	_, _ = buf.WriteTo(w)
}
