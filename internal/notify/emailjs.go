package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/portfolio/backend/internal/model"
)

// DefaultEmailJSEndpoint is the EmailJS REST send endpoint.
const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSConfig holds the relay credentials. All three IDs are required together.
type EmailJSConfig struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	Endpoint   string // DefaultEmailJSEndpoint when empty
}

// EmailJS sends contact notifications through the EmailJS transactional relay.
type EmailJS struct {
	cfg        EmailJSConfig
	httpClient *http.Client
}

var _ Notifier = (*EmailJS)(nil)

// NewEmailJS creates the relay client.
func NewEmailJS(cfg EmailJSConfig) *EmailJS {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEmailJSEndpoint
	}
	return &EmailJS{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether service, template and public key are all set.
func (e *EmailJS) Configured() bool {
	return e.cfg.ServiceID != "" && e.cfg.TemplateID != "" && e.cfg.PublicKey != ""
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Notify posts the message to the relay. It returns ErrNotConfigured without
// any network call when a credential is missing.
func (e *EmailJS) Notify(ctx context.Context, msg *model.ContactMessage) error {
	if !e.Configured() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(emailJSRequest{
		ServiceID:  e.cfg.ServiceID,
		TemplateID: e.cfg.TemplateID,
		UserID:     e.cfg.PublicKey,
		TemplateParams: map[string]string{
			"from_name":  msg.Name,
			"from_email": msg.Email,
			"message":    msg.Message,
		},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("emailjs: status %d: %s", resp.StatusCode, respBody)
	}
	return nil
}
