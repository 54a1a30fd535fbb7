package config

import (
	"os"
	"testing"
)

// unsetEnv removes keys for the duration of the test. envconfig treats a set
// but empty variable as a value, so defaults only apply to unset keys.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "PORT", "STORE_DRIVER", "MSG_DASH_PASSWORD", "EMAILJS_ENDPOINT", "TELEGRAM_CHAT_ID", "COOKIE_SECURE", "SESSION_SECRET")

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.StoreDriver != "postgres" {
		t.Errorf("expected default driver postgres, got %q", c.StoreDriver)
	}
	if c.DashboardPassword != "" {
		t.Errorf("expected no dashboard password, got %q", c.DashboardPassword)
	}
	if c.EmailJSEndpoint == "" {
		t.Error("expected default EmailJS endpoint")
	}
	if !c.UsesDefaultSessionSecret() {
		t.Errorf("expected the fallback session secret, got %q", c.SessionSecret)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/contacts.db")
	t.Setenv("MSG_DASH_PASSWORD", "s3cret")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("SESSION_SECRET", "a-real-deployment-secret")

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Port != "9090" {
		t.Errorf("expected port 9090, got %q", c.Port)
	}
	if c.StoreDSN() != "/tmp/contacts.db" {
		t.Errorf("expected sqlite path as DSN, got %q", c.StoreDSN())
	}
	if c.DashboardPassword != "s3cret" {
		t.Errorf("expected password s3cret, got %q", c.DashboardPassword)
	}
	if c.TelegramChatID != 12345 {
		t.Errorf("expected chat id 12345, got %d", c.TelegramChatID)
	}
	if !c.CookieSecure {
		t.Error("expected CookieSecure=true")
	}
	if c.UsesDefaultSessionSecret() {
		t.Error("expected a configured session secret")
	}
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid TELEGRAM_CHAT_ID")
	}
}

func TestConfig_EmailJSConfigured(t *testing.T) {
	c := &Config{EmailJSServiceID: "svc", EmailJSTemplateID: "tpl"}
	if c.EmailJSConfigured() {
		t.Error("expected not configured without public key")
	}
	c.EmailJSPublicKey = "pk"
	if !c.EmailJSConfigured() {
		t.Error("expected configured with all three credentials")
	}
}

func TestConfig_TelegramConfigured(t *testing.T) {
	c := &Config{TelegramBotToken: "tok"}
	if c.TelegramConfigured() {
		t.Error("expected not configured without chat id")
	}
	c.TelegramChatID = 42
	if !c.TelegramConfigured() {
		t.Error("expected configured")
	}
}
