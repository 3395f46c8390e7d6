package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(nil), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Brand.Name != "My Gift Box" {
		t.Errorf("unexpected brand %q", cfg.Brand.Name)
	}
	if cfg.WhatsApp.Number != "593969563324" {
		t.Errorf("unexpected whatsapp number %q", cfg.WhatsApp.Number)
	}
	if cfg.WhatsApp.BaseURL != "https://wa.me" {
		t.Errorf("unexpected whatsapp base %q", cfg.WhatsApp.BaseURL)
	}
	if cfg.Brand.AnimationDuration != 1600*time.Millisecond {
		t.Errorf("unexpected animation duration %s", cfg.Brand.AnimationDuration)
	}
	if cfg.Brand.Currency != "USD" {
		t.Errorf("unexpected currency %q", cfg.Brand.Currency)
	}
	if cfg.IsProduction() {
		t.Errorf("expected development by default")
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"GIFTBOX_WEB_PORT":               "9090",
		"GIFTBOX_WEB_READ_TIMEOUT":       "20s",
		"GIFTBOX_WEB_BRAND":              "Cajita",
		"GIFTBOX_WEB_WHATSAPP_NUMBER":    "5215512345678",
		"GIFTBOX_WEB_WHATSAPP_BASE_URL":  "https://api.whatsapp.com/send/",
		"GIFTBOX_WEB_ANIMATION_DURATION": "2s",
		"GIFTBOX_WEB_GA_MEASUREMENT_ID":  "G-123",
		"GIFTBOX_WEB_ANALYTICS_DEBUG":    "true",
		"GIFTBOX_WEB_SITE_URL":           "https://mygiftbox.ec/",
		"GIFTBOX_WEB_CURRENCY":           "EUR",
	}
	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Addr() != ":9090" {
		t.Errorf("unexpected addr %s", cfg.Addr())
	}
	if cfg.Server.ReadTimeout != 20*time.Second {
		t.Errorf("unexpected read timeout %s", cfg.Server.ReadTimeout)
	}
	if cfg.Brand.Name != "Cajita" || cfg.WhatsApp.Number != "5215512345678" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.WhatsApp.BaseURL != "https://api.whatsapp.com/send" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.WhatsApp.BaseURL)
	}
	if cfg.Brand.AnimationDuration != 2*time.Second {
		t.Errorf("unexpected animation duration %s", cfg.Brand.AnimationDuration)
	}
	if cfg.Analytics.GA4MeasurementID != "G-123" || !cfg.Analytics.Debug {
		t.Errorf("unexpected analytics %+v", cfg.Analytics)
	}
	if cfg.Brand.Currency != "EUR" {
		t.Errorf("unexpected currency %q", cfg.Brand.Currency)
	}
	if cfg.SiteURL != "https://mygiftbox.ec" {
		t.Errorf("unexpected site url %s", cfg.SiteURL)
	}
}

func TestLoadFallsBackToCloudRunPort(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{"PORT": "7070"}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Fatalf("expected PORT fallback, got %s", cfg.Server.Port)
	}
}

func TestLoadValidation(t *testing.T) {
	env := map[string]string{
		"GIFTBOX_WEB_ENV":             "production",
		"GIFTBOX_WEB_WHATSAPP_NUMBER": "+593 96 956",
		"GIFTBOX_WEB_CURRENCY":        "dollars",
	}
	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	got := strings.Join(verr.Fields(), ",")
	for _, want := range []string{"GIFTBOX_WEB_WHATSAPP_NUMBER", "GIFTBOX_WEB_SESSION_SIGNING_KEY", "GIFTBOX_WEB_CURRENCY"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %s in %s", want, got)
		}
	}
}

func TestLoadReadsEnvFileOutsideProduction(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("GIFTBOX_WEB_BRAND=Desde Archivo\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(WithoutSystemEnv(), WithEnvFile(path))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Brand.Name != "Desde Archivo" {
		t.Fatalf("expected brand from env file, got %q", cfg.Brand.Name)
	}

	prod := map[string]string{
		"GIFTBOX_WEB_ENV":                 "production",
		"GIFTBOX_WEB_SESSION_SIGNING_KEY": strings.Repeat("k", 32),
	}
	cfg, err = Load(WithEnvMap(prod), WithoutSystemEnv(), WithEnvFile(path))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Brand.Name != "My Gift Box" {
		t.Fatalf("env file must be ignored in production, got %q", cfg.Brand.Name)
	}
}

func TestLoadMissingForcedEnvFile(t *testing.T) {
	_, err := Load(WithoutSystemEnv(), WithEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	if err == nil {
		t.Fatalf("expected error for missing explicit env file")
	}
}
