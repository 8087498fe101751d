package config

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"
)

var alertConfigVars = []string{
	"SLA_DAYS",
	"COST_CENTER_FILTER",
	"MAX_EXPORT_ROWS",
	"ALERT_EXCLUDED_TASKS",
	"ALERT_REQUIRE_RESOLVED_EMAILS",
	"SMTP_SERVER",
	"SMTP_PORT",
	"SMTP_DEBUG",
	"ALERT_EMAIL_TO",
	"ALERT_EMAIL_CC",
	"ARTIFACT_DIR",
	"GCS_BUCKET",
}

func clearAlertEnv(t *testing.T) {
	t.Helper()
	for _, key := range alertConfigVars {
		// Setenv registers cleanup, then the variable is removed so the
		// loader sees a clean environment.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadAlertConfig_Defaults(t *testing.T) {
	clearAlertEnv(t)

	cfg, err := LoadAlertConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.SLADays != 15 || cfg.CostCenter != "D010" || cfg.MaxExportRows != 2000 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.SMTPServer != "smtp.office365.com" || cfg.SMTPPort != 587 {
		t.Fatalf("unexpected SMTP defaults: %s:%d", cfg.SMTPServer, cfg.SMTPPort)
	}
	if !reflect.DeepEqual(cfg.EmailTo, []string{"alerts@example.com"}) {
		t.Fatalf("unexpected default recipients: %v", cfg.EmailTo)
	}
	if !reflect.DeepEqual(cfg.ExcludedTasks, defaultExcludedTasks) {
		t.Fatalf("unexpected excluded tasks: %v", cfg.ExcludedTasks)
	}
	if cfg.RequireResolvedEmails {
		t.Fatal("RequireResolvedEmails must default to false")
	}
}

func TestLoadAlertConfig_Overrides(t *testing.T) {
	clearAlertEnv(t)
	t.Setenv("SLA_DAYS", "30")
	t.Setenv("COST_CENTER_FILTER", "A001")
	t.Setenv("MAX_EXPORT_ROWS", "10")
	t.Setenv("ALERT_EXCLUDED_TASKS", "Foo, Bar Baz")
	t.Setenv("ALERT_REQUIRE_RESOLVED_EMAILS", "true")
	t.Setenv("ALERT_EMAIL_TO", "a@example.com, b@example.com")

	cfg, err := LoadAlertConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.SLADays != 30 || cfg.CostCenter != "A001" || cfg.MaxExportRows != 10 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.ExcludedTasks, []string{"Foo", "Bar Baz"}) {
		t.Fatalf("unexpected excluded tasks: %v", cfg.ExcludedTasks)
	}
	if !cfg.RequireResolvedEmails {
		t.Fatal("expected RequireResolvedEmails to be enabled")
	}
	if !reflect.DeepEqual(cfg.EmailTo, []string{"a@example.com", "b@example.com"}) {
		t.Fatalf("unexpected recipients: %v", cfg.EmailTo)
	}
}

func TestLoadAlertConfig_EmptyCcDisablesCopy(t *testing.T) {
	clearAlertEnv(t)
	t.Setenv("ALERT_EMAIL_CC", "")

	cfg, err := LoadAlertConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.EmailCc) != 0 {
		t.Fatalf("expected no cc recipients, got %v", cfg.EmailCc)
	}
}

func TestLoadAlertConfig_RejectsBadRecipient(t *testing.T) {
	clearAlertEnv(t)
	t.Setenv("ALERT_EMAIL_TO", "not-an-address")

	if _, err := LoadAlertConfig(); err == nil {
		t.Fatal("expected a validation error for an invalid recipient")
	}
}

func TestResolveSMTPCredentials_FromEnv(t *testing.T) {
	t.Setenv("SMTP_USER", "sender@example.com")
	t.Setenv("SMTP_PASSWORD", "secret")

	creds, err := ResolveSMTPCredentials(context.Background(), EnvCredentialProvider{})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if creds.Username != "sender@example.com" || creds.Password != "secret" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
}

func TestResolveSMTPCredentials_MissingIsFatal(t *testing.T) {
	t.Setenv("SMTP_USER", "sender@example.com")
	t.Setenv("SMTP_PASSWORD", "")

	_, err := ResolveSMTPCredentials(context.Background(), EnvCredentialProvider{})
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestNewCredentialProvider_Selection(t *testing.T) {
	t.Setenv("CREDENTIALS_PROVIDER", "")
	p, err := NewCredentialProvider()
	if err != nil {
		t.Fatalf("default provider: %v", err)
	}
	if _, ok := p.(EnvCredentialProvider); !ok {
		t.Fatalf("expected env provider by default, got %T", p)
	}

	t.Setenv("CREDENTIALS_PROVIDER", "secret-manager")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "acme-ops")
	p, err = NewCredentialProvider()
	if err != nil {
		t.Fatalf("secret-manager provider: %v", err)
	}
	sm, ok := p.(SecretManagerCredentialProvider)
	if !ok || sm.Project != "acme-ops" {
		t.Fatalf("unexpected provider %T %+v", p, p)
	}

	t.Setenv("CREDENTIALS_PROVIDER", "secret-manager")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	if _, err := NewCredentialProvider(); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential without project, got %v", err)
	}

	t.Setenv("CREDENTIALS_PROVIDER", "vault")
	if _, err := NewCredentialProvider(); err == nil {
		t.Fatal("expected an error for an unknown provider")
	}
}

func TestSecretNameForKey(t *testing.T) {
	if got := secretNameForKey(" SMTP_USER "); got != "smtp-user" {
		t.Fatalf("unexpected secret name %q", got)
	}
}
