package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Defaults mirror the scheduled production setup of the alert job.
const (
	DefaultSLADays       = 15
	DefaultCostCenter    = "D010"
	DefaultMaxExportRows = 2000
	DefaultSMTPServer    = "smtp.office365.com"
	DefaultSMTPPort      = 587
	DefaultEmailTo       = "alerts@example.com"
	DefaultEmailCc       = "ops@example.com"
)

// Tasks that never page anyone: automation noise and already-finalized items.
// Override with ALERT_EXCLUDED_TASKS (comma-separated, exact matches).
var defaultExcludedTasks = []string{
	"Auto - Sync Metadata",
	"Auto - Retry Integration",
	"Auto - Generate Reference Doc",
	"End - Finalized",
}

// AlertConfig is the full configuration of one alert run. Loaded once in
// main and passed down explicitly; nothing reads env after startup.
type AlertConfig struct {
	SLADays       int    `validate:"min=0"`
	CostCenter    string `validate:"required"`
	MaxExportRows int    `validate:"min=1"`
	ExcludedTasks []string

	// RequireResolvedEmails keeps records without a notification email out
	// of the report. Off by default: the source job shipped them with an
	// empty column and teams rely on seeing them.
	RequireResolvedEmails bool

	SMTPServer string `validate:"required,hostname"`
	SMTPPort   int    `validate:"min=1,max=65535"`
	SMTPDebug  bool

	EmailTo []string `validate:"required,min=1,dive,email"`
	EmailCc []string `validate:"omitempty,dive,email"`

	ArtifactDir   string `validate:"required"`
	ArchiveBucket string
}

// LoadAlertConfig builds the run configuration from env with defaults.
// Validation failures are configuration errors and abort before any data
// access.
func LoadAlertConfig() (AlertConfig, error) {
	cfg := AlertConfig{
		SLADays:               intFromEnv("SLA_DAYS", DefaultSLADays),
		CostCenter:            strings.TrimSpace(envDefault("COST_CENTER_FILTER", DefaultCostCenter)),
		MaxExportRows:         intFromEnv("MAX_EXPORT_ROWS", DefaultMaxExportRows),
		ExcludedTasks:         excludedTasksFromEnv(),
		RequireResolvedEmails: boolFromEnv("ALERT_REQUIRE_RESOLVED_EMAILS"),
		SMTPServer:            strings.TrimSpace(envDefault("SMTP_SERVER", DefaultSMTPServer)),
		SMTPPort:              intFromEnv("SMTP_PORT", DefaultSMTPPort),
		SMTPDebug:             boolFromEnv("SMTP_DEBUG"),
		EmailTo:               splitAddressList(envDefault("ALERT_EMAIL_TO", DefaultEmailTo)),
		EmailCc:               splitAddressList(envDefault("ALERT_EMAIL_CC", DefaultEmailCc)),
		ArtifactDir:           strings.TrimSpace(envDefault("ARTIFACT_DIR", os.TempDir())),
		ArchiveBucket:         strings.TrimSpace(os.Getenv("GCS_BUCKET")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return AlertConfig{}, fmt.Errorf("invalid alert configuration: %w", err)
	}
	return cfg, nil
}

// envDefault returns the default only when the variable is unset. An
// explicitly empty value stays empty so ALERT_EMAIL_CC="" disables the cc
// list.
func envDefault(key string, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func boolFromEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

func splitAddressList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func excludedTasksFromEnv() []string {
	raw, ok := os.LookupEnv("ALERT_EXCLUDED_TASKS")
	if !ok {
		return append([]string{}, defaultExcludedTasks...)
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		// Exact-match filter downstream, so only surrounding whitespace from
		// the CSV itself is stripped.
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
