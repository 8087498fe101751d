package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// ErrMissingCredential marks fatal credential problems. The job checks
// credentials once at startup, before touching any data.
var ErrMissingCredential = errors.New("missing credential")

type SMTPCredentials struct {
	Username string
	Password string
}

// CredentialProvider resolves one secret by its env-style key (for example
// "SMTP_PASSWORD"). Which backend is used is decided by configuration, not
// by probing the runtime.
type CredentialProvider interface {
	Lookup(ctx context.Context, key string) (string, error)
}

// NewCredentialProvider selects a provider from CREDENTIALS_PROVIDER
// ("env", the default, or "secret-manager").
func NewCredentialProvider() (CredentialProvider, error) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("CREDENTIALS_PROVIDER"))) {
	case "", "env":
		return EnvCredentialProvider{}, nil
	case "secret-manager":
		project := strings.TrimSpace(os.Getenv("GOOGLE_CLOUD_PROJECT"))
		if project == "" {
			return nil, fmt.Errorf("%w: CREDENTIALS_PROVIDER=secret-manager requires GOOGLE_CLOUD_PROJECT", ErrMissingCredential)
		}
		return SecretManagerCredentialProvider{Project: project}, nil
	default:
		return nil, fmt.Errorf("unknown CREDENTIALS_PROVIDER %q (want env or secret-manager)", os.Getenv("CREDENTIALS_PROVIDER"))
	}
}

// ResolveSMTPCredentials is the single startup credential check. Absence of
// either value is fatal.
func ResolveSMTPCredentials(ctx context.Context, provider CredentialProvider) (SMTPCredentials, error) {
	user, err := provider.Lookup(ctx, "SMTP_USER")
	if err != nil {
		return SMTPCredentials{}, err
	}
	password, err := provider.Lookup(ctx, "SMTP_PASSWORD")
	if err != nil {
		return SMTPCredentials{}, err
	}
	return SMTPCredentials{Username: user, Password: password}, nil
}

// EnvCredentialProvider reads secrets straight from environment variables.
type EnvCredentialProvider struct{}

func (EnvCredentialProvider) Lookup(_ context.Context, key string) (string, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return "", fmt.Errorf("%w: environment variable %s is not set", ErrMissingCredential, key)
	}
	return v, nil
}

// SecretManagerCredentialProvider reads secrets from Google Secret Manager
// using ADC, same as the GCS access elsewhere in this codebase. The secret
// name is the lower-kebab form of the key ("SMTP_USER" -> "smtp-user").
type SecretManagerCredentialProvider struct {
	Project string
}

func (p SecretManagerCredentialProvider) Lookup(ctx context.Context, key string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("secret manager client: %w", err)
	}
	defer client.Close()

	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", p.Project, secretNameForKey(key))
	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("%w: access %s: %v", ErrMissingCredential, name, err)
	}
	v := strings.TrimSpace(string(resp.GetPayload().GetData()))
	if v == "" {
		return "", fmt.Errorf("%w: secret %s is empty", ErrMissingCredential, name)
	}
	return v, nil
}

func secretNameForKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "_", "-"))
}
