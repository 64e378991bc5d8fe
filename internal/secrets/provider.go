package secrets

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Source selects where secrets are read from.
type Source string

const (
	SourceEnvironment Source = "environment"
	SourceVault       Source = "vault"
	// SourceAuto reads from the environment in development and from the vault elsewhere.
	SourceAuto Source = "auto"
)

// Getter fetches a named secret from a backing store.
type Getter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// Ref names one secret in both stores: the Key Vault secret name and the
// environment variable that overrides it.
type Ref struct {
	VaultName string
	EnvName   string
}

// Well-known secrets consumed by the API.
var (
	RefDatabasePassword = Ref{VaultName: "journey-db-password", EnvName: "DATABASE_PASSWORD"}
	RefJWTSecret        = Ref{VaultName: "journey-jwt-secret", EnvName: "AUTH_JWTSECRET"}
	RefAPIKey           = Ref{VaultName: "journey-api-key", EnvName: "APIKEY_VALUE"}
	RefStorageConn      = Ref{VaultName: "journey-storage-connection", EnvName: "STORAGE_CLOUDCONNECTIONSTRING"}
)

// Provider resolves secrets from the configured source.
type Provider struct {
	source Source
	vault  Getter
	logger *zap.Logger
}

type ProviderConfig struct {
	Source      Source
	VaultURL    string
	Environment string
	CacheTTL    time.Duration
}

// NewProvider creates a provider, building a Key Vault client when the
// resolved source is the vault.
func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	source := ResolveSource(cfg.Source, cfg.Environment)

	p := &Provider{source: source, logger: logger}
	if source == SourceVault {
		if cfg.VaultURL == "" {
			return nil, fmt.Errorf("vault URL required when using vault secret source")
		}
		client, err := NewVaultClient(cfg.VaultURL, cfg.CacheTTL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize vault client: %w", err)
		}
		p.vault = client
	}

	logger.Info("Secrets provider initialized",
		zap.String("source", string(source)),
		zap.String("environment", cfg.Environment),
	)
	return p, nil
}

// NewProviderWithGetter builds a vault-sourced provider over an existing getter.
func NewProviderWithGetter(getter Getter, logger *zap.Logger) *Provider {
	return &Provider{source: SourceVault, vault: getter, logger: logger}
}

// ResolveSource turns SourceAuto into a concrete source for the environment.
func ResolveSource(source Source, environment string) Source {
	if source != SourceAuto && source != "" {
		return source
	}
	switch environment {
	case "development", "local", "test", "":
		return SourceEnvironment
	default:
		return SourceVault
	}
}

// Resolve returns the secret for ref. An explicitly set environment variable
// always wins so operators can override vault values.
func (p *Provider) Resolve(ctx context.Context, ref Ref) (string, error) {
	if v := os.Getenv(ref.EnvName); v != "" {
		return v, nil
	}
	if p.source != SourceVault {
		return "", fmt.Errorf("environment variable '%s' not set", ref.EnvName)
	}
	if p.vault == nil {
		return "", fmt.Errorf("vault client not initialized")
	}
	return p.vault.GetSecret(ctx, ref.VaultName)
}

// ResolveInto sets *dst when ref resolves to a non-empty value and leaves it
// untouched otherwise.
func (p *Provider) ResolveInto(ctx context.Context, ref Ref, dst *string) {
	v, err := p.Resolve(ctx, ref)
	if err != nil || v == "" {
		p.logger.Debug("Secret not resolved, keeping configured value",
			zap.String("secret", ref.VaultName),
			zap.Error(err),
		)
		return
	}
	*dst = v
}

func (p *Provider) Source() Source {
	return p.source
}
