package secrets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"go.uber.org/zap"
)

// VaultClient reads secrets from Azure Key Vault with a small TTL cache.
type VaultClient struct {
	client *azsecrets.Client
	logger *zap.Logger
	ttl    time.Duration

	mu    sync.Mutex
	cache map[string]cachedSecret
}

type cachedSecret struct {
	value     string
	expiresAt time.Time
}

// NewVaultClient authenticates with DefaultAzureCredential (managed identity,
// environment credentials or the Azure CLI).
func NewVaultClient(vaultURL string, ttl time.Duration, logger *zap.Logger) (*VaultClient, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	client, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Key Vault client: %w", err)
	}

	if ttl == 0 {
		ttl = 5 * time.Minute
	}

	logger.Info("Azure Key Vault client initialized", zap.String("vault_url", vaultURL))

	return &VaultClient{
		client: client,
		logger: logger,
		ttl:    ttl,
		cache:  make(map[string]cachedSecret),
	}, nil
}

// GetSecret returns the latest version of the named secret.
func (v *VaultClient) GetSecret(ctx context.Context, name string) (string, error) {
	v.mu.Lock()
	if cached, ok := v.cache[name]; ok && time.Now().Before(cached.expiresAt) {
		v.mu.Unlock()
		return cached.value, nil
	}
	v.mu.Unlock()

	resp, err := v.client.GetSecret(ctx, name, "", nil)
	if err != nil {
		v.logger.Error("Failed to get secret from Key Vault",
			zap.String("secret_name", name),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to get secret '%s': %w", name, err)
	}
	if resp.Value == nil {
		return "", fmt.Errorf("secret '%s' has no value", name)
	}

	v.mu.Lock()
	v.cache[name] = cachedSecret{value: *resp.Value, expiresAt: time.Now().Add(v.ttl)}
	v.mu.Unlock()

	return *resp.Value, nil
}
