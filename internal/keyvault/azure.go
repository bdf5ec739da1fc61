package keyvault

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

var ErrEmptySecret = errors.New("secret has no value")

// Azure authenticates with the user-assigned managed identity clientID and
// reads secrets from https://<vaultName>.vault.azure.net/.
type Azure struct {
	vaultURL   string
	clientID   string
	options    *azsecrets.ClientOptions
	credential func(clientID string) (azcore.TokenCredential, error)
}

func NewAzure(vaultName, clientID string) *Azure {
	return &Azure{
		vaultURL:   VaultURL(vaultName),
		clientID:   clientID,
		credential: managedIdentity,
	}
}

func VaultURL(vaultName string) string {
	return fmt.Sprintf("https://%s.vault.azure.net/", vaultName)
}

func managedIdentity(clientID string) (azcore.TokenCredential, error) {
	credential, err := azidentity.NewManagedIdentityCredential(&azidentity.ManagedIdentityCredentialOptions{
		ID: azidentity.ClientID(clientID),
	})
	if err != nil {
		return nil, fmt.Errorf("azidentity.NewManagedIdentityCredential: %w", err)
	}

	return credential, nil
}

func (a *Azure) Authenticate(_ context.Context) (Session, error) {
	credential, err := a.credential(a.clientID)
	if err != nil {
		return nil, err
	}

	return &azureSession{vaultURL: a.vaultURL, credential: credential, options: a.options}, nil
}

type azureSession struct {
	vaultURL   string
	credential azcore.TokenCredential
	options    *azsecrets.ClientOptions
}

func (s *azureSession) Secret(ctx context.Context, name string) (string, error) {
	client, err := azsecrets.NewClient(s.vaultURL, s.credential, s.options)
	if err != nil {
		return "", fmt.Errorf("azsecrets.NewClient: %w", err)
	}

	// Empty version selects the latest one.
	response, err := client.GetSecret(ctx, name, "", nil)
	if err != nil {
		return "", fmt.Errorf("client.GetSecret: %w", err)
	}

	if response.Value == nil {
		return "", ErrEmptySecret
	}

	return *response.Value, nil
}
