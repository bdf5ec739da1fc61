package keyvault

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"
)

const valueKey = "value"

var (
	ErrMissingToken   = errors.New("vault token is empty")
	ErrSecretNotFound = errors.New("secret not found")
	ErrInvalidFormat  = errors.New("invalid data format in vault response")
)

// HashiCorp reads secrets from a KV v2 mount. The secret named N is expected
// at <mount>/data/N with the payload stored under the "value" key.
type HashiCorp struct {
	address string
	token   string
	mount   string
}

func NewHashiCorp(address, token, mount string) *HashiCorp {
	return &HashiCorp{
		address: address,
		token:   token,
		mount:   strings.Trim(mount, "/"),
	}
}

func (h *HashiCorp) Authenticate(_ context.Context) (Session, error) {
	if h.token == "" {
		return nil, ErrMissingToken
	}

	config := api.DefaultConfig()
	config.Address = h.address
	config.HttpClient = &http.Client{Timeout: 30 * time.Second}
	config.MaxRetries = 0

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("api.NewClient: %w", err)
	}

	client.SetToken(h.token)

	return &hashicorpSession{client: client, mount: h.mount}, nil
}

type hashicorpSession struct {
	client *api.Client
	mount  string
}

func (s *hashicorpSession) Secret(ctx context.Context, name string) (string, error) {
	path := fmt.Sprintf("%s/data/%s", s.mount, strings.Trim(name, "/"))

	secret, err := s.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return "", fmt.Errorf("Logical.ReadWithContext: %w", err)
	}

	if secret == nil || secret.Data == nil {
		return "", ErrSecretNotFound
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return "", ErrInvalidFormat
	}

	value, ok := data[valueKey].(string)
	if !ok {
		return "", ErrInvalidFormat
	}

	return value, nil
}
