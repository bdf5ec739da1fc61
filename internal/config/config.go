package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/AlexZav1327/word-of-the-day/internal/worldtime"
	"github.com/urfave/cli/v2"
)

const (
	BackendAzure     = "azure"
	BackendHashiCorp = "hashicorp"
)

var (
	ErrUnknownBackend = errors.New("unknown secret backend")
	ErrMissingValue   = errors.New("required value is empty")
)

type Config struct {
	ListenAddr  string
	MetricsAddr string

	TimeAPIURL     string
	TimeAPITimeout time.Duration

	SecretBackend string
	SecretName    string

	KeyVaultName string
	MSIClientID  string

	VaultAddr  string
	VaultToken string
	VaultMount string

	LogJSON                     bool
	LogDebug                    bool
	LogService                  string
	AppInsightsConnectionString string
}

var Flags = []cli.Flag{
	&cli.StringFlag{
		Name:    "listen-addr",
		Value:   ":8080",
		Usage:   "address to serve the page on",
		EnvVars: []string{"LISTEN_ADDR"},
	},
	&cli.StringFlag{
		Name:    "metrics-addr",
		Value:   "",
		Usage:   "address to listen on for Prometheus metrics, empty serves /metrics on listen-addr",
		EnvVars: []string{"METRICS_ADDR"},
	},
	&cli.StringFlag{
		Name:    "time-api-url",
		Value:   worldtime.DefaultURL,
		Usage:   "public time API endpoint, must return JSON with a datetime field",
		EnvVars: []string{"TIME_API_URL"},
	},
	&cli.DurationFlag{
		Name:    "time-api-timeout",
		Value:   worldtime.DefaultTimeout,
		Usage:   "timeout for one time API request",
		EnvVars: []string{"TIME_API_TIMEOUT"},
	},
	&cli.StringFlag{
		Name:    "secret-backend",
		Value:   BackendAzure,
		Usage:   "secret store to read the word of the day from: 'azure' or 'hashicorp'",
		EnvVars: []string{"SECRET_BACKEND"},
	},
	&cli.StringFlag{
		Name:    "key-vault-secret-name",
		Value:   "secrett",
		Usage:   "name of the secret holding the word of the day",
		EnvVars: []string{"KEY_VAULT_SECRET_NAME"},
	},
	&cli.StringFlag{
		Name:    "key-vault-name",
		Value:   "hvlinhkey",
		Usage:   "Azure Key Vault name",
		EnvVars: []string{"KEY_VAULT_NAME"},
	},
	&cli.StringFlag{
		Name:    "msi-client-id",
		Value:   "af71cbe5-43e0-46d1-af94-2eaae7e7348d",
		Usage:   "client id of the user-assigned managed identity",
		EnvVars: []string{"MSI_CLIENT_ID"},
	},
	&cli.StringFlag{
		Name:    "vault-addr",
		Value:   "http://127.0.0.1:8200",
		Usage:   "HashiCorp Vault address",
		EnvVars: []string{"VAULT_ADDR"},
	},
	&cli.StringFlag{
		Name:    "vault-token",
		Usage:   "HashiCorp Vault token",
		EnvVars: []string{"VAULT_TOKEN"},
	},
	&cli.StringFlag{
		Name:    "vault-mount",
		Value:   "secret",
		Usage:   "HashiCorp Vault KV v2 mount path",
		EnvVars: []string{"VAULT_MOUNT"},
	},
	&cli.BoolFlag{
		Name:  "log-json",
		Value: false,
		Usage: "log in JSON format",
	},
	&cli.BoolFlag{
		Name:  "log-debug",
		Value: false,
		Usage: "log debug messages",
	},
	&cli.StringFlag{
		Name:  "log-service",
		Value: "word-of-the-day",
		Usage: "add 'service' tag to logs",
	},
	&cli.StringFlag{
		Name:    "appinsights-connection-string",
		Usage:   "forward logs to Application Insights",
		EnvVars: []string{"APPLICATIONINSIGHTS_CONNECTION_STRING"},
	},
}

func FromContext(cCtx *cli.Context) (Config, error) {
	cfg := Config{
		ListenAddr:                  cCtx.String("listen-addr"),
		MetricsAddr:                 cCtx.String("metrics-addr"),
		TimeAPIURL:                  cCtx.String("time-api-url"),
		TimeAPITimeout:              cCtx.Duration("time-api-timeout"),
		SecretBackend:               cCtx.String("secret-backend"),
		SecretName:                  cCtx.String("key-vault-secret-name"),
		KeyVaultName:                cCtx.String("key-vault-name"),
		MSIClientID:                 cCtx.String("msi-client-id"),
		VaultAddr:                   cCtx.String("vault-addr"),
		VaultToken:                  cCtx.String("vault-token"),
		VaultMount:                  cCtx.String("vault-mount"),
		LogJSON:                     cCtx.Bool("log-json"),
		LogDebug:                    cCtx.Bool("log-debug"),
		LogService:                  cCtx.String("log-service"),
		AppInsightsConnectionString: cCtx.String("appinsights-connection-string"),
	}

	err := cfg.Validate()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

type setting struct {
	name  string
	value string
}

func (c Config) Validate() error {
	required := []setting{
		{"listen-addr", c.ListenAddr},
		{"time-api-url", c.TimeAPIURL},
		{"key-vault-secret-name", c.SecretName},
	}

	switch c.SecretBackend {
	case BackendAzure:
		required = append(required, setting{"key-vault-name", c.KeyVaultName}, setting{"msi-client-id", c.MSIClientID})
	case BackendHashiCorp:
		required = append(required, setting{"vault-addr", c.VaultAddr}, setting{"vault-mount", c.VaultMount})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.SecretBackend)
	}

	for _, s := range required {
		if s.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingValue, s.name)
		}
	}

	return nil
}
