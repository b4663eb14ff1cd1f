// Package config loads the application configuration from a yaml file with
// environment variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

// Defaults applied after loading. The token lifetime matches the product
// default of a week; bcrypt cost 12 is the registration hashing cost.
const (
	DefaultTokenTTL          = 7 * 24 * time.Hour
	DefaultBcryptCost        = 12
	DefaultMinPasswordLength = 6
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port int `json:"port" yaml:"port"`
		// BaseURL is the externally visible origin, used to build share links.
		BaseURL string `json:"baseUrl" yaml:"baseUrl"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	GoogleOAuth *GoogleOAuthConfig `json:"googleOAuth" yaml:"googleOAuth"`

	Avatar *AvatarConfig `json:"avatar" yaml:"avatar"`

	AI *AIConfig `json:"ai" yaml:"ai"`

	Overpass *OverpassConfig `json:"overpass" yaml:"overpass"`

	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	RateLimit *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`
}

// AuthConfig defines session token and password hashing configuration.
// TokenSecret is required: the process cannot serve authenticated requests
// without it, so a missing secret fails startup rather than per-request.
type AuthConfig struct {
	TokenSecret       string        `json:"tokenSecret" yaml:"tokenSecret"`
	TokenTTL          time.Duration `json:"tokenTtl" yaml:"tokenTtl"`
	BcryptCost        int           `json:"bcryptCost" yaml:"bcryptCost"`
	MinPasswordLength int           `json:"minPasswordLength" yaml:"minPasswordLength"`
}

// GoogleOAuthConfig configures Google ID token verification. Only the client
// id is needed: verification goes through Google's tokeninfo endpoint, not a
// server-side OAuth flow.
type GoogleOAuthConfig struct {
	ClientID string `json:"clientId" yaml:"clientId"`
	// TokenInfoURL overrides Google's endpoint in tests.
	TokenInfoURL string `json:"tokenInfoUrl" yaml:"tokenInfoUrl"`
}

// AvatarConfig configures profile picture storage.
type AvatarConfig struct {
	// BucketURL is a gocloud.dev blob URL, e.g. "file:///var/lib/plateful/avatars"
	// or "gs://plateful-avatars".
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`
	// PublicBaseURL is prepended to the stored object key to form the URL
	// served to clients.
	PublicBaseURL string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
	// MaxBytes caps uploads and remote fetches.
	MaxBytes int64 `json:"maxBytes" yaml:"maxBytes"`
}

// AIConfig configures the recipe generation model API (OpenAI-compatible
// chat completions).
type AIConfig struct {
	BaseURL string        `json:"baseUrl" yaml:"baseUrl"`
	APIKey  string        `json:"apiKey" yaml:"apiKey"`
	Model   string        `json:"model" yaml:"model"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// OverpassConfig configures the OpenStreetMap Overpass endpoint used for
// nearby grocery store lookup.
type OverpassConfig struct {
	Endpoint string        `json:"endpoint" yaml:"endpoint"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
}

// QRCodeConfig defines QR code generation configuration for recipe sharing.
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// PubSubConfig defines Pub/Sub configuration for audit event publishing.
type PubSubConfig struct {
	// Provider type: "local" for local HTTP push or "google" for Google Pub/Sub.
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider).
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider).
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider).
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// RateLimitConfig throttles the credential-guessing surface.
type RateLimitConfig struct {
	AuthPerMinute int `json:"authPerMinute" yaml:"authPerMinute"`
	AuthBurst     int `json:"authBurst" yaml:"authBurst"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf, then applies environment
// variable overrides (POSTGRES_HOST -> postgres.host, aligned with the yaml
// key casing).
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for the config file.
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables on top of the yaml values.
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to a dotted path and align each segment
			// with existing yaml keys. Example: GOOGLEOAUTH_CLIENTID ->
			// googleOAuth.clientId (not googleoauth.clientid).
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching so env var overrides land on the
				// right struct fields.
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// canonicalizeEnvKey turns an environment variable name into a dotted config
// path, preferring the exact key casing already present in the yaml map so
// overrides merge instead of forking a second tree.
func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")

	var out []string
	current := existing
	for _, seg := range segments {
		matched := seg
		if current != nil {
			for k := range current {
				if strings.EqualFold(k, seg) {
					matched = k

					break
				}
			}
		}
		out = append(out, matched)

		next, ok := current[matched].(map[string]any)
		if !ok {
			current = nil

			continue
		}
		current = next
	}

	return strings.Join(out, ".")
}

// New loads the service configuration and applies defaults.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = DefaultTokenTTL
	}
	if cfg.Auth.BcryptCost <= 0 {
		cfg.Auth.BcryptCost = DefaultBcryptCost
	}
	if cfg.Auth.MinPasswordLength <= 0 {
		cfg.Auth.MinPasswordLength = DefaultMinPasswordLength
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = &RateLimitConfig{AuthPerMinute: 10, AuthBurst: 10}
	}
}
