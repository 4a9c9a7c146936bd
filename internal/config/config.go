// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the backend configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Bedrock   BedrockConfig   `mapstructure:"bedrock"`
	GVA       GVAConfig       `mapstructure:"gva"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Port           int    `mapstructure:"port"`
	GinMode        string `mapstructure:"gin_mode"`
	CORSOrigins    string `mapstructure:"cors_origins"`
	TrustedProxies string `mapstructure:"trusted_proxies"`
}

// Origins splits CORS_ORIGINS. An empty list or "*" means any origin.
func (s ServerConfig) Origins() []string {
	return splitList(s.CORSOrigins)
}

// Proxies splits TRUSTED_PROXIES (IPs or CIDRs). Empty means X-Forwarded-For
// is never trusted and the client IP is the peer address.
func (s ServerConfig) Proxies() []string {
	return splitList(s.TrustedProxies)
}

func splitList(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BedrockConfig holds everything needed to call the model. The AWS_* values
// are credentials: never commit them, use .env (git-ignored) or the runtime env.
type BedrockConfig struct {
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	SessionToken    string        `mapstructure:"session_token"`
	ModelID         string        `mapstructure:"model_id"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Temperature     float64       `mapstructure:"temperature"`
	TopP            float64       `mapstructure:"top_p"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// MissingEnvError lists environment variables that must be set before the
// model API can be called.
type MissingEnvError struct {
	Vars []string
}

func (e *MissingEnvError) Error() string {
	return "faltan variables de entorno: " + strings.Join(e.Vars, ", ")
}

// StaticCredentials reports whether an explicit access key pair is configured.
func (b BedrockConfig) StaticCredentials() bool {
	return b.AccessKeyID != "" && b.SecretAccessKey != ""
}

// Validate is the pre-flight check run before every model invocation.
// Region and model id are mandatory. The key pair must be complete or
// absent; absent means the SDK default credential chain (IAM role, profile).
func (b BedrockConfig) Validate() error {
	var missing []string
	if strings.TrimSpace(b.Region) == "" {
		missing = append(missing, "AWS_REGION")
	}
	if strings.TrimSpace(b.ModelID) == "" {
		missing = append(missing, "BEDROCK_MODEL_ID")
	}
	if b.AccessKeyID != "" && b.SecretAccessKey == "" {
		missing = append(missing, "AWS_SECRET_ACCESS_KEY")
	}
	if b.AccessKeyID == "" && b.SecretAccessKey != "" {
		missing = append(missing, "AWS_ACCESS_KEY_ID")
	}
	if len(missing) > 0 {
		return &MissingEnvError{Vars: missing}
	}
	return nil
}

type GVAConfig struct {
	FPCSVURL2025    string        `mapstructure:"fp_csv_url_2025"`
	FPCSVURL2024    string        `mapstructure:"fp_csv_url_2024"`
	CentrosCSVURL   string        `mapstructure:"centros_csv_url"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`
	FPIndexTTL      time.Duration `mapstructure:"fp_index_ttl"`
	CentrosIndexTTL time.Duration `mapstructure:"centros_index_ttl"`
}

// FPSources returns the enrolment CSV URLs in preference order.
func (g GVAConfig) FPSources() []string {
	var out []string
	for _, u := range []string{g.FPCSVURL2025, g.FPCSVURL2024} {
		if strings.TrimSpace(u) != "" {
			out = append(out, u)
		}
	}
	return out
}

type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	AdminTokenTTL     time.Duration `mapstructure:"admin_token_ttl"`
}

type RateLimitConfig struct {
	OrientacionPerMinute int `mapstructure:"orientacion_per_minute"`
	OrientacionBurst     int `mapstructure:"orientacion_burst"`
}
