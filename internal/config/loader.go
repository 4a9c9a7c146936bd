// internal/config/loader.go
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultFPCSV2025 = "https://dadesobertes.gva.es/dataset/a2183efe-f62c-48ec-bdbe-22a4b63c3832/resource/79af67de-71a2-48b1-bd6d-57a2996e2669/download/alumnos-matriculados-fp_2025.csv"
	defaultFPCSV2024 = "https://dadesobertes.gva.es/dataset/04b2a721-9256-40f9-b45e-fa0c8e7000b5/resource/7ac929a5-9138-4791-924b-2f1f4c6777fc/download/alumnos-matriculados-fp_2024.csv"
	defaultCentros   = "https://dadesobertes.gva.es/dataset/68eb1d94-76d3-4305-8507-e1aab7717d0e/resource/1aa53c3a-4639-41aa-ac85-d58254c428c0/download/centros-docentes-de-la-comunitat-valenciana.csv"
)

// binding maps a config key to its environment variable and default.
type binding struct {
	key string
	env string
	def any
}

var bindings = []binding{
	{"server.port", "PORT", 8000},
	{"server.gin_mode", "GIN_MODE", "release"},
	{"server.cors_origins", "CORS_ORIGINS", "*"},
	{"server.trusted_proxies", "TRUSTED_PROXIES", ""},

	{"logging.level", "LOG_LEVEL", "info"},
	{"logging.format", "LOG_FORMAT", "json"},

	{"bedrock.region", "AWS_REGION", "us-east-1"},
	{"bedrock.access_key_id", "AWS_ACCESS_KEY_ID", ""},
	{"bedrock.secret_access_key", "AWS_SECRET_ACCESS_KEY", ""},
	{"bedrock.session_token", "AWS_SESSION_TOKEN", ""},
	{"bedrock.model_id", "BEDROCK_MODEL_ID", "amazon.nova-pro-v1:0"},
	{"bedrock.max_tokens", "BEDROCK_MAX_TOKENS", 1100},
	{"bedrock.temperature", "BEDROCK_TEMPERATURE", 0.35},
	{"bedrock.top_p", "BEDROCK_TOP_P", 0.9},
	{"bedrock.timeout", "BEDROCK_TIMEOUT", "60s"},

	{"gva.fp_csv_url_2025", "GVA_FP_CSV_URL_2025", defaultFPCSV2025},
	{"gva.fp_csv_url_2024", "GVA_FP_CSV_URL_2024", defaultFPCSV2024},
	{"gva.centros_csv_url", "GVA_CENTROS_CSV_URL", defaultCentros},
	{"gva.download_timeout", "GVA_DOWNLOAD_TIMEOUT", "40s"},
	{"gva.fp_index_ttl", "FP_INDEX_TTL", "24h"},
	{"gva.centros_index_ttl", "CENTROS_INDEX_TTL", "168h"},

	{"storage.db_path", "DB_PATH", "./orientador_fp.db"},

	{"auth.jwt_secret", "JWT_SECRET_KEY", ""},
	{"auth.admin_password_hash", "ADMIN_PASSWORD_HASH", ""},
	{"auth.admin_token_ttl", "ADMIN_TOKEN_TTL", "12h"},

	{"ratelimit.orientacion_per_minute", "ORIENTACION_RATE_PER_MINUTE", 10},
	{"ratelimit.orientacion_burst", "ORIENTACION_RATE_BURST", 3},
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	loadEnvFile()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", b.env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Bedrock.Region = strings.TrimSpace(cfg.Bedrock.Region)
	cfg.Bedrock.ModelID = strings.TrimSpace(cfg.Bedrock.ModelID)
	cfg.Bedrock.AccessKeyID = strings.TrimSpace(cfg.Bedrock.AccessKeyID)
	cfg.Bedrock.SecretAccessKey = strings.TrimSpace(cfg.Bedrock.SecretAccessKey)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	var errs []error
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", cfg.Server.Port))
	}
	for _, p := range cfg.Server.Proxies() {
		if !validProxy(p) {
			errs = append(errs, fmt.Errorf("TRUSTED_PROXIES: %q is not an IP or CIDR", p))
		}
	}
	if cfg.Bedrock.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("BEDROCK_MAX_TOKENS must be positive"))
	}
	if cfg.Bedrock.Temperature < 0 || cfg.Bedrock.Temperature > 1 {
		errs = append(errs, fmt.Errorf("BEDROCK_TEMPERATURE must be within [0,1]"))
	}
	if cfg.Bedrock.TopP < 0 || cfg.Bedrock.TopP > 1 {
		errs = append(errs, fmt.Errorf("BEDROCK_TOP_P must be within [0,1]"))
	}
	if cfg.Bedrock.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("BEDROCK_TIMEOUT must be positive"))
	}
	if cfg.GVA.DownloadTimeout <= 0 || cfg.GVA.FPIndexTTL <= 0 || cfg.GVA.CentrosIndexTTL <= 0 {
		errs = append(errs, fmt.Errorf("GVA timeouts and TTLs must be positive"))
	}
	if len(cfg.GVA.FPSources()) == 0 {
		errs = append(errs, fmt.Errorf("at least one of GVA_FP_CSV_URL_2025/GVA_FP_CSV_URL_2024 is required"))
	}
	if cfg.RateLimit.OrientacionPerMinute <= 0 || cfg.RateLimit.OrientacionBurst <= 0 {
		errs = append(errs, fmt.Errorf("ORIENTACION_RATE_* must be positive"))
	}
	if cfg.Auth.AdminPasswordHash != "" && cfg.Auth.JWTSecret == "" {
		errs = append(errs, fmt.Errorf("JWT_SECRET_KEY is required when ADMIN_PASSWORD_HASH is set"))
	}
	return errors.Join(errs...)
}

func validProxy(p string) bool {
	if _, _, err := net.ParseCIDR(p); err == nil {
		return true
	}
	return net.ParseIP(p) != nil
}

// loadEnvFile looks for .env in the working directory and up to the module root.
func loadEnvFile() {
	paths := []string{".env", "../.env", "../../.env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
