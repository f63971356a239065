package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"
)

// EnvPrefix is prepended to every environment override (ex: CADASTRO_API_PORT).
const EnvPrefix = "CADASTRO_"

// DEFAULT_JWT_SECRET só serve para desenvolvimento.
const DEFAULT_JWT_SECRET = "CHANGE_ME"

type Configuration struct {
	ApiPort  string `json:"api_port" env:"API_PORT"`
	LogLevel string `json:"log_level" env:"LOG_LEVEL"` // debug|info|warn|error

	Database string `json:"database" env:"DATABASE"` // "sqlite3" ou "postgres"
	DbPath   string `json:"db_path" env:"DB_PATH"`   // arquivo sqlite
	DbHost   string `json:"db_host" env:"DB_HOST"`
	DbPort   string `json:"db_port" env:"DB_PORT"`
	DbUser   string `json:"db_user" env:"DB_USER"`
	DbName   string `json:"db_name" env:"DB_NAME"`
	DbPass   string `json:"db_pass" env:"DB_PASS"`
	DbLog    bool   `json:"db_log" env:"DB_LOG"`

	PublicDir string `json:"public_dir" env:"PUBLIC_DIR"`

	Upload struct {
		Dir                    string `json:"dir" env:"UPLOAD_DIR"`
		MaxBytes               int64  `json:"max_bytes" env:"UPLOAD_MAX_BYTES"`
		JanitorIntervalMinutes int    `json:"janitor_interval_minutes" env:"UPLOAD_JANITOR_INTERVAL_MINUTES"`
		JanitorGraceMinutes    int    `json:"janitor_grace_minutes" env:"UPLOAD_JANITOR_GRACE_MINUTES"`
	} `json:"upload"`

	Security struct {
		JwtSecret     string `json:"jwt_secret" env:"JWT_SECRET"`
		TokenTTLHours int    `json:"token_ttl_hours" env:"TOKEN_TTL_HOURS"`
		CookieName    string `json:"cookie_name" env:"COOKIE_NAME"`
		CookieSecure  bool   `json:"cookie_secure" env:"COOKIE_SECURE"`
		CorsOrigin    string `json:"cors_origin" env:"CORS_ORIGIN"`
	} `json:"security"`
}

// Get carrega o arquivo de configuração (JSON com comentários), aplica .env e
// variáveis de ambiente por cima e preenche os defaults.
// Arquivo ausente não é erro: tudo pode vir do ambiente.
func Get(path string) (Configuration, error) {
	var c Configuration

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return c, fmt.Errorf("read config: %w", err)
		default:
			std, err := hujson.Standardize(b)
			if err != nil {
				return c, fmt.Errorf("parse config %s: %w", path, err)
			}
			if err := json.Unmarshal(std, &c); err != nil {
				return c, fmt.Errorf("decode config %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, fmt.Errorf("load .env: %w", err)
	}
	if err := env.ParseWithOptions(&c, env.Options{Prefix: EnvPrefix}); err != nil {
		return c, fmt.Errorf("parse env: %w", err)
	}

	c.applyDefaults()
	return c, nil
}

// defaults (pra evitar nil/zero chato)
func (c *Configuration) applyDefaults() {
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.DbPath == "" {
		c.DbPath = "db/cadastro.db"
	}
	if c.Upload.Dir == "" {
		c.Upload.Dir = "uploads"
	}
	if c.Upload.MaxBytes <= 0 {
		c.Upload.MaxBytes = 10 << 20
	}
	if c.Upload.JanitorIntervalMinutes <= 0 {
		c.Upload.JanitorIntervalMinutes = 30
	}
	if c.Upload.JanitorGraceMinutes <= 0 {
		c.Upload.JanitorGraceMinutes = 60
	}
	if c.Security.TokenTTLHours <= 0 {
		c.Security.TokenTTLHours = 12
	}
	if c.Security.CookieName == "" {
		c.Security.CookieName = "token"
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = DEFAULT_JWT_SECRET
	}
	if c.Security.CorsOrigin == "" {
		c.Security.CorsOrigin = "*"
	}
}

// DefaultSecret informa se os tokens ainda são assinados com a chave padrão.
func (c Configuration) DefaultSecret() bool {
	return c.Security.JwtSecret == DEFAULT_JWT_SECRET
}

func (c Configuration) TokenTTL() time.Duration {
	return time.Duration(c.Security.TokenTTLHours) * time.Hour
}

func (c Configuration) JanitorInterval() time.Duration {
	return time.Duration(c.Upload.JanitorIntervalMinutes) * time.Minute
}

func (c Configuration) JanitorGrace() time.Duration {
	return time.Duration(c.Upload.JanitorGraceMinutes) * time.Minute
}
