package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Credentials CredentialsConfig `yaml:"credentials"`
	MongoDB     MongoDBConfig     `yaml:"mongodb"`
	Binance     BinanceConfig     `yaml:"binance"`
	ThreeCommas ThreeCommasConfig `yaml:"threecommas"`
	CORS        CORSConfig        `yaml:"cors"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Env selects how much detail uncaught errors expose. Anything other
	// than "development" renders a generic message.
	Env string `yaml:"env"`
}

// CredentialsConfig selects where the connected exchange credential pair
// lives. Driver is one of "memory", "sqlite" or "mongo". EncryptionKey, when
// set, must be exactly 32 bytes and enables AES-256-GCM at rest.
type CredentialsConfig struct {
	Driver        string `yaml:"driver"`
	DSN           string `yaml:"dsn"`
	EncryptionKey string `yaml:"encryption_key"`
}

type MongoDBConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type BinanceConfig struct {
	BaseURL   string        `yaml:"base_url"`
	APIKey    string        `yaml:"api_key"`
	APISecret string        `yaml:"api_secret"`
	Timeout   time.Duration `yaml:"timeout"`
}

type ThreeCommasConfig struct {
	BaseURL   string        `yaml:"base_url"`
	APIKey    string        `yaml:"api_key"`
	APISecret string        `yaml:"api_secret"`
	Timeout   time.Duration `yaml:"timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.Env == "" {
		c.Server.Env = "production"
	}
	if c.Credentials.Driver == "" {
		c.Credentials.Driver = "memory"
	}
	if c.Binance.BaseURL == "" {
		c.Binance.BaseURL = "https://api.binance.com"
	}
	if c.Binance.Timeout == 0 {
		c.Binance.Timeout = 10 * time.Second
	}
	if c.ThreeCommas.BaseURL == "" {
		c.ThreeCommas.BaseURL = "https://api.3commas.io"
	}
	if c.ThreeCommas.Timeout == 0 {
		c.ThreeCommas.Timeout = 10 * time.Second
	}
}

// applyEnv lets deployment environment variables override the YAML file.
// Vendor credentials were always env-provided in deployments of this bridge,
// so the env names are kept stable.
func (c *Config) applyEnv() {
	if v := os.Getenv("HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		c.MongoDB.URI = v
	}
	if v := os.Getenv("CREDENTIAL_DRIVER"); v != "" {
		c.Credentials.Driver = v
	}
	if v := os.Getenv("CREDENTIAL_DSN"); v != "" {
		c.Credentials.DSN = v
	}
	if v := os.Getenv("CREDENTIAL_ENC_KEY"); v != "" {
		c.Credentials.EncryptionKey = v
	}
	if v := os.Getenv("BINANCE_API_KEY"); v != "" {
		c.Binance.APIKey = v
	}
	if v := os.Getenv("BINANCE_API_SECRET"); v != "" {
		c.Binance.APISecret = v
	}
	if v := os.Getenv("THREE_COMMA_API_KEY"); v != "" {
		c.ThreeCommas.APIKey = v
	}
	if v := os.Getenv("THREE_COMMA_API_SECRET"); v != "" {
		c.ThreeCommas.APISecret = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				c.CORS.AllowedOrigins = append(c.CORS.AllowedOrigins, origin)
			}
		}
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
