package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	PhoneRegion    string `json:"phone_region"`
	PasswordLength int    `json:"password_length"`
	Lifetime       struct {
		AccessToken int64 `json:"access_token"`
	} `json:"lifetime"`
	Env         string `json:"-"`
	DatabaseUrl string `json:"-"`
	Secret      []byte `json:"-"`
	Algorithm   string `json:"-"`
	Smtp        struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Login    string `json:"login"`
		Password string `json:"password"`
		Email    string `json:"email"`
	} `json:"smtp"`
}

func defaults() *Config {
	cfg := &Config{
		Host:           "0.0.0.0",
		Port:           8000,
		PhoneRegion:    "US",
		PasswordLength: 12,
		Algorithm:      "HS256",
	}
	cfg.Lifetime.AccessToken = int64((24 * time.Hour).Seconds())
	cfg.Smtp.Port = 587
	return cfg
}

/* Файл конфигурации необязателен, секреты берутся только из окружения */
func Load(filePath string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(filePath)
	switch {
	case err == nil:
		if err = json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config parsing failed: %w", err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	cfg.Env = os.Getenv("GO_ENV")
	cfg.DatabaseUrl = os.Getenv("DATABASE_URL")
	cfg.Secret = []byte(os.Getenv("JWT_SECRET_KEY"))
	if algorithm := os.Getenv("JWT_ALGORITHM"); algorithm != "" {
		cfg.Algorithm = algorithm
	}
	if port := os.Getenv("PORT"); port != "" {
		if cfg.Port, err = strconv.Atoi(port); err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
	}
	return cfg, cfg.validate()
}

func (cfg *Config) validate() error {
	if len(cfg.Secret) == 0 {
		return errors.New("JWT_SECRET_KEY is not set")
	}
	if cfg.DatabaseUrl == "" && !cfg.IsDev() {
		return errors.New("DATABASE_URL is not set")
	}
	/* Без SMTP временный пароль нового аккаунта некуда доставить */
	if !cfg.SmtpEnabled() && !cfg.IsDev() {
		return errors.New("smtp.host is required outside DEV")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.PasswordLength < 8 {
		return fmt.Errorf("password_length must be at least 8, got %d", cfg.PasswordLength)
	}
	if cfg.Lifetime.AccessToken <= 0 {
		return fmt.Errorf("lifetime.access_token must be positive, got %d", cfg.Lifetime.AccessToken)
	}
	return nil
}

func (cfg *Config) IsDev() bool {
	return cfg.Env == "DEV"
}

func (cfg *Config) Address() string {
	return cfg.Host + ":" + strconv.Itoa(cfg.Port)
}

func (cfg *Config) AccessTokenLifetime() time.Duration {
	return time.Duration(cfg.Lifetime.AccessToken) * time.Second
}

func (cfg *Config) SmtpEnabled() bool {
	return cfg.Smtp.Host != ""
}

func WriteTemplate(filePath string) error {
	data, err := json.MarshalIndent(defaults(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
