package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups the application configuration (read via Viper from env and optionally a file).
type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	SMTP SMTPConfig
	Logo LogoConfig
}

// AppConfig general application configuration.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig HTTP server configuration.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SMTPConfig outbound mail configuration for invoice delivery.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
	// TLSSkipVerify disables certificate verification against the SMTP host.
	// Only meant for local relays with self-signed certificates.
	TLSSkipVerify bool
}

// LogoConfig bounds for remote logo fetching.
type LogoConfig struct {
	MaxBytes     int64         // hard cap on downloaded logo size
	MaxRedirects int           // redirect hops before giving up
	FetchTimeout time.Duration // transport-level bound on the whole fetch
}

// Load reads configuration from environment variables (and optionally a file).
// Env vars take priority. Expected names: APP_ENV, HTTP_PORT, SMTP_HOST, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Optional: configuration file (.env or config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignore when missing

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignore when missing

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "accountsy-bill"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 5001),
		},
		SMTP: SMTPConfig{
			Host:          getString(v, "SMTP_HOST", ""),
			Port:          getInt(v, "SMTP_PORT", 587),
			User:          getString(v, "SMTP_USER", ""),
			Pass:          getString(v, "SMTP_PASS", ""),
			From:          getString(v, "SMTP_FROM", "no-reply@accountsybill.com"),
			TLSSkipVerify: getBool(v, "SMTP_TLS_SKIP_VERIFY", false),
		},
		Logo: LogoConfig{
			MaxBytes:     int64(getInt(v, "LOGO_MAX_BYTES", 5*1024*1024)),
			MaxRedirects: getInt(v, "LOGO_MAX_REDIRECTS", 3),
			FetchTimeout: time.Duration(getInt(v, "LOGO_FETCH_TIMEOUT_SECONDS", 15)) * time.Second,
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
