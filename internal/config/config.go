// Package config loads service settings from the environment and an optional
// .env file. Every key can be set as MSME_<KEY> or, for the keys shared with
// the rest of the deployment, by its bare name.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "MSME"

type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	Store     StoreConfig
	Kafka     KafkaConfig
	Telemetry TelemetryConfig
	Hub       HubConfig
	Chat      ChatConfig
	Business  BusinessConfig
	Worker    WorkerConfig
	Services  ServicesConfig

	NotifyLatency time.Duration
	CORSOrigins   []string
}

type StoreConfig struct {
	Backend       string
	Prefix        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PostgresURL   string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

type TelemetryConfig struct {
	OTLPEndpoint   string
	ServiceVersion string
}

type HubConfig struct {
	VerifyDelay  time.Duration
	ChatDelayMin time.Duration
	ChatDelayMax time.Duration
	SuccessRate  float64
}

type ChatConfig struct {
	RatePerSecond float64
	Burst         int
}

type BusinessConfig struct {
	Name    string
	Address string
	Phone   string
}

type WorkerConfig struct {
	SweepInterval time.Duration
	OwnerEmail    string
	OwnerPhone    string
}

type ServicesConfig struct {
	HubURL    string
	NotifyURL string
}

// keys maps each setting to its default. Bare aliases are listed in aliases.
var keys = map[string]any{
	"port":                        "",
	"log_level":                   "info",
	"log_format":                  "json",
	"store_backend":               "memory",
	"store_prefix":                "msme:",
	"redis_addr":                  "localhost:6379",
	"redis_password":              "",
	"redis_db":                    0,
	"postgres_url":                "",
	"kafka_brokers":               "",
	"kafka_topic":                 "msme.events",
	"kafka_group_id":              "msme-worker",
	"otel_exporter_otlp_endpoint": "localhost:4317",
	"service_version":             "0.1.0",
	"verify_delay":                "1500ms",
	"chat_delay_min":              "1s",
	"chat_delay_max":              "3s",
	"payment_success_rate":        0.7,
	"chat_rate_per_second":        1.0,
	"chat_burst":                  5,
	"business_name":               "MSME Business Hub",
	"business_address":            "",
	"business_phone":              "",
	"sweep_interval":              "1h",
	"owner_email":                 "owner@example.com",
	"owner_phone":                 "",
	"hub_service_url":             "http://localhost:8081",
	"notify_service_url":          "http://localhost:8083",
	"notify_latency":              "200ms",
	"cors_origins":                "*",
}

var aliases = []string{
	"port",
	"postgres_url",
	"kafka_brokers",
	"otel_exporter_otlp_endpoint",
	"redis_addr",
	"hub_service_url",
	"notify_service_url",
}

// Load reads envFiles (".env" when none are given; missing files are
// skipped) and then the environment. defaultPort is used when no port is
// configured.
func Load(defaultPort string, envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	for key, def := range keys {
		v.SetDefault(key, def)
		names := []string{key, envPrefix + "_" + strings.ToUpper(key)}
		if isAlias(key) {
			names = append(names, strings.ToUpper(key))
		}
		if err := v.BindEnv(names...); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	cfg := Config{
		Port:      v.GetString("port"),
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		Store: StoreConfig{
			Backend:       strings.ToLower(v.GetString("store_backend")),
			Prefix:        v.GetString("store_prefix"),
			RedisAddr:     v.GetString("redis_addr"),
			RedisPassword: v.GetString("redis_password"),
			RedisDB:       v.GetInt("redis_db"),
			PostgresURL:   v.GetString("postgres_url"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("kafka_brokers")),
			Topic:   v.GetString("kafka_topic"),
			GroupID: v.GetString("kafka_group_id"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint:   v.GetString("otel_exporter_otlp_endpoint"),
			ServiceVersion: v.GetString("service_version"),
		},
		Hub: HubConfig{
			VerifyDelay:  v.GetDuration("verify_delay"),
			ChatDelayMin: v.GetDuration("chat_delay_min"),
			ChatDelayMax: v.GetDuration("chat_delay_max"),
			SuccessRate:  v.GetFloat64("payment_success_rate"),
		},
		Chat: ChatConfig{
			RatePerSecond: v.GetFloat64("chat_rate_per_second"),
			Burst:         v.GetInt("chat_burst"),
		},
		Business: BusinessConfig{
			Name:    v.GetString("business_name"),
			Address: v.GetString("business_address"),
			Phone:   v.GetString("business_phone"),
		},
		Worker: WorkerConfig{
			SweepInterval: v.GetDuration("sweep_interval"),
			OwnerEmail:    v.GetString("owner_email"),
			OwnerPhone:    v.GetString("owner_phone"),
		},
		Services: ServicesConfig{
			HubURL:    strings.TrimRight(v.GetString("hub_service_url"), "/"),
			NotifyURL: strings.TrimRight(v.GetString("notify_service_url"), "/"),
		},
		NotifyLatency: v.GetDuration("notify_latency"),
		CORSOrigins:   splitList(v.GetString("cors_origins")),
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case "memory", "redis":
	case "postgres":
		if c.Store.PostgresURL == "" {
			return errors.New("POSTGRES_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Hub.SuccessRate < 0 || c.Hub.SuccessRate > 1 {
		return fmt.Errorf("payment success rate %v is outside [0, 1]", c.Hub.SuccessRate)
	}
	if c.Hub.ChatDelayMax < c.Hub.ChatDelayMin {
		return errors.New("chat delay max is below chat delay min")
	}
	return nil
}

func isAlias(key string) bool {
	for _, a := range aliases {
		if a == key {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// NewLogger builds the process logger. format is "json" or "text".
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
