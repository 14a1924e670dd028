package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

type Config struct {
	HTTP      HTTPConfig
	Store     StoreConfig
	Admin     AdminConfig
	Telemetry TelemetryConfig
	RedisAddr string // empty disables idempotency
}

type HTTPConfig struct {
	Port           int
	AllowedOrigins []string
}

type StoreConfig struct {
	Kind       string
	MenuPath   string
	OrdersPath string
	SQLitePath string
}

type AdminConfig struct {
	User     string
	Password string
}

type TelemetryConfig struct {
	ServiceName  string
	OTLPEndpoint string // empty disables tracing
	Environment  string
	LogLevel     string
}

func (c HTTPConfig) Addr() string { return ":" + strconv.Itoa(c.Port) }

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "3000"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("config: invalid PORT %q", os.Getenv("PORT"))
	}

	kind := strings.ToLower(getEnv("ORDER_STORE", StoreJSON))
	if kind != StoreJSON && kind != StoreSQLite {
		return nil, fmt.Errorf("config: ORDER_STORE must be %q or %q, got %q", StoreJSON, StoreSQLite, kind)
	}

	dataDir := getEnv("DATA_DIR", ".")

	return &Config{
		HTTP: HTTPConfig{
			Port:           port,
			AllowedOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		},
		Store: StoreConfig{
			Kind:       kind,
			MenuPath:   getEnv("MENU_PATH", filepath.Join(dataDir, "cardapio.json")),
			OrdersPath: getEnv("ORDERS_PATH", filepath.Join(dataDir, "pedidos.json")),
			SQLitePath: getEnv("SQLITE_PATH", filepath.Join(dataDir, "pedidos.db")),
		},
		Admin: AdminConfig{
			User:     getEnv("ADMIN_USER", "admin"),
			Password: getEnv("ADMIN_PASSWORD", "admin"),
		},
		Telemetry: TelemetryConfig{
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "order-api"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Environment:  getEnv("ENVIRONMENT", "development"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
		},
		RedisAddr: getEnv("REDIS_ADDR", ""),
	}, nil
}

// APIURL is the base URL the storefront CLI talks to.
func APIURL() string {
	_ = godotenv.Load()
	return getEnv("API_URL", "http://localhost:3000")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
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
