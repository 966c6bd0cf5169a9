package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	SlotBackendMemory   = "memory"
	SlotBackendPostgres = "postgres"
	SlotBackendRedis    = "redis"
)

type Config struct {
	HTTPAddr string

	SlotBackend   string
	CartSlotKey   string
	DatabaseURL   string
	MigrationsDir string
	DBMaxConns    int
	DBMinConns    int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CatalogURL     string
	CatalogTimeout time.Duration

	KafkaBrokers       []string
	KafkaTopic         string
	KafkaConsumerGroup string
	KafkaMaxBytes      int
	KafkaMinBytes      int

	NotifyHistory int
	PriceLocale   string
	PriceCurrency string

	ShutdownTimeout time.Duration
}

// KafkaEnabled reports whether the cart-command consumer should run.
func (c Config) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

func Load() (Config, error) {
	var c Config

	c.HTTPAddr = getenv("APP_HTTP_ADDR", ":8081")

	c.CartSlotKey = getenv("CART_SLOT_KEY", "@RocketShoes:cart")
	c.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	c.MigrationsDir = strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))
	c.DBMaxConns = getenvInt("DB_MAX_CONNS", 4)
	c.DBMinConns = getenvInt("DB_MIN_CONNS", 1)
	c.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	c.RedisPassword = os.Getenv("REDIS_PASSWORD")
	c.RedisDB = getenvInt("REDIS_DB", 0)

	c.SlotBackend = strings.ToLower(getenv("SLOT_BACKEND", defaultBackend(c)))
	switch c.SlotBackend {
	case SlotBackendMemory:
	case SlotBackendPostgres:
		if c.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required for SLOT_BACKEND=postgres")
		}
	case SlotBackendRedis:
		if c.RedisAddr == "" {
			return Config{}, errors.New("REDIS_ADDR is required for SLOT_BACKEND=redis")
		}
	default:
		return Config{}, fmt.Errorf("unknown SLOT_BACKEND %q", c.SlotBackend)
	}

	c.CatalogURL = strings.TrimSpace(os.Getenv("CATALOG_URL"))
	if c.CatalogURL == "" {
		return Config{}, errors.New("CATALOG_URL is required")
	}
	c.CatalogTimeout = getenvDuration("CATALOG_TIMEOUT", 10*time.Second)

	if brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); brokers != "" {
		c.KafkaBrokers = splitCSV(brokers)
	}
	c.KafkaTopic = getenv("KAFKA_TOPIC", "cart-commands")
	c.KafkaConsumerGroup = getenv("KAFKA_CONSUMER_GROUP", "cart-service")
	c.KafkaMinBytes = getenvInt("KAFKA_MIN_BYTES", 1)
	c.KafkaMaxBytes = getenvInt("KAFKA_MAX_BYTES", 1e6)

	c.NotifyHistory = getenvInt("NOTIFY_HISTORY", 20)
	c.PriceLocale = getenv("PRICE_LOCALE", "pt-BR")
	c.PriceCurrency = getenv("PRICE_CURRENCY", "BRL")

	c.ShutdownTimeout = getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)

	return c, nil
}

// defaultBackend picks the most durable store that has been configured.
func defaultBackend(c Config) string {
	switch {
	case c.DatabaseURL != "":
		return SlotBackendPostgres
	case c.RedisAddr != "":
		return SlotBackendRedis
	default:
		return SlotBackendMemory
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
