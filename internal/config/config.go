package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"

	ModeReadWrite = "RW"
	ModeReadOnly  = "RO"
)

type HTTPServer struct {
	Host            string
	Port            string
	Mode            string
	ShutdownTimeout time.Duration
}

type Storage struct {
	Backend string
}

type RedisCache struct {
	Host       string
	Port       string
	Password   string
	PopularTTL time.Duration
}

// Enabled reports whether a redis host was configured at all.
func (r RedisCache) Enabled() bool {
	return r.Host != ""
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Migrate  bool
}

type Logging struct {
	Level  string
	Format string
}

type Config struct {
	HTTP     HTTPServer
	Storage  Storage
	Redis    RedisCache
	Postgres Postgres
	Logging  Logging
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := FromEnv()
	log.Printf("%s backend config : %+v\n", logtag, cfg.redacted())
	return cfg
}

// FromEnv builds the config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		HTTP:     *newHTTP(),
		Storage:  *newStorage(),
		Redis:    *newRedis(),
		Postgres: *newPostgres(),
		Logging:  *newLogging(),
	}
}

func (c Config) redacted() Config {
	if c.Postgres.Password != "" {
		c.Postgres.Password = "***"
	}
	if c.Redis.Password != "" {
		c.Redis.Password = "***"
	}
	return c
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port:            getenv("HTTP_PORT", "8080"),
		Host:            getenv("HTTP_HOST", "localhost"),
		Mode:            getenv("HTTP_MODE", ModeReadWrite),
		ShutdownTimeout: getduration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func newStorage() *Storage {
	return &Storage{
		Backend: getenv("STORAGE_BACKEND", BackendMemory),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:       getenv("REDIS_PORT", "6379"),
		Host:       getenv("REDIS_HOST", ""),
		Password:   getenv("REDIS_PASSWORD", ""),
		PopularTTL: getduration("REDIS_POPULAR_TTL", time.Minute),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "filmorate"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
		Migrate:  getbool("DB_MIGRATE", true),
	}
}

func newLogging() *Logging {
	return &Logging{
		Level:  getenv("LOG_LEVEL", "info"),
		Format: getenv("LOG_FORMAT", "text"),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

func getduration(key string, defaultValue time.Duration) time.Duration {
	raw := getenv(key, defaultValue.String())
	d, err := time.ParseDuration(raw)
	if err != nil {
		fmt.Printf("%s %s = %q is not a duration. Using default value %s\n", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getbool(key string, defaultValue bool) bool {
	raw := getenv(key, strconv.FormatBool(defaultValue))
	b, err := strconv.ParseBool(raw)
	if err != nil {
		fmt.Printf("%s %s = %q is not a bool. Using default value %t\n", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return b
}
