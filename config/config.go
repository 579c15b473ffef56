package config

import (
	"fmt"
	"os"
)

// Config collects everything the service reads from the environment. It is
// built once in main and handed to the components that need it; nothing in
// the codebase reads env vars after startup.
type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	JWTSecret     []byte
	Timezone      string
	AdminUser     string // seed credentials, used only when `admin` is empty
	AdminPassword string
	StaticDir     string
}

// Load reads the environment into a Config, applying defaults for everything
// except the JWT secret, which has no safe default.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	port := getenv("PORT", "8080")
	if port[0] != ':' {
		port = ":" + port
	}

	return &Config{
		Port:          port,
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getenv("MONGO_DB", "salgadosdb"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:     []byte(secret),
		Timezone:      getenv("STORE_TIMEZONE", ""),
		AdminUser:     getenv("ADMIN_USER", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		StaticDir:     getenv("STATIC_DIR", "static"),
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
