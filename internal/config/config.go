package config

import (
	"os"
	"strconv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	CORSOrigin  string
	UploadDir   string

	// DefaultUserID is the identity attached to every created post until a
	// real auth layer replaces the identity middleware.
	DefaultUserID uint
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvu(key string, def uint) uint {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			return uint(n)
		}
	}
	return def
}

func Load() *Config {
	return &Config{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   getenv("DATABASE_URL", ""),
		CORSOrigin:    getenv("CORS_ORIGIN", "*"),
		UploadDir:     getenv("UPLOAD_DIR", "public/uploads"),
		DefaultUserID: getenvu("DEFAULT_USER_ID", 1),
	}
}
