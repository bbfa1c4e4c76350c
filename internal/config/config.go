package config

import "os"

type Config struct {
	DatabaseURL      string
	JWTSecret        string
	Port             string
	UploadDir        string
	PublicPortfolios bool
}

func Load() *Config {
	return &Config{
		DatabaseURL:      getEnv("DATABASE_URL", "skilltrackr.db"),
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Port:             getEnv("PORT", "8080"),
		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
		PublicPortfolios: getEnv("PUBLIC_PORTFOLIOS", "true") != "false",
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
