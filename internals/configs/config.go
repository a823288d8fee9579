package configs

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is built once at startup and handed to the components that need it.
// Nothing reads the environment after Load returns.
type Config struct {
	AppVersion string
	Port       string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string

	JWTSecret      string
	JWTExpiry      time.Duration
	GoogleClientID string

	// Geocoding (nominatim-style search endpoint)
	GeocodeBaseURL string

	// Image CDN
	ImageAPIBaseURL  string
	ImageAPIKey      string
	ImagePublicKey   string
	CDNDomain        string
	DefaultAvatarURL string

	MidtransServerKey string
}

// Load reads .env (when present) and assembles the config. Missing required
// keys are logged, not fatal, so local tooling can still boot partial stacks.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system ENV")
	}

	cfg := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0"),
		Port:       getEnv("PORT", "3000"),

		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "eventhub"),
		DBSSLMode:  getEnv("DB_SSLMODE", "require"),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTExpiry:      getDuration("JWT_EXPIRY", 24*time.Hour),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),

		GeocodeBaseURL: getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),

		ImageAPIBaseURL:  getEnv("IMAGE_API_BASE_URL", ""),
		ImageAPIKey:      getEnv("IMAGE_API_SECRET_KEY", ""),
		ImagePublicKey:   getEnv("IMAGE_API_PUBLIC_KEY", ""),
		CDNDomain:        getEnv("CDN_DOMAIN", ""),
		DefaultAvatarURL: getEnv("DEFAULT_AVATAR_URL", ""),

		MidtransServerKey: getEnv("MIDTRANS_SERVER_KEY", ""),
	}

	for key, val := range map[string]string{
		"JWT_SECRET":         cfg.JWTSecret,
		"IMAGE_API_BASE_URL": cfg.ImageAPIBaseURL,
		"CDN_DOMAIN":         cfg.CDNDomain,
	} {
		if val == "" {
			log.Printf("warning: %s is not set", key)
		}
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("warning: invalid duration for %s, using default", key)
	}
	return def
}
