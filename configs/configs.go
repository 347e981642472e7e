package configs

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type ConfigStruct struct {
	Port                      string
	TmdbApiKey                string
	MongodbDatabaseUrl        string
	MongodbDatabaseName       string
	SessionSecret             string
	RedisUrl                  string
	RedisPassword             string
	WaitForRedisConnectionSec int
	CorsAllowedOrigins        []string
	SentryDns                 string
	SentryRelease             string
	PrintErrors               bool
}

var configs = ConfigStruct{}

func GetConfigs() ConfigStruct {
	return configs
}

func LoadEnvVariables() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	configs.Port = os.Getenv("PORT")
	if configs.Port == "" {
		configs.Port = "5000"
	}
	configs.TmdbApiKey = os.Getenv("TMDB_API_KEY")
	configs.MongodbDatabaseUrl = os.Getenv("MONGODB_DATABASE_URL")
	configs.MongodbDatabaseName = os.Getenv("MONGODB_DATABASE_NAME")
	configs.SessionSecret = os.Getenv("SESSION_SECRET")
	configs.RedisUrl = os.Getenv("REDIS_URL")
	configs.RedisPassword = os.Getenv("REDIS_PASSWORD")
	configs.WaitForRedisConnectionSec, _ = strconv.Atoi(os.Getenv("WAIT_REDIS_CONNECTION_SEC"))
	configs.CorsAllowedOrigins = strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), "---")
	for i := range configs.CorsAllowedOrigins {
		configs.CorsAllowedOrigins[i] = strings.TrimSpace(configs.CorsAllowedOrigins[i])
	}
	configs.SentryDns = os.Getenv("SENTRY_DNS")
	configs.SentryRelease = os.Getenv("SENTRY_RELEASE")
	configs.PrintErrors = os.Getenv("PRINT_ERRORS") == "true"
}

// CheckRequiredConfigs returns the names of the required environment variables
// that are missing. The caller decides whether that is fatal.
func CheckRequiredConfigs() []string {
	required := map[string]string{
		"TMDB_API_KEY":          configs.TmdbApiKey,
		"MONGODB_DATABASE_URL":  configs.MongodbDatabaseUrl,
		"MONGODB_DATABASE_NAME": configs.MongodbDatabaseName,
		"SESSION_SECRET":        configs.SessionSecret,
	}

	missing := make([]string, 0)
	for name, value := range required {
		if value == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
