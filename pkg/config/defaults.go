// Package config provides centralized default values for roulettesim-go
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Persistence
	DBDriver string
	DBPath   string

	// Game aggregator upstream
	SlotsLaunchAPIURL    string
	SlotsLaunchAPIToken  string
	SlotsLaunchPerPage   int
	SlotsLaunchGameType  string
	GamesCacheTTL        time.Duration
	UpstreamMinInterval  time.Duration
	UpstreamFetchTimeout time.Duration
	OriginDomain         string

	// Session and scoring
	SessionTTL       time.Duration
	SignalWindow     time.Duration
	MaxSignals       int
	MaxAssessments   int
	CasinoCatalogDir string

	// Geolocation
	GeoAPIURL    string
	GeoTimeout   time.Duration
	GeoStaleness time.Duration

	// Operator auth
	JWTSecret         string
	AdminPasswordHash string
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Persistence
	DBDriver = getEnvString("DB_DRIVER", "sqlite3")
	DBPath = getEnvString("DB_PATH", "roulettesim.db")

	// Game aggregator upstream
	SlotsLaunchAPIURL = getEnvString("SLOTSLAUNCH_API_URL", "https://slotslaunch.com/api/games")
	SlotsLaunchAPIToken = getEnvString("SLOTSLAUNCH_API_TOKEN", "")
	SlotsLaunchPerPage = getEnvInt("SLOTSLAUNCH_PER_PAGE", 150)
	SlotsLaunchGameType = getEnvString("SLOTSLAUNCH_GAME_TYPE", "22")
	GamesCacheTTL = getEnvDuration("GAMES_CACHE_TTL", 30*time.Minute)
	UpstreamMinInterval = getEnvDuration("UPSTREAM_MIN_INTERVAL", 1*time.Second)
	UpstreamFetchTimeout = getEnvDuration("UPSTREAM_FETCH_TIMEOUT", 10*time.Second)
	OriginDomain = getEnvString("ORIGIN_DOMAIN", "https://roulettesim.app")

	// Session and scoring
	SessionTTL = getEnvDuration("SESSION_TTL", 24*time.Hour)
	SignalWindow = getEnvDuration("SIGNAL_WINDOW", 24*time.Hour)
	MaxSignals = getEnvInt("MAX_SIGNALS", 50)
	MaxAssessments = getEnvInt("MAX_ASSESSMENTS", 10)
	CasinoCatalogDir = getEnvString("CASINO_CATALOG_DIR", "content/casinos")

	// Geolocation
	GeoAPIURL = getEnvString("GEO_API_URL", "")
	GeoTimeout = getEnvDuration("GEO_TIMEOUT", 10*time.Second)
	GeoStaleness = getEnvDuration("GEO_STALENESS", 5*time.Minute)

	// Operator auth
	JWTSecret = getEnvString("JWT_SECRET", "")
	AdminPasswordHash = getEnvString("ADMIN_PASSWORD_HASH", "")
}
