package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/connect-n/internal/domain"
)

type Config struct {
	Port            string
	ReleaseMode     bool
	AllowedOrigins  []string
	Columns         int
	Rows            int
	ConnectLength   int
	SearchDepth     int
	MaxColumns      int
	MaxRows         int
	MaxSearchDepth  int
	AISeed          int64
	BotMoveDelay    time.Duration
	RedisURL        string
	RedisPassword   string
	SnapshotTTL     time.Duration
	GameTokenSecret string
	GameTokenTTL    time.Duration
	CleanupInterval time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	allowedOrigins := []string{"http://localhost:5173"}
	if extra := GetEnv("ALLOWED_ORIGINS", ""); extra != "" {
		for _, origin := range strings.Split(extra, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	AppConfig = &Config{
		Port:            port,
		ReleaseMode:     GetEnvAsBool("RELEASE_MODE", false),
		AllowedOrigins:  allowedOrigins,
		Columns:         GetEnvAsInt("BOARD_COLUMNS", domain.DefaultColumns),
		Rows:            GetEnvAsInt("BOARD_ROWS", domain.DefaultRows),
		ConnectLength:   GetEnvAsInt("CONNECT_LENGTH", domain.DefaultConnectLength),
		SearchDepth:     GetEnvAsInt("SEARCH_DEPTH", 4),
		MaxColumns:      GetEnvAsInt("MAX_BOARD_COLUMNS", 20),
		MaxRows:         GetEnvAsInt("MAX_BOARD_ROWS", 20),
		MaxSearchDepth:  GetEnvAsInt("MAX_SEARCH_DEPTH", 6),
		AISeed:          int64(GetEnvAsInt("AI_SEED", 0)),
		BotMoveDelay:    time.Duration(GetEnvAsInt("BOT_MOVE_DELAY_MS", 500)) * time.Millisecond,
		RedisURL:        GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:   GetEnv("REDIS_PASSWORD", ""),
		SnapshotTTL:     time.Duration(GetEnvAsInt("SNAPSHOT_TTL_MINUTES", 60)) * time.Minute,
		GameTokenSecret: GetEnv("GAME_TOKEN_SECRET", "change-this-game-token-secret"),
		GameTokenTTL:    time.Duration(GetEnvAsInt("GAME_TOKEN_TTL_MINUTES", 720)) * time.Minute,
		CleanupInterval: time.Duration(GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 60)) * time.Minute,
	}

	return AppConfig
}

// Validate checks the values the game cannot start without
func (c *Config) Validate() error {
	if c.Columns <= 0 || c.Rows <= 0 || c.ConnectLength <= 0 {
		return fmt.Errorf("%w: %dx%d connect %d", domain.ErrInvalidBoardConfig, c.Columns, c.Rows, c.ConnectLength)
	}
	if c.Columns > c.MaxColumns || c.Rows > c.MaxRows {
		return fmt.Errorf("%w: %dx%d exceeds the %dx%d maximum",
			domain.ErrInvalidBoardConfig, c.Columns, c.Rows, c.MaxColumns, c.MaxRows)
	}
	if c.SearchDepth < 0 || c.SearchDepth > c.MaxSearchDepth {
		return fmt.Errorf("%w: %d is outside 0..%d", domain.ErrInvalidDepth, c.SearchDepth, c.MaxSearchDepth)
	}
	if c.ConnectLength > c.Columns && c.ConnectLength > c.Rows {
		log.Printf("[CONFIG] Connect length %d exceeds both board dimensions, games can only end in a draw", c.ConnectLength)
	}
	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
