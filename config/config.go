package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port       string
	Timezone   string
	DBPath     string
	DBLogLevel string
	StaticDir  string
	SeedPath   string

	CORSOrigins   []string
	MaxJobsPerDay int

	AllowedArticles      []string
	AllowedMachineGroups []string
	ExcludedEmployees    []string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:       get("PORT", "8000"),
		Timezone:   get("TZ", "Europe/Stockholm"),
		DBPath:     get("DB_PATH", "planner.db"),
		DBLogLevel: get("DB_LOG_LEVEL", "warn"),
		StaticDir:  get("STATIC_DIR", ""),
		SeedPath:   get("SEED_PATH", ""),

		CORSOrigins:   SplitList(get("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),
		MaxJobsPerDay: 4,

		AllowedArticles:      SplitList(get("IMPORT_ALLOWED_ARTICLES", "")),
		AllowedMachineGroups: SplitList(get("IMPORT_ALLOWED_MACHINE_GROUPS", "")),
		ExcludedEmployees:    SplitList(get("EXPORT_EXCLUDED_EMPLOYEES", "")),
	}
	if v := get("MAX_JOBS_PER_DAY", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxJobsPerDay = n
		} else {
			log.Printf("[cfg] ignoring MAX_JOBS_PER_DAY=%q", v)
		}
	}
	log.Printf("[cfg] %+v", cfg)
	return cfg
}

// SplitList turns "a, b,,c" into [a b c].
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
