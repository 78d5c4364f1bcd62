package config

import (
	"os"
	"strings"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

type Config struct {
	LogLevel string
	Output   string
}

func Load() Config {
	return Config{
		LogLevel: getEnv("SCHEDULE_LOG_LEVEL", "warn"),
		Output:   outputFormat(getEnv("SCHEDULE_OUTPUT", OutputText)),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// outputFormat falls back to text for anything it does not recognize
func outputFormat(v string) string {
	if strings.EqualFold(v, OutputJSON) {
		return OutputJSON
	}
	return OutputText
}
