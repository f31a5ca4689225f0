package config

import (
	"fmt"
	"os"
	"strconv"
)

func New() (Config, error) {
	basePath, err := requireEnv("BASE_PATH")
	if err != nil {
		return Config{}, err
	}

	postgresql, err := newPostgresql()
	if err != nil {
		return Config{}, err
	}

	return Config{
		BasePath: basePath,
		// spring-style cron specs are accepted as well
		LookupRefreshSchedule: envOrDefault("LOOKUP_REFRESH_SCHEDULE", "@every 10m"),
		Postgresql:            postgresql,
	}, nil
}

type Config struct {
	BasePath              string
	LookupRefreshSchedule string
	Postgresql            Postgresql
}

func newPostgresql() (Postgresql, error) {
	host, err := requireEnv("DATABASE_HOST")
	if err != nil {
		return Postgresql{}, err
	}
	port, err := requireEnvAsInt("DATABASE_PORT")
	if err != nil {
		return Postgresql{}, err
	}
	username, err := requireEnv("DATABASE_USERNAME")
	if err != nil {
		return Postgresql{}, err
	}
	password, err := requireEnv("DATABASE_PASSWORD")
	if err != nil {
		return Postgresql{}, err
	}
	name, err := requireEnv("DATABASE_NAME")
	if err != nil {
		return Postgresql{}, err
	}

	return Postgresql{
		Host:         host,
		Port:         port,
		Username:     username,
		Password:     password,
		DatabaseName: name,
	}, nil
}

type Postgresql struct {
	Host         string
	Port         int
	Username     string
	Password     string
	DatabaseName string
}

func requireEnv(key string) (string, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return "", fmt.Errorf("can't find environment variable: %s", key)
	}
	return value, nil
}

func requireEnvAsInt(key string) (int, error) {
	valueStr, err := requireEnv(key)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("can't parse %s as integer: %v", key, err)
	}
	return value, nil
}

func envOrDefault(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
