package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

// MaxUploadSizeDefault limits multipart request bodies when MAX_UPLOAD_SIZE is unset.
const MaxUploadSizeDefault = 3 * 1024 * 1024

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("USERHUB_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("USERHUB_DEBUG") == "true"
}

func GetListen() string {
	return os.Getenv("USERHUB_LISTEN")
}

func GetPort() int {
	return getEnvInt("USERHUB_PORT", 5000)
}

// GetSecret returns the key used to sign session cookies. Empty means a random
// key is generated at startup and sessions do not survive restarts.
func GetSecret() string {
	return os.Getenv("APP_SECRET")
}

func GetMaxUploadSize() int64 {
	return int64(getEnvInt("MAX_UPLOAD_SIZE", MaxUploadSizeDefault))
}

func GetUploadFolder() string {
	return getEnv("UPLOAD_FOLDER", "static/uploads")
}

func GetProfilePicsFolder() string {
	return getEnv("PROFILE_PICS_FOLDER", "static/uploads/images")
}

// GetPhoneRegion is the region phone numbers are parsed against. The original
// deployment served Romanian users, hence the default.
func GetPhoneRegion() string {
	return getEnv("PHONE_REGION", "RO")
}

func GetLogFolder() string {
	return getEnv("USERHUB_LOG_FOLDER", "/var/log")
}

func GetDBFolderPath() string {
	return getEnv("USERHUB_DB_FOLDER", "/etc/userhub")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
