package config

import (
	_ "embed"
	"fmt"
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
	logLevel := os.Getenv("SP_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("SP_DEBUG") == "true"
}

func GetEnvironment() string {
	env := os.Getenv("SP_ENV")
	if env == "" {
		return "production"
	}
	return env
}

func GetListen() string {
	listen := os.Getenv("SP_LISTEN")
	if listen == "" {
		return ":8080"
	}
	return listen
}

func GetBasePath() string {
	basePath := os.Getenv("SP_BASE_PATH")
	if basePath == "" {
		return "/"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("SP_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "data"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("SP_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

func GetUploadFolder() string {
	uploadFolderPath := os.Getenv("SP_UPLOAD_FOLDER")
	if uploadFolderPath == "" {
		uploadFolderPath = "uploads"
	}
	return uploadFolderPath
}

// GetUploadMaxBytes returns the per-file upload size ceiling.
func GetUploadMaxBytes() int64 {
	return envInt64("SP_UPLOAD_MAX_BYTES", 5<<20)
}

// GetPasswordMinLength returns the minimum accepted password length for registration.
func GetPasswordMinLength() int {
	return int(envInt64("SP_PASSWORD_MIN_LENGTH", 8))
}

// GetCsrfTokenTTL returns the CSRF token lifetime in seconds.
func GetCsrfTokenTTL() int {
	return int(envInt64("SP_CSRF_TTL", 3600))
}

// GetSessionSecret returns the cookie store signing secret. Empty means a
// random secret is generated at boot, invalidating sessions across restarts.
func GetSessionSecret() string {
	return os.Getenv("SP_SESSION_SECRET")
}

func GetCertFile() string {
	return os.Getenv("SP_CERT_FILE")
}

func GetKeyFile() string {
	return os.Getenv("SP_KEY_FILE")
}

func GetWebDomain() string {
	return os.Getenv("SP_WEB_DOMAIN")
}

func envInt64(key string, defaultValue int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
