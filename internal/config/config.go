package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/daehyun-cho/matchup/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                   string
	ServiceName              string
	ServiceVersion           string
	HTTPAddr                 string
	DBURL                    string
	CORSAllowedOrigins       []string
	ReadTimeout              time.Duration
	WriteTimeout             time.Duration
	PprofEnabled             bool
	PprofAddr                string
	KakaoEnabled             bool
	KakaoBaseURL             string
	KakaoRESTAPIKey          string
	KakaoTimeout             time.Duration
	KakaoMaxRetries          int
	KakaoCircuitEnabled      bool
	KakaoCircuitFailureCount int
	KakaoCircuitOpenTimeout  time.Duration
	KakaoCircuitHalfOpenMax  int
	UptraceEnabled           bool
	UptraceDSN               string
	PyroscopeEnabled         bool
	PyroscopeServerAddress   string
	PyroscopeAppName         string
	PyroscopeAuthToken       string
	PyroscopeUploadRate      time.Duration
	InternalJobToken         string
	BackfillLimit            int
	BackfillMaxWorkers       int
	MemorySeedEnabled        bool
	LogLevel                 logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	kakaoEnabled, err := strconv.ParseBool(getEnv("KAKAO_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse KAKAO_ENABLED: %w", err)
	}
	kakaoRESTAPIKey := strings.TrimSpace(getEnv("KAKAO_REST_API_KEY", ""))
	if kakaoEnabled && kakaoRESTAPIKey == "" {
		return Config{}, fmt.Errorf("KAKAO_REST_API_KEY is required when KAKAO_ENABLED=true")
	}
	kakaoTimeout, err := time.ParseDuration(getEnv("KAKAO_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse KAKAO_TIMEOUT: %w", err)
	}
	if kakaoTimeout <= 0 {
		return Config{}, fmt.Errorf("KAKAO_TIMEOUT must be > 0")
	}
	kakaoMaxRetries, err := getEnvAsInt("KAKAO_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse KAKAO_MAX_RETRIES: %w", err)
	}
	if kakaoMaxRetries < 0 {
		return Config{}, fmt.Errorf("KAKAO_MAX_RETRIES must be >= 0")
	}
	kakaoCircuitEnabled, err := strconv.ParseBool(getEnv("KAKAO_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse KAKAO_CIRCUIT_ENABLED: %w", err)
	}
	kakaoCircuitFailureCount, err := getEnvAsInt("KAKAO_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse KAKAO_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if kakaoCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("KAKAO_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	kakaoCircuitOpenTimeout, err := time.ParseDuration(getEnv("KAKAO_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse KAKAO_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if kakaoCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("KAKAO_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	kakaoCircuitHalfOpenMax, err := getEnvAsInt("KAKAO_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse KAKAO_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if kakaoCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("KAKAO_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	backfillLimit, err := getEnvAsInt("VENUE_BACKFILL_LIMIT", 200)
	if err != nil {
		return Config{}, fmt.Errorf("parse VENUE_BACKFILL_LIMIT: %w", err)
	}
	if backfillLimit < 1 {
		return Config{}, fmt.Errorf("VENUE_BACKFILL_LIMIT must be >= 1")
	}
	backfillMaxWorkers, err := getEnvAsInt("VENUE_BACKFILL_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse VENUE_BACKFILL_MAX_WORKERS: %w", err)
	}
	if backfillMaxWorkers < 1 {
		return Config{}, fmt.Errorf("VENUE_BACKFILL_MAX_WORKERS must be >= 1")
	}

	memorySeedDefault := "false"
	if appEnv == EnvDev {
		memorySeedDefault = "true"
	}
	memorySeedEnabled, err := strconv.ParseBool(getEnv("MEMORY_SEED_ENABLED", memorySeedDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse MEMORY_SEED_ENABLED: %w", err)
	}

	cfg := Config{
		AppEnv:                   appEnv,
		ServiceName:              getEnv("APP_SERVICE_NAME", "matchup-api"),
		ServiceVersion:           getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                 getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                    getEnv("DB_URL", ""),
		CORSAllowedOrigins:       splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:              readTimeout,
		WriteTimeout:             writeTimeout,
		PprofEnabled:             pprofEnabled,
		PprofAddr:                pprofAddr,
		KakaoEnabled:             kakaoEnabled,
		KakaoBaseURL:             strings.TrimSpace(getEnv("KAKAO_BASE_URL", "https://dapi.kakao.com")),
		KakaoRESTAPIKey:          kakaoRESTAPIKey,
		KakaoTimeout:             kakaoTimeout,
		KakaoMaxRetries:          kakaoMaxRetries,
		KakaoCircuitEnabled:      kakaoCircuitEnabled,
		KakaoCircuitFailureCount: kakaoCircuitFailureCount,
		KakaoCircuitOpenTimeout:  kakaoCircuitOpenTimeout,
		KakaoCircuitHalfOpenMax:  kakaoCircuitHalfOpenMax,
		UptraceEnabled:           uptraceEnabled,
		UptraceDSN:               uptraceDSN,
		PyroscopeEnabled:         pyroscopeEnabled,
		PyroscopeServerAddress:   pyroscopeServerAddress,
		PyroscopeAuthToken:       strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:      pyroscopeUploadRate,
		InternalJobToken:         strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		BackfillLimit:            backfillLimit,
		BackfillMaxWorkers:       backfillMaxWorkers,
		MemorySeedEnabled:        memorySeedEnabled,
		LogLevel:                 parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if appEnv == EnvProd && strings.TrimSpace(cfg.DBURL) == "" {
		return Config{}, fmt.Errorf("DB_URL is required when APP_ENV=prod")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	}

	return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
}
