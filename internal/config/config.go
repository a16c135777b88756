package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/matchday-intel/internal/platform/logging"
	"github.com/riskibarqy/matchday-intel/internal/platform/resilience"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"

	RosterBackendMemory   = "memory"
	RosterBackendPostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	LogLevel           logging.Level
	SwaggerEnabled     bool

	ResolveTimeout     time.Duration
	AdapterTimeout     time.Duration
	ResolveParallel    bool
	ConfirmedThreshold int
	MatchdayWorkers    int

	CacheEnabled bool
	CacheTTL     time.Duration

	ScrapeUserAgent      string
	ScrapeAcceptLanguage string
	ScrapeTimeout        time.Duration
	ScrapeRatePerSecond  float64
	ScrapeBurst          int
	ScrapeMaxRetries     int
	ScrapeCircuit        resilience.CircuitBreakerConfig

	RenderEnabled     bool
	RenderTimeout     time.Duration
	ChromeUserDataDir string

	SportMonksEnabled    bool
	SportMonksBaseURL    string
	SportMonksToken      string
	SportMonksTimeout    time.Duration
	SportMonksMaxRetries int
	SportMonksCircuit    resilience.CircuitBreakerConfig

	RosterBackend           string
	RosterFile              string
	RefereePoolsFile        string
	DBURL                   string
	DBDisablePreparedBinary bool

	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	PprofEnabled               bool
	PprofAddr                  string
	MetricsEnabled             bool
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("SERVICE_NAME", "matchday-intel-api"),
		ServiceVersion:             getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("HTTP_ADDR", ":8080"),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:                   logging.ParseLevel(getEnv("LOG_LEVEL", "info")),
		ScrapeUserAgent:            getEnv("SCRAPE_USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"),
		ScrapeAcceptLanguage:       getEnv("SCRAPE_ACCEPT_LANGUAGE", "es-ES,es;q=0.9,en;q=0.8"),
		ChromeUserDataDir:          strings.TrimSpace(getEnv("CHROME_USER_DATA_DIR", "")),
		SportMonksBaseURL:          strings.TrimSpace(getEnv("SPORTMONKS_BASE_URL", "https://api.sportmonks.com/v3/football")),
		SportMonksToken:            strings.TrimSpace(getEnv("SPORTMONKS_TOKEN", "")),
		RosterFile:                 strings.TrimSpace(getEnv("ROSTER_FILE", "")),
		RefereePoolsFile:           strings.TrimSpace(getEnv("REFEREE_POOLS_FILE", "")),
		DBURL:                      strings.TrimSpace(getEnv("DB_URL", "")),
		UptraceDSN:                 strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PprofAddr:                  strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	durations := []struct {
		key      string
		fallback string
		target   *time.Duration
	}{
		{"HTTP_READ_TIMEOUT", "10s", &cfg.ReadTimeout},
		{"HTTP_WRITE_TIMEOUT", "60s", &cfg.WriteTimeout},
		{"RESOLVE_TIMEOUT", "45s", &cfg.ResolveTimeout},
		{"ADAPTER_TIMEOUT", "12s", &cfg.AdapterTimeout},
		{"CACHE_TTL", "10m", &cfg.CacheTTL},
		{"SCRAPE_TIMEOUT", "10s", &cfg.ScrapeTimeout},
		{"RENDER_TIMEOUT", "15s", &cfg.RenderTimeout},
		{"SPORTMONKS_TIMEOUT", "20s", &cfg.SportMonksTimeout},
		{"PYROSCOPE_UPLOAD_RATE", "15s", &cfg.PyroscopeUploadRate},
	}
	for _, d := range durations {
		value, err := getEnvAsDuration(d.key, d.fallback)
		if err != nil {
			return Config{}, err
		}
		if value <= 0 {
			return Config{}, fmt.Errorf("%s must be > 0", d.key)
		}
		*d.target = value
	}
	if cfg.ResolveTimeout >= cfg.WriteTimeout {
		return Config{}, fmt.Errorf("RESOLVE_TIMEOUT (%s) must be shorter than HTTP_WRITE_TIMEOUT (%s)", cfg.ResolveTimeout, cfg.WriteTimeout)
	}

	bools := []struct {
		key      string
		fallback bool
		target   *bool
	}{
		{"RESOLVE_PARALLEL", false, &cfg.ResolveParallel},
		{"CACHE_ENABLED", true, &cfg.CacheEnabled},
		{"RENDER_ENABLED", false, &cfg.RenderEnabled},
		{"SPORTMONKS_ENABLED", false, &cfg.SportMonksEnabled},
		{"DB_DISABLE_PREPARED_BINARY", true, &cfg.DBDisablePreparedBinary},
		{"UPTRACE_ENABLED", false, &cfg.UptraceEnabled},
		{"UPTRACE_LOGS_ENABLED", true, &cfg.UptraceLogsEnabled},
		{"PYROSCOPE_ENABLED", false, &cfg.PyroscopeEnabled},
		{"PPROF_ENABLED", false, &cfg.PprofEnabled},
		{"METRICS_ENABLED", true, &cfg.MetricsEnabled},
		{"SWAGGER_ENABLED", appEnv != EnvProd, &cfg.SwaggerEnabled},
	}
	for _, b := range bools {
		value, err := getEnvAsBool(b.key, b.fallback)
		if err != nil {
			return Config{}, err
		}
		*b.target = value
	}

	if cfg.ConfirmedThreshold, err = getEnvAsInt("CONFIRMED_THRESHOLD", 18); err != nil {
		return Config{}, fmt.Errorf("parse CONFIRMED_THRESHOLD: %w", err)
	}
	if cfg.ConfirmedThreshold < 1 {
		return Config{}, fmt.Errorf("CONFIRMED_THRESHOLD must be >= 1")
	}

	if cfg.MatchdayWorkers, err = getEnvAsInt("MATCHDAY_WORKERS", 4); err != nil {
		return Config{}, fmt.Errorf("parse MATCHDAY_WORKERS: %w", err)
	}
	if cfg.MatchdayWorkers < 1 {
		return Config{}, fmt.Errorf("MATCHDAY_WORKERS must be >= 1")
	}

	if cfg.ScrapeRatePerSecond, err = strconv.ParseFloat(getEnv("SCRAPE_RATE_PER_SECOND", "1"), 64); err != nil {
		return Config{}, fmt.Errorf("parse SCRAPE_RATE_PER_SECOND: %w", err)
	}
	if cfg.ScrapeBurst, err = getEnvAsInt("SCRAPE_BURST", 2); err != nil {
		return Config{}, fmt.Errorf("parse SCRAPE_BURST: %w", err)
	}
	if cfg.ScrapeMaxRetries, err = getEnvAsInt("SCRAPE_MAX_RETRIES", 1); err != nil {
		return Config{}, fmt.Errorf("parse SCRAPE_MAX_RETRIES: %w", err)
	}
	if cfg.ScrapeMaxRetries < 0 {
		return Config{}, fmt.Errorf("SCRAPE_MAX_RETRIES must be >= 0")
	}
	if cfg.ScrapeCircuit, err = loadCircuit("SCRAPE_CIRCUIT", 3, "60s", 1); err != nil {
		return Config{}, err
	}

	if cfg.SportMonksMaxRetries, err = getEnvAsInt("SPORTMONKS_MAX_RETRIES", 1); err != nil {
		return Config{}, fmt.Errorf("parse SPORTMONKS_MAX_RETRIES: %w", err)
	}
	if cfg.SportMonksMaxRetries < 0 {
		return Config{}, fmt.Errorf("SPORTMONKS_MAX_RETRIES must be >= 0")
	}
	if cfg.SportMonksCircuit, err = loadCircuit("SPORTMONKS_CIRCUIT", 5, "15s", 2); err != nil {
		return Config{}, err
	}
	if cfg.SportMonksEnabled && cfg.SportMonksToken == "" {
		return Config{}, fmt.Errorf("SPORTMONKS_TOKEN is required when SPORTMONKS_ENABLED=true")
	}

	if cfg.RosterBackend, err = parseRosterBackend(getEnv("ROSTER_BACKEND", RosterBackendMemory)); err != nil {
		return Config{}, err
	}
	if cfg.RosterBackend == RosterBackendPostgres && cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when ROSTER_BACKEND=postgres")
	}

	return cfg, nil
}

func loadCircuit(prefix string, failures int, openTimeout string, halfOpen int) (resilience.CircuitBreakerConfig, error) {
	var out resilience.CircuitBreakerConfig
	var err error

	if out.Enabled, err = getEnvAsBool(prefix+"_ENABLED", true); err != nil {
		return out, err
	}
	if out.FailureThreshold, err = getEnvAsInt(prefix+"_FAILURE_COUNT", failures); err != nil {
		return out, fmt.Errorf("parse %s_FAILURE_COUNT: %w", prefix, err)
	}
	if out.FailureThreshold < 1 {
		return out, fmt.Errorf("%s_FAILURE_COUNT must be >= 1", prefix)
	}
	if out.OpenTimeout, err = getEnvAsDuration(prefix+"_OPEN_TIMEOUT", openTimeout); err != nil {
		return out, err
	}
	if out.OpenTimeout <= 0 {
		return out, fmt.Errorf("%s_OPEN_TIMEOUT must be > 0", prefix)
	}
	if out.HalfOpenMaxReq, err = getEnvAsInt(prefix+"_HALF_OPEN_MAX_REQ", halfOpen); err != nil {
		return out, fmt.Errorf("parse %s_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if out.HalfOpenMaxReq < 1 {
		return out, fmt.Errorf("%s_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}
	return out, nil
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

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
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

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseRosterBackend(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case RosterBackendMemory, RosterBackendPostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid ROSTER_BACKEND %q: valid values are %s, %s", v, RosterBackendMemory, RosterBackendPostgres)
	}
}
