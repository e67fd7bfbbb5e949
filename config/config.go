package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"

	"momentumScope/internal/adapters/logger" // Import the logger package for LogLevel
	"momentumScope/internal/app"
	"momentumScope/internal/ports"
)

// Config holds all application configuration.
type Config struct {
	// Binance API (market data endpoints work without keys)
	APIKey    string
	SecretKey string
	IsTestnet bool

	// Data selection
	Symbols    []string // Empty means every symbol in the store
	Interval   string
	InputCSV   string // When set, candles are read from this file instead of the store
	OutputDir  string
	FetchDays  int // History downloaded by fetch_klines
	FetchLimit int // When positive, fetch_klines takes only the latest FetchLimit candles

	// Database
	DBPath string

	// Computation
	FillNA     bool
	Workers    int
	Params     IndicatorParams
	ParamsFile string // Optional INI profile overriding Params

	// Observability
	MetricsAddr string // Empty disables the /metrics endpoint

	// Logging
	LogLevel logger.LogLevel
}

// IndicatorParams holds the window lengths and weights of every indicator.
type IndicatorParams struct {
	ROCPeriod         int
	RSIPeriod         int
	MFIPeriod         int
	UOShort           int
	UOMedium          int
	UOLong            int
	UOWeightShort     float64
	UOWeightMedium    float64
	UOWeightLong      float64
	StochPeriod       int
	StochSignalPeriod int
	WillRPeriod       int
	KAMAPeriod        int
	KAMAFast          int
	KAMASlow          int
	TSILong           int
	TSIShort          int
}

// LoadConfig loads configuration from environment variables (.env file) and the
// optional PARAMS_FILE profile.
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// Binance API
	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")
	cfg.IsTestnet = getEnvAsBool("IS_TESTNET", false)

	// Data selection
	cfg.Symbols = splitList(getEnv("SYMBOLS", ""))
	cfg.Interval = getEnv("INTERVAL", "1h")
	cfg.InputCSV = getEnv("INPUT_CSV", "")
	cfg.OutputDir = getEnv("OUTPUT_DIR", "./output")
	if cfg.OutputDir == "" {
		errs = append(errs, "OUTPUT_DIR must be set")
	}
	cfg.FetchDays, err = getEnvAsIntRequired("FETCH_DAYS", 90)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid FETCH_DAYS: %v", err))
	} else if cfg.FetchDays <= 0 {
		errs = append(errs, "FETCH_DAYS must be positive")
	}
	cfg.FetchLimit, err = getEnvAsIntRequired("FETCH_LIMIT", 0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid FETCH_LIMIT: %v", err))
	} else if cfg.FetchLimit < 0 {
		errs = append(errs, "FETCH_LIMIT must not be negative")
	}

	// Database
	cfg.DBPath = getEnv("DB_PATH", "./data/klines.db")

	// Computation
	cfg.FillNA = getEnvAsBool("FILLNA", false)
	cfg.Workers, err = getEnvAsIntRequired("WORKERS", 0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid WORKERS: %v", err))
	} else if cfg.Workers < 0 {
		errs = append(errs, "WORKERS cannot be negative")
	}

	cfg.Params, errs = loadParams(errs)

	cfg.ParamsFile = getEnv("PARAMS_FILE", "")
	if cfg.ParamsFile != "" {
		if err := cfg.applyProfile(cfg.ParamsFile); err != nil {
			errs = append(errs, err.Error())
		}
	}
	errs = append(errs, cfg.Params.validate()...)

	// Observability
	cfg.MetricsAddr = getEnv("METRICS_ADDR", "")

	// Logging
	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr) // Use the parser from the logger package

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s: %w", strings.Join(errs, "; "), ports.ErrConfigurationError)
	}

	return cfg, nil
}

func loadParams(errs []string) (IndicatorParams, []string) {
	p := IndicatorParams{}
	ints := []struct {
		key string
		def int
		dst *int
	}{
		{"ROC_PERIOD", 12, &p.ROCPeriod},
		{"RSI_PERIOD", 14, &p.RSIPeriod},
		{"MFI_PERIOD", 14, &p.MFIPeriod},
		{"UO_SHORT", 7, &p.UOShort},
		{"UO_MEDIUM", 14, &p.UOMedium},
		{"UO_LONG", 28, &p.UOLong},
		{"STOCH_PERIOD", 14, &p.StochPeriod},
		{"STOCH_SIGNAL_PERIOD", 3, &p.StochSignalPeriod},
		{"WILLR_PERIOD", 14, &p.WillRPeriod},
		{"KAMA_PERIOD", 10, &p.KAMAPeriod},
		{"KAMA_FAST", 2, &p.KAMAFast},
		{"KAMA_SLOW", 30, &p.KAMASlow},
		{"TSI_LONG", 25, &p.TSILong},
		{"TSI_SHORT", 13, &p.TSIShort},
	}
	for _, f := range ints {
		v, err := getEnvAsIntRequired(f.key, f.def)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", f.key, err))
			continue
		}
		*f.dst = v
	}

	floats := []struct {
		key string
		def float64
		dst *float64
	}{
		{"UO_WEIGHT_SHORT", 4, &p.UOWeightShort},
		{"UO_WEIGHT_MEDIUM", 2, &p.UOWeightMedium},
		{"UO_WEIGHT_LONG", 1, &p.UOWeightLong},
	}
	for _, f := range floats {
		v, err := getEnvAsFloatRequired(f.key, f.def)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", f.key, err))
			continue
		}
		*f.dst = v
	}
	return p, errs
}

// applyProfile overrides parameters with the keys present in an INI profile:
//
//	[general] fillna, workers
//	[roc] period    [rsi] period    [mfi] period    [willr] period
//	[uo] short, medium, long, weight_short, weight_medium, weight_long
//	[stoch] period, signal_period
//	[kama] period, fast, slow
//	[tsi] long, short
func (c *Config) applyProfile(path string) error {
	profile, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("cannot load PARAMS_FILE '%s': %v", path, err)
	}

	var errs []string
	setInt := func(section, key string, dst *int) {
		s := profile.Section(section)
		if !s.HasKey(key) {
			return
		}
		v, err := s.Key(key).Int()
		if err != nil {
			errs = append(errs, fmt.Sprintf("[%s] %s: %v", section, key, err))
			return
		}
		*dst = v
	}
	setFloat := func(section, key string, dst *float64) {
		s := profile.Section(section)
		if !s.HasKey(key) {
			return
		}
		v, err := s.Key(key).Float64()
		if err != nil {
			errs = append(errs, fmt.Sprintf("[%s] %s: %v", section, key, err))
			return
		}
		*dst = v
	}

	if general := profile.Section("general"); general.HasKey("fillna") {
		v, err := general.Key("fillna").Bool()
		if err != nil {
			errs = append(errs, fmt.Sprintf("[general] fillna: %v", err))
		} else {
			c.FillNA = v
		}
	}
	setInt("general", "workers", &c.Workers)

	p := &c.Params
	setInt("roc", "period", &p.ROCPeriod)
	setInt("rsi", "period", &p.RSIPeriod)
	setInt("mfi", "period", &p.MFIPeriod)
	setInt("uo", "short", &p.UOShort)
	setInt("uo", "medium", &p.UOMedium)
	setInt("uo", "long", &p.UOLong)
	setFloat("uo", "weight_short", &p.UOWeightShort)
	setFloat("uo", "weight_medium", &p.UOWeightMedium)
	setFloat("uo", "weight_long", &p.UOWeightLong)
	setInt("stoch", "period", &p.StochPeriod)
	setInt("stoch", "signal_period", &p.StochSignalPeriod)
	setInt("willr", "period", &p.WillRPeriod)
	setInt("kama", "period", &p.KAMAPeriod)
	setInt("kama", "fast", &p.KAMAFast)
	setInt("kama", "slow", &p.KAMASlow)
	setInt("tsi", "long", &p.TSILong)
	setInt("tsi", "short", &p.TSIShort)

	if len(errs) > 0 {
		return fmt.Errorf("invalid PARAMS_FILE '%s': %s", path, strings.Join(errs, "; "))
	}
	return nil
}

func (p IndicatorParams) validate() []string {
	var errs []string
	periods := []struct {
		name  string
		value int
	}{
		{"ROC_PERIOD", p.ROCPeriod},
		{"RSI_PERIOD", p.RSIPeriod},
		{"MFI_PERIOD", p.MFIPeriod},
		{"UO_SHORT", p.UOShort},
		{"UO_MEDIUM", p.UOMedium},
		{"UO_LONG", p.UOLong},
		{"STOCH_PERIOD", p.StochPeriod},
		{"STOCH_SIGNAL_PERIOD", p.StochSignalPeriod},
		{"WILLR_PERIOD", p.WillRPeriod},
		{"KAMA_PERIOD", p.KAMAPeriod},
		{"KAMA_FAST", p.KAMAFast},
		{"KAMA_SLOW", p.KAMASlow},
		{"TSI_LONG", p.TSILong},
		{"TSI_SHORT", p.TSIShort},
	}
	for _, period := range periods {
		if period.value <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be positive", period.name))
		}
	}
	if p.UOWeightShort < 0 || p.UOWeightMedium < 0 || p.UOWeightLong < 0 {
		errs = append(errs, "UO weights cannot be negative")
	} else if p.UOWeightShort+p.UOWeightMedium+p.UOWeightLong <= 0 {
		errs = append(errs, "UO weights must not all be zero")
	}
	return errs
}

// ComputeConfig maps the loaded parameters onto the compute service configuration.
func (c *Config) ComputeConfig() app.Config {
	p := c.Params
	cfg := app.DefaultConfig(c.FillNA)
	cfg.ROC.Period = p.ROCPeriod
	cfg.RSI.Period = p.RSIPeriod
	cfg.MFI.Period = p.MFIPeriod
	cfg.UO.Short, cfg.UO.Medium, cfg.UO.Long = p.UOShort, p.UOMedium, p.UOLong
	cfg.UO.WeightShort, cfg.UO.WeightMedium, cfg.UO.WeightLong = p.UOWeightShort, p.UOWeightMedium, p.UOWeightLong
	cfg.Stoch.Period = p.StochPeriod
	cfg.Stoch.SignalPeriod = p.StochSignalPeriod
	cfg.WilliamsR.Period = p.WillRPeriod
	cfg.KAMA.Period, cfg.KAMA.FastPeriod, cfg.KAMA.SlowPeriod = p.KAMAPeriod, p.KAMAFast, p.KAMASlow
	cfg.TSI.LongPeriod, cfg.TSI.ShortPeriod = p.TSILong, p.TSIShort
	cfg.Workers = c.Workers
	return cfg
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(strings.TrimSpace(valueStr))
	if err != nil {
		return defaultValue
	}
	return value
}

// splitList parses a comma separated list, dropping blanks and upper-casing symbols.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToUpper(part))
		}
	}
	return out
}
