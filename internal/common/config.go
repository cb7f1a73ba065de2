package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/llm"
	"github.com/joseph-ayodele/policy-intake/internal/llm/providers"
	"github.com/joseph-ayodele/policy-intake/internal/ocr"
	"github.com/joseph-ayodele/policy-intake/internal/repository"
)

// EnvConfigFile names an optional TOML file applied before environment variables.
const EnvConfigFile = "POLICY_CONFIG_FILE"

// Config holds all application configuration
type Config struct {
	Directory DirectoryConfig `toml:"directory"`
	Server    ServerConfig    `toml:"server"`
	OCR       OCRConfig       `toml:"ocr"`
	LLM       LLMConfig       `toml:"llm"`
	Batch     BatchConfig     `toml:"batch"`
	Log       LogConfig       `toml:"log"`
}

// DirectoryConfig holds the client/agent directory database configuration
type DirectoryConfig struct {
	Driver           string        `toml:"driver" validate:"oneof=postgres sqlite"`
	DSN              string        `toml:"dsn"` // empty runs without a directory
	MaxConns         int32         `toml:"max_conns" validate:"gte=0"`
	MinConns         int32         `toml:"min_conns" validate:"gte=0,ltefield=MaxConns"`
	MaxConnLifetime  time.Duration `toml:"-"`
	MaxConnIdleTime  time.Duration `toml:"-"`
	DialTimeout      time.Duration `toml:"-"`
	StatementTimeout time.Duration `toml:"-"`

	MaxConnLifetimeRaw  string `toml:"max_conn_lifetime" validate:"-"`
	MaxConnIdleTimeRaw  string `toml:"max_conn_idle_time" validate:"-"`
	DialTimeoutRaw      string `toml:"dial_timeout" validate:"-"`
	StatementTimeoutRaw string `toml:"statement_timeout" validate:"-"`
}

type ServerConfig struct {
	GRPCAddr string `toml:"grpc_addr" validate:"required"`
}

// OCRConfig holds the external text-extraction tools
type OCRConfig struct {
	Pdftotext      string `toml:"pdftotext"`
	Pdftoppm       string `toml:"pdftoppm"`
	Tesseract      string `toml:"tesseract"`
	TesseractLang  string `toml:"tesseract_lang"`
	TessdataDir    string `toml:"tessdata_dir"`
	DPI            int    `toml:"raster_dpi" validate:"gte=50,lte=600"`
	OCRScannedPDFs bool   `toml:"ocr_scanned_pdfs"`
}

// LLMConfig holds the fallback model configuration
type LLMConfig struct {
	Provider        string        `toml:"provider" validate:"oneof=openai gemini claude"`
	Model           string        `toml:"model"` // empty picks the provider default
	VisionModel     string        `toml:"vision_model"`
	BaseURL         string        `toml:"base_url" validate:"omitempty,url"`
	APIKey          string        `toml:"-"`
	Temperature     float32       `toml:"temperature" validate:"gte=0,lte=2"`
	Timeout         time.Duration `toml:"-" validate:"gt=0"`
	TimeoutRaw      string        `toml:"timeout" validate:"-"`
	MinTextChars    int           `toml:"min_text_chars" validate:"gt=0"`
	MaxExcerptChars int           `toml:"max_excerpt_chars" validate:"gt=0"`
}

type BatchConfig struct {
	Workers int `toml:"workers" validate:"gte=1,lte=64"`
}

type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=text json"`
}

func defaultConfig() *Config {
	return &Config{
		Directory: DirectoryConfig{
			Driver:          repository.DriverPostgres,
			MaxConns:        20,
			MinConns:        5,
			MaxConnLifetime: 30 * time.Minute,
			MaxConnIdleTime: 5 * time.Minute,
			DialTimeout:     3 * time.Second,
		},
		Server: ServerConfig{GRPCAddr: ":8080"},
		OCR: OCRConfig{
			Pdftotext:     "pdftotext",
			Pdftoppm:      "pdftoppm",
			Tesseract:     "tesseract",
			TesseractLang: "spa+eng",
			DPI:           200,
		},
		LLM: LLMConfig{
			Provider:        providers.OpenAI,
			Timeout:         45 * time.Second,
			MinTextChars:    constants.MinTextChars,
			MaxExcerptChars: constants.MaxExcerptChars,
		},
		Batch: BatchConfig{Workers: 4},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig builds the configuration from defaults, the optional TOML file
// named by POLICY_CONFIG_FILE, then environment variables, in that order.
func LoadConfig() (*Config, error) {
	cfg := defaultConfig()
	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewAppError("CONFIG_ERROR", "read "+path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return NewAppError("CONFIG_ERROR", "parse "+path, err)
	}
	durations := []struct {
		raw string
		dst *time.Duration
	}{
		{c.Directory.MaxConnLifetimeRaw, &c.Directory.MaxConnLifetime},
		{c.Directory.MaxConnIdleTimeRaw, &c.Directory.MaxConnIdleTime},
		{c.Directory.DialTimeoutRaw, &c.Directory.DialTimeout},
		{c.Directory.StatementTimeoutRaw, &c.Directory.StatementTimeout},
		{c.LLM.TimeoutRaw, &c.LLM.Timeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return NewAppError("CONFIG_ERROR", fmt.Sprintf("bad duration %q in %s", d.raw, path), err)
		}
		*d.dst = v
	}
	return nil
}

func (c *Config) applyEnv() {
	d := &c.Directory
	d.Driver = getEnv("DIRECTORY_DRIVER", d.Driver)
	d.DSN = getEnv("DIRECTORY_DSN", getEnv("DB_URL", d.DSN))
	d.MaxConns = getEnvAsInt32("DB_MAX_CONNS", d.MaxConns)
	d.MinConns = getEnvAsInt32("DB_MIN_CONNS", d.MinConns)
	d.MaxConnLifetime = getEnvAsDuration("DB_MAX_CONN_LIFETIME", d.MaxConnLifetime)
	d.MaxConnIdleTime = getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", d.MaxConnIdleTime)
	d.DialTimeout = getEnvAsDuration("DB_DIAL_TIMEOUT", d.DialTimeout)
	d.StatementTimeout = getEnvAsDuration("DB_STATEMENT_TIMEOUT", d.StatementTimeout)

	c.Server.GRPCAddr = getEnv("GRPC_ADDR", c.Server.GRPCAddr)

	o := &c.OCR
	o.Pdftotext = getEnv("PDFTOTEXT", o.Pdftotext)
	o.Pdftoppm = getEnv("PDFTOPPM", o.Pdftoppm)
	o.Tesseract = getEnv("TESSERACT", o.Tesseract)
	o.TesseractLang = getEnv("TESSERACT_LANG", o.TesseractLang)
	o.TessdataDir = getEnv("TESSDATA_PREFIX", o.TessdataDir)
	o.DPI = getEnvAsInt("RASTER_DPI", o.DPI)
	o.OCRScannedPDFs = getEnvAsBool("OCR_SCANNED_PDFS", o.OCRScannedPDFs)

	l := &c.LLM
	l.Provider = strings.ToLower(getEnv("LLM_PROVIDER", l.Provider))
	l.Model = getEnv("LLM_MODEL", l.Model)
	l.VisionModel = getEnv("LLM_VISION_MODEL", l.VisionModel)
	l.BaseURL = getEnv("LLM_BASE_URL", l.BaseURL)
	l.APIKey = getEnv("LLM_API_KEY", providerKey(l.Provider))
	l.Temperature = getEnvAsFloat32("LLM_TEMPERATURE", l.Temperature)
	l.Timeout = getEnvAsDuration("LLM_TIMEOUT", l.Timeout)
	l.MinTextChars = getEnvAsInt("LLM_MIN_TEXT_CHARS", l.MinTextChars)
	l.MaxExcerptChars = getEnvAsInt("LLM_MAX_EXCERPT_CHARS", l.MaxExcerptChars)

	c.Batch.Workers = getEnvAsInt("BATCH_WORKERS", c.Batch.Workers)
	c.Log.Level = strings.ToLower(getEnv("LOG_LEVEL", c.Log.Level))
	c.Log.Format = strings.ToLower(getEnv("LOG_FORMAT", c.Log.Format))
}

// providerKey falls back to the vendor's conventional variable.
func providerKey(provider string) string {
	switch provider {
	case providers.Gemini:
		return os.Getenv("GEMINI_API_KEY")
	case providers.Claude:
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

var configValidator = validator.New()

// Validate checks the loaded configuration. The LLM key is checked by the
// provider factory, which reports llm.ErrMissingCredentials.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return NewAppError("CONFIG_ERROR", "invalid configuration", fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}
	return nil
}

// RepositoryConfig maps the directory section onto the repository package.
func (c *Config) RepositoryConfig() repository.Config {
	d := c.Directory
	return repository.Config{
		Driver:           d.Driver,
		DSN:              d.DSN,
		MaxConns:         d.MaxConns,
		MinConns:         d.MinConns,
		MaxConnLifetime:  d.MaxConnLifetime,
		MaxConnIdleTime:  d.MaxConnIdleTime,
		DialTimeout:      d.DialTimeout,
		StatementTimeout: d.StatementTimeout,
	}
}

func (c *Config) OCRConfig() ocr.Config {
	o := c.OCR
	return ocr.Config{
		Pdftotext:      o.Pdftotext,
		Pdftoppm:       o.Pdftoppm,
		Tesseract:      o.Tesseract,
		TesseractLang:  o.TesseractLang,
		TessdataDir:    o.TessdataDir,
		DPI:            o.DPI,
		PSM:            6,
		OEM:            1,
		OCRScannedPDFs: o.OCRScannedPDFs,
	}
}

func (c *Config) ProviderSettings() providers.Settings {
	l := c.LLM
	return providers.Settings{
		Provider:    l.Provider,
		APIKey:      l.APIKey,
		BaseURL:     l.BaseURL,
		Model:       l.Model,
		VisionModel: l.VisionModel,
		Temperature: l.Temperature,
		Timeout:     l.Timeout,
	}
}

func (c *Config) FallbackConfig() llm.FallbackConfig {
	return llm.FallbackConfig{MinTextChars: c.LLM.MinTextChars, MaxExcerptChars: c.LLM.MaxExcerptChars}
}
