package common

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		EnvConfigFile, "DIRECTORY_DRIVER", "DIRECTORY_DSN", "DB_URL", "GRPC_ADDR", "LLM_PROVIDER", "LLM_MODEL",
		"LLM_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "ANTHROPIC_API_KEY", "LLM_TIMEOUT", "LLM_MIN_TEXT_CHARS",
		"BATCH_WORKERS", "OCR_SCANNED_PDFS", "RASTER_DPI", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Directory.Driver)
	assert.Equal(t, ":8080", cfg.Server.GRPCAddr)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 400, cfg.LLM.MinTextChars)
	assert.Equal(t, "spa+eng", cfg.OCR.TesseractLang)
	assert.False(t, cfg.OCR.OCRScannedPDFs)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DIRECTORY_DRIVER", "sqlite")
	t.Setenv("DIRECTORY_DSN", "file:dir.db")
	t.Setenv("LLM_PROVIDER", "Claude")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("LLM_TIMEOUT", "10s")
	t.Setenv("BATCH_WORKERS", "8")
	t.Setenv("OCR_SCANNED_PDFS", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.RepositoryConfig().Driver)
	assert.Equal(t, "file:dir.db", cfg.RepositoryConfig().DSN)
	assert.Equal(t, "claude", cfg.ProviderSettings().Provider)
	assert.Equal(t, "sk-ant", cfg.ProviderSettings().APIKey)
	assert.Equal(t, 10*time.Second, cfg.ProviderSettings().Timeout)
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.True(t, cfg.OCRConfig().OCRScannedPDFs)

	// the generic key wins over the vendor one
	t.Setenv("LLM_API_KEY", "generic")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "generic", cfg.LLM.APIKey)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "policy.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[directory]
driver = "sqlite"
dsn = "file:from-file.db"
dial_timeout = "7s"

[llm]
provider = "gemini"
timeout = "20s"
min_text_chars = 250

[batch]
workers = 2
`), 0o644))
	t.Setenv(EnvConfigFile, path)
	t.Setenv("BATCH_WORKERS", "6")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Directory.Driver)
	assert.Equal(t, "file:from-file.db", cfg.Directory.DSN)
	assert.Equal(t, 7*time.Second, cfg.Directory.DialTimeout)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 20*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 250, cfg.FallbackConfig().MinTextChars)
	assert.Equal(t, 6, cfg.Batch.Workers)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigBadFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	t.Setenv(EnvConfigFile, filepath.Join(dir, "missing.toml"))
	_, err := LoadConfig()
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFIG_ERROR", appErr.Code)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[llm]\ntimeout = \"soon\"\n"), 0o644))
	t.Setenv(EnvConfigFile, bad)
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cases := map[string]func(*Config){
		"driver":     func(c *Config) { c.Directory.Driver = "mysql" },
		"provider":   func(c *Config) { c.LLM.Provider = "mistral" },
		"workers":    func(c *Config) { c.Batch.Workers = 0 },
		"min conns":  func(c *Config) { c.Directory.MinConns = 50 },
		"timeout":    func(c *Config) { c.LLM.Timeout = 0 },
		"base url":   func(c *Config) { c.LLM.BaseURL = "not a url" },
		"log format": func(c *Config) { c.Log.Format = "xml" },
		"grpc addr":  func(c *Config) { c.Server.GRPCAddr = "" },
		"raster dpi": func(c *Config) { c.OCR.DPI = 10 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestValidator(t *testing.T) {
	v := NewValidator().
		Field("path", "", Required, SupportedDocument).
		Field("name", "abcdef", MaxLength(3)).
		Field("doc", "/in/poliza.docx", SupportedDocument).
		Field("ok", "/in/poliza.PDF", Required, SupportedDocument)
	require.True(t, v.HasErrors())
	assert.Len(t, v.Errors(), 3)
	assert.ErrorIs(t, v.Err(), ErrValidation)
	assert.Contains(t, v.ErrorMessage(), "unsupported file type")

	err := ValidateAndReturnError(v)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.NoError(t, ValidateAndReturnError(NewValidator().Field("x", "y", Required)))
	assert.NotNil(t, Required("p", nil))
}

func TestAppError(t *testing.T) {
	cause := errors.New("boom")
	err := NewAppError("CONFIG_ERROR", "bad", cause)
	assert.Equal(t, "CONFIG_ERROR: bad: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "X: y", NewAppError("X", "y", nil).Error())
	assert.Equal(t, codes.FailedPrecondition, status.Code(FailedPreconditionError("no")))
	assert.Equal(t, codes.Internal, status.Code(InternalErrorf("n=%d", 1)))
}

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(t.Context(), "req-1")
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(t.Context()))
}

func TestNewLogger(t *testing.T) {
	var buf strings.Builder
	NewLogger(LogConfig{Level: "warn", Format: "json"}, &buf).Info("dropped")
	assert.Empty(t, buf.String())

	NewLogger(LogConfig{Level: "debug", Format: "json"}, &buf).Debug("pipeline.start", "run_id", "r1")
	assert.Contains(t, buf.String(), `"msg":"pipeline.start"`)
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
}
