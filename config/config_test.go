package config

import (
	"os"
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads; viper treats empty as unset
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"ELEVATED_SERVER_PORT",
		"ELEVATED_SERVER_ENVIRONMENT",
		"ELEVATED_SERVER_ALLOWED_ORIGINS",
		"ELEVATED_SERVER_SHUTDOWN_TIMEOUT",
		"ELEVATED_SERVER_TRUSTED_PROXIES",
		"ELEVATED_GEMINI_API_KEY",
		"ELEVATED_GEMINI_BASE_URL",
		"ELEVATED_GEMINI_MODEL",
		"ELEVATED_GEMINI_TEMPERATURE",
		"ELEVATED_GEMINI_TIMEOUT",
		"ELEVATED_GEMINI_REQUESTS_PER_MINUTE",
		"ELEVATED_GEMINI_BURST",
		"ELEVATED_RATELIMIT_PER_IP",
		"ELEVATED_RATELIMIT_BURST",
		"ELEVATED_RATELIMIT_IDLE_TTL",
		"ELEVATED_LOG_LEVEL",
		"ELEVATED_LOG_FORMAT",
		"GEMINI_API_KEY",
		"API_KEY",
	} {
		t.Setenv(name, "")
	}
}

// inTempDir runs the test from an empty directory so no .env or config.yaml is picked up
func inTempDir(t *testing.T) {
	t.Helper()
	originalDir, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(originalDir) })
}

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		clearEnv(t)
		inTempDir(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Server.ShutdownTimeout != 10*time.Second {
			t.Errorf("Server.ShutdownTimeout = %v, want 10s", cfg.Server.ShutdownTimeout)
		}
		if cfg.Gemini.Model != "gemini-3-flash-preview" {
			t.Errorf("Gemini.Model = %s, want gemini-3-flash-preview", cfg.Gemini.Model)
		}
		if cfg.Gemini.Temperature != 0.7 {
			t.Errorf("Gemini.Temperature = %v, want 0.7", cfg.Gemini.Temperature)
		}
		if cfg.Gemini.Timeout != 30*time.Second {
			t.Errorf("Gemini.Timeout = %v, want 30s", cfg.Gemini.Timeout)
		}
		if cfg.RateLimit.PerIP != 20 {
			t.Errorf("RateLimit.PerIP = %d, want 20", cfg.RateLimit.PerIP)
		}
		if cfg.RateLimit.IdleTTL != 15*time.Minute {
			t.Errorf("RateLimit.IdleTTL = %v, want 15m", cfg.RateLimit.IdleTTL)
		}
		if cfg.Log.Format != "console" {
			t.Errorf("Log.Format = %s, want console", cfg.Log.Format)
		}
	})

	t.Run("missing API key is not an error", func(t *testing.T) {
		clearEnv(t)
		inTempDir(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Gemini.APIKey != "" {
			t.Errorf("Gemini.APIKey = %q, want empty", cfg.Gemini.APIKey)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		clearEnv(t)
		inTempDir(t)
		t.Setenv("ELEVATED_SERVER_PORT", "9090")
		t.Setenv("ELEVATED_SERVER_ENVIRONMENT", "production")
		t.Setenv("ELEVATED_SERVER_ALLOWED_ORIGINS", "https://elevatedliving.com,https://www.elevatedliving.com")
		t.Setenv("ELEVATED_GEMINI_API_KEY", "custom-api-key")
		t.Setenv("ELEVATED_GEMINI_MODEL", "gemini-2.5-flash")
		t.Setenv("ELEVATED_GEMINI_TEMPERATURE", "0.3")
		t.Setenv("ELEVATED_GEMINI_TIMEOUT", "5s")
		t.Setenv("ELEVATED_RATELIMIT_PER_IP", "200")
		t.Setenv("ELEVATED_LOG_FORMAT", "json")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://www.elevatedliving.com" {
			t.Errorf("Server.AllowedOrigins = %v, want two origins", cfg.Server.AllowedOrigins)
		}
		if cfg.Gemini.APIKey != "custom-api-key" {
			t.Errorf("Gemini.APIKey = %s, want custom-api-key", cfg.Gemini.APIKey)
		}
		if cfg.Gemini.Model != "gemini-2.5-flash" {
			t.Errorf("Gemini.Model = %s, want gemini-2.5-flash", cfg.Gemini.Model)
		}
		if cfg.Gemini.Temperature != 0.3 {
			t.Errorf("Gemini.Temperature = %v, want 0.3", cfg.Gemini.Temperature)
		}
		if cfg.Gemini.Timeout != 5*time.Second {
			t.Errorf("Gemini.Timeout = %v, want 5s", cfg.Gemini.Timeout)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.Log.Format != "json" {
			t.Errorf("Log.Format = %s, want json", cfg.Log.Format)
		}
	})

	t.Run("trusts no proxies by default", func(t *testing.T) {
		clearEnv(t)
		inTempDir(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if len(cfg.Server.TrustedProxies) != 0 {
			t.Errorf("Server.TrustedProxies = %v, want none", cfg.Server.TrustedProxies)
		}
	})

	t.Run("loads trusted proxies from the environment", func(t *testing.T) {
		clearEnv(t)
		inTempDir(t)
		t.Setenv("ELEVATED_SERVER_TRUSTED_PROXIES", "10.0.0.1,192.168.0.0/16")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if len(cfg.Server.TrustedProxies) != 2 || cfg.Server.TrustedProxies[1] != "192.168.0.0/16" {
			t.Errorf("Server.TrustedProxies = %v, want two entries", cfg.Server.TrustedProxies)
		}
	})

	t.Run("keeps an explicit zero temperature", func(t *testing.T) {
		clearEnv(t)
		inTempDir(t)
		t.Setenv("ELEVATED_GEMINI_TEMPERATURE", "0")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Gemini.Temperature != 0 {
			t.Errorf("Gemini.Temperature = %v, want 0", cfg.Gemini.Temperature)
		}
	})

	t.Run("accepts API_KEY as an alias", func(t *testing.T) {
		clearEnv(t)
		inTempDir(t)
		t.Setenv("API_KEY", "platform-key")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Gemini.APIKey != "platform-key" {
			t.Errorf("Gemini.APIKey = %s, want platform-key", cfg.Gemini.APIKey)
		}
	})

	t.Run("prefixed key wins over aliases", func(t *testing.T) {
		clearEnv(t)
		inTempDir(t)
		t.Setenv("API_KEY", "platform-key")
		t.Setenv("ELEVATED_GEMINI_API_KEY", "own-key")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Gemini.APIKey != "own-key" {
			t.Errorf("Gemini.APIKey = %s, want own-key", cfg.Gemini.APIKey)
		}
	})

	t.Run("reads API key from .env file", func(t *testing.T) {
		clearEnv(t)
		inTempDir(t)
		os.Unsetenv("ELEVATED_GEMINI_API_KEY")
		t.Cleanup(func() { os.Unsetenv("ELEVATED_GEMINI_API_KEY") })

		if err := os.WriteFile(".env", []byte("ELEVATED_GEMINI_API_KEY=dotenv-key\n"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Gemini.APIKey != "dotenv-key" {
			t.Errorf("Gemini.APIKey = %s, want dotenv-key", cfg.Gemini.APIKey)
		}
	})

	t.Run("reads config.yaml", func(t *testing.T) {
		clearEnv(t)
		inTempDir(t)

		yaml := "server:\n  port: \"7070\"\ngemini:\n  model: gemini-custom\n"
		if err := os.WriteFile("config.yaml", []byte(yaml), 0644); err != nil {
			t.Fatalf("Failed to create config.yaml: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Server.Port != "7070" {
			t.Errorf("Server.Port = %s, want 7070", cfg.Server.Port)
		}
		if cfg.Gemini.Model != "gemini-custom" {
			t.Errorf("Gemini.Model = %s, want gemini-custom", cfg.Gemini.Model)
		}
	})

	t.Run("fails validation for invalid log format", func(t *testing.T) {
		clearEnv(t)
		inTempDir(t)
		t.Setenv("ELEVATED_LOG_FORMAT", "xml")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for invalid log format")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		inTempDir(t)

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables and skips comments", func(t *testing.T) {
		inTempDir(t)

		envContent := `
# Comment line
TEST_VAR_1=value1

TEST_VAR_2=value2
# TEST_COMMENTED=should_not_load
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		for _, name := range []string{"TEST_VAR_1", "TEST_VAR_2", "TEST_COMMENTED"} {
			os.Unsetenv(name)
		}
		t.Cleanup(func() {
			os.Unsetenv("TEST_VAR_1")
			os.Unsetenv("TEST_VAR_2")
		})

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_VAR_1") != "value1" {
			t.Errorf("TEST_VAR_1 = %s, want value1", os.Getenv("TEST_VAR_1"))
		}
		if os.Getenv("TEST_VAR_2") != "value2" {
			t.Errorf("TEST_VAR_2 = %s, want value2", os.Getenv("TEST_VAR_2"))
		}
		if os.Getenv("TEST_COMMENTED") != "" {
			t.Errorf("TEST_COMMENTED should not be loaded from comment")
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		inTempDir(t)
		t.Setenv("TEST_OVERRIDE", "existing-value")

		if err := os.WriteFile(".env", []byte("TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("TEST_OVERRIDE"))
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Gemini:    GeminiConfig{Model: "gemini-3-flash-preview", Temperature: 0.7},
			RateLimit: RateLimitConfig{PerIP: 20},
			Log:       LogConfig{Format: "console"},
		}
	}

	t.Run("validates successfully without an API key", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("accepts zero temperature", func(t *testing.T) {
		cfg := valid()
		cfg.Gemini.Temperature = 0
		if err := validate(cfg); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Server.Port = "" }},
		{"empty model", func(c *Config) { c.Gemini.Model = "" }},
		{"negative temperature", func(c *Config) { c.Gemini.Temperature = -0.1 }},
		{"temperature too high", func(c *Config) { c.Gemini.Temperature = 2.5 }},
		{"zero per-ip limit", func(c *Config) { c.RateLimit.PerIP = 0 }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run("fails for "+tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := validate(cfg); err == nil {
				t.Errorf("validate() error = nil, want error for %s", tt.name)
			}
		})
	}
}
