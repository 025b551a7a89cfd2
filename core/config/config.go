package config

import (
	"path/filepath"
	"strings"
	"time"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App      AppConfig
	Line     LineConfig
	Supabase SupabaseConfig
	Logging  LoggingConfig
	Forward  ForwardConfig
}

type AppConfig struct {
	Version     string
	Port        string
	Debug       bool
	Environment string
}

type LineConfig struct {
	AccessToken   string
	ChannelSecret string
	// Allowlist of LINE user IDs. Empty means every user is accepted.
	Allowlist []string
	// SignatureRelaxed skips HMAC verification of inbound webhooks.
	SignatureRelaxed bool
	// RelaxVerify short-circuits the whole webhook handler with 200 OK.
	// Debugging aid for LINE's endpoint verification, nothing is processed.
	RelaxVerify bool
}

type SupabaseConfig struct {
	URL         string
	AnonKey     string
	ServiceRole string
	Bucket      string
}

type LoggingConfig struct {
	Enabled bool
	File    string
}

type ForwardConfig struct {
	// URL of an upstream processor. Empty disables forwarding and every
	// webhook is handled locally.
	URL     string
	Timeout time.Duration
}

// Global provides access to the loaded configuration globally.
var Global *Config

// LoadConfig loads configuration from environment variables or defaults.
func LoadConfig() (*Config, error) {
	appCfg := AppConfig{
		Version:     "v1.2.0",
		Port:        getEnv("APP_PORT", "8080"),
		Debug:       getEnvBool("APP_DEBUG", false),
		Environment: getEnv("APP_ENV", "development"),
	}

	lineCfg := LineConfig{
		AccessToken:      getEnv("LINE_CHANNEL_ACCESS_TOKEN", ""),
		ChannelSecret:    getEnv("LINE_CHANNEL_SECRET", ""),
		Allowlist:        splitList(getEnv("LINE_USER_ID_ALLOWLIST", "")),
		SignatureRelaxed: getEnvBool("LINE_SIGNATURE_RELAXED", false),
		RelaxVerify:      getEnvBool("LINE_WEBHOOK_RELAX_VERIFY", false),
	}

	supaCfg := SupabaseConfig{
		URL:         strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		AnonKey:     getEnv("SUPABASE_ANON_KEY", ""),
		ServiceRole: getEnv("SUPABASE_SERVICE_ROLE", ""),
		Bucket:      getEnv("SUPABASE_BUCKET_NAME", "nextplot"),
	}
	// PostgREST accepts the service role everywhere the anon key is used.
	if supaCfg.AnonKey == "" {
		supaCfg.AnonKey = supaCfg.ServiceRole
	}

	logCfg := LoggingConfig{
		Enabled: getEnvBool("NEXTPLOT_LOG_ENABLED", true),
		File:    getEnv("NEXTPLOT_LOG_FILE", filepath.Join("storages", "conversations.ndjson")),
	}

	fwdCfg := ForwardConfig{
		URL:     getEnv("FORWARD_URL", ""),
		Timeout: time.Duration(getEnvInt("FORWARD_TIMEOUT_SECONDS", 5)) * time.Second,
	}

	cfg := &Config{
		App:      appCfg,
		Line:     lineCfg,
		Supabase: supaCfg,
		Logging:  logCfg,
		Forward:  fwdCfg,
	}

	Global = cfg
	return cfg, nil
}

// splitList splits a comma-separated env value, dropping empty entries so an
// unset allowlist means "allow everyone" instead of "allow nobody".
func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
