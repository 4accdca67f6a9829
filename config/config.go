package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Default configuration values
const (
	DefaultPort        = "3000"
	DefaultDataDir     = "./data"
	DefaultMinTopupINR = 10

	// Fallback session lifetime when the backend omits expires_at
	DefaultSessionTTL = 600 * time.Second

	// Status poll cadence while no push update has landed
	DefaultPollInterval = 5 * time.Second

	// Expiry timer cadence
	TickInterval = 1 * time.Second
)

// AppConfig holds the application configuration
type AppConfig struct {
	Port          string `json:"port"`
	DataDir       string `json:"dataDir"`
	APIBaseURL    string `json:"apiBaseUrl"`
	APIKey        string `json:"apiKey"`
	WebhookSecret string `json:"webhookSecret"`

	MinTopupINR         int64 `json:"minTopupInr"`
	SessionTTLSeconds   int   `json:"sessionTtlSeconds"`
	PollIntervalSeconds int   `json:"pollIntervalSeconds"`
}

// Config is the loaded application configuration
var Config AppConfig

// Load loads the application configuration from file, creating a default
// file on first run, and applies environment variable overrides.
func Load() error {
	configPath := filepath.Join(DefaultDataDir, "config.json")

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(DefaultDataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		Config = defaultConfig()
		if err := saveConfig(configPath); err != nil {
			return fmt.Errorf("error writing default configuration: %w", err)
		}
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("error reading configuration file: %w", err)
		}
		if err := json.Unmarshal(data, &Config); err != nil {
			return fmt.Errorf("error parsing configuration file: %w", err)
		}
	}

	// Apply fallbacks for critical values
	if Config.Port == "" {
		Config.Port = DefaultPort
	}
	if Config.DataDir == "" {
		Config.DataDir = DefaultDataDir
	}
	if Config.MinTopupINR <= 0 {
		Config.MinTopupINR = DefaultMinTopupINR
	}
	if Config.SessionTTLSeconds <= 0 {
		Config.SessionTTLSeconds = int(DefaultSessionTTL.Seconds())
	}
	if Config.PollIntervalSeconds <= 0 {
		Config.PollIntervalSeconds = int(DefaultPollInterval.Seconds())
	}

	// Environment variables override the config file
	if v := os.Getenv("PORT"); v != "" {
		Config.Port = v
	}
	if v := os.Getenv("TOPUP_API_BASE_URL"); v != "" {
		Config.APIBaseURL = v
	}
	if v := os.Getenv("TOPUP_API_KEY"); v != "" {
		Config.APIKey = v
	}
	if v := os.Getenv("TOPUP_WEBHOOK_SECRET"); v != "" {
		Config.WebhookSecret = v
	}
	if v := os.Getenv("TOPUP_MIN_AMOUNT_INR"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			Config.MinTopupINR = n
		}
	}

	if Config.APIBaseURL == "" {
		return fmt.Errorf("missing wallet API base URL: set TOPUP_API_BASE_URL or apiBaseUrl in %s", configPath)
	}

	return nil
}

func defaultConfig() AppConfig {
	return AppConfig{
		Port:                DefaultPort,
		DataDir:             DefaultDataDir,
		MinTopupINR:         DefaultMinTopupINR,
		SessionTTLSeconds:   int(DefaultSessionTTL.Seconds()),
		PollIntervalSeconds: int(DefaultPollInterval.Seconds()),
	}
}

// saveConfig saves the configuration to file
func saveConfig(path string) error {
	jsonData, err := json.MarshalIndent(Config, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling configuration: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0600); err != nil {
		return fmt.Errorf("error writing configuration file: %w", err)
	}

	return nil
}

// SessionTTL returns the fallback session lifetime.
func SessionTTL() time.Duration {
	return time.Duration(Config.SessionTTLSeconds) * time.Second
}

// PollInterval returns the status poll cadence.
func PollInterval() time.Duration {
	return time.Duration(Config.PollIntervalSeconds) * time.Second
}

// GetWebhookSecret returns the wallet webhook signing secret, checking the
// environment variable first.
func GetWebhookSecret() string {
	if v := os.Getenv("TOPUP_WEBHOOK_SECRET"); v != "" {
		return v
	}
	return Config.WebhookSecret
}

// OutcomeMessages provides consistent user-facing status messages
var OutcomeMessages = map[string]string{
	"pending": "Waiting for payment confirmation...",
	"paid":    "Payment received. Your wallet has been credited.",
	"failed":  "Payment verification failed. No amount was credited.",
	"expired": "This top-up session has expired. Please start a new one.",
	"closed":  "This top-up session was closed. Please start a new one.",
}

// OutcomeMessage retrieves the appropriate message for a session status
func OutcomeMessage(status string) string {
	if message, exists := OutcomeMessages[status]; exists {
		return message
	}
	return "Processing top-up..."
}
