package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`

	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`

	GroqAPIKey       string `mapstructure:"GROQ_API_KEY"`
	OpenAIAPIKey     string `mapstructure:"OPENAI_API_KEY"`
	ElevenLabsAPIKey string `mapstructure:"ELEVENLABS_API_KEY"`

	AgentBaseURL      string `mapstructure:"AGENT_BASE_URL"`
	AgentAPIKey       string `mapstructure:"AGENT_API_KEY"`
	AgentModel        string `mapstructure:"AGENT_MODEL"`
	AgentSystemPrompt string `mapstructure:"AGENT_SYSTEM_PROMPT"`

	// UseGroq selects Groq as the primary transcription backend; OpenAI
	// Whisper is always the fallback order peer.
	UseGroq bool `mapstructure:"USE_GROQ"`
	// MeterTranscription charges one response unit per successful
	// transcription in addition to chat replies.
	MeterTranscription bool `mapstructure:"METER_TRANSCRIPTION"`

	ClientURL string `mapstructure:"CLIENT_URL"`

	// ExternalTimeoutSeconds bounds every outbound call (store, agent,
	// transcription, synthesis).
	ExternalTimeoutSeconds int `mapstructure:"EXTERNAL_TIMEOUT_SECONDS"`
}

// ExternalTimeout returns the outbound-call bound as a duration.
func (c *Config) ExternalTimeout() time.Duration {
	return time.Duration(c.ExternalTimeoutSeconds) * time.Second
}

var appConfig *Config

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("AGENT_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("AGENT_MODEL", "gpt-4o-mini")
	viper.SetDefault("USE_GROQ", false)
	viper.SetDefault("METER_TRANSCRIPTION", false)
	viper.SetDefault("EXTERNAL_TIMEOUT_SECONDS", 30)

	// Bind environment variables
	viper.BindEnv("PORT")
	viper.BindEnv("GIN_MODE")
	viper.BindEnv("FIREBASE_PROJECT_ID")
	viper.BindEnv("GOOGLE_APPLICATION_CREDENTIALS")
	viper.BindEnv("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64")
	viper.BindEnv("GROQ_API_KEY")
	viper.BindEnv("OPENAI_API_KEY")
	viper.BindEnv("ELEVENLABS_API_KEY")
	viper.BindEnv("AGENT_BASE_URL")
	viper.BindEnv("AGENT_API_KEY")
	viper.BindEnv("AGENT_MODEL")
	viper.BindEnv("AGENT_SYSTEM_PROMPT")
	viper.BindEnv("USE_GROQ")
	viper.BindEnv("METER_TRANSCRIPTION")
	viper.BindEnv("CLIENT_URL")
	viper.BindEnv("EXTERNAL_TIMEOUT_SECONDS")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	// Environment values arrive as strings; read the typed keys through
	// viper's casting getters.
	cfg.UseGroq = viper.GetBool("USE_GROQ")
	cfg.MeterTranscription = viper.GetBool("METER_TRANSCRIPTION")
	cfg.ExternalTimeoutSeconds = viper.GetInt("EXTERNAL_TIMEOUT_SECONDS")

	// Validate required fields. Provider API keys are deliberately not
	// required here: a missing key surfaces as a call-time failure of that
	// backend, which is what lets the transcription fallback engage.
	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}
	if cfg.GoogleApplicationCredentials == "" && cfg.FirebaseServiceAccountJSONBase64 == "" {
		return nil, errors.New("either GOOGLE_APPLICATION_CREDENTIALS or FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 is required")
	}
	if cfg.ExternalTimeoutSeconds <= 0 {
		return nil, errors.New("EXTERNAL_TIMEOUT_SECONDS must be positive")
	}

	appConfig = &cfg
	return appConfig, nil
}

// GetConfig returns the loaded application configuration.
// It panics if LoadConfig has not been called successfully.
func GetConfig() *Config {
	if appConfig == nil {
		panic("config not loaded; call LoadConfig first")
	}
	return appConfig
}
