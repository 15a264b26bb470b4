package utils

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

var (
	EnvPath string = "."
)

type Config struct {
	Env                string `mapstructure:"ENV"`
	ServerPort         int    `mapstructure:"SERVER_PORT"`
	SigningKey         string `mapstructure:"SIGNING_KEY"`
	AWSRegion          string `mapstructure:"AWS_REGION"`
	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	DBUsername         string `mapstructure:"DB_USERNAME"`
	DBPassword         string `mapstructure:"DB_PASSWORD"`
	DBHost             string `mapstructure:"DB_HOST"`
	DBPort             string `mapstructure:"DB_PORT"`
	DBDriver           string `mapstructure:"DB_DRIVER"`
	DBName             string `mapstructure:"DB_NAME"`
	SSLMode            string `mapstructure:"SSLMODE"`
	Papertrail         string `mapstructure:"PAPERTRAIL"`
	PapertrailAppName  string `mapstructure:"PAPERTRAIL_APP_NAME"`
	RedisHost          string `mapstructure:"REDIS_HOST"`
	RedisPort          string `mapstructure:"REDIS_PORT"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`

	TwilioAccountSID  string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioSenderPhone string `mapstructure:"TWILIO_SENDER_PHONE"`
	SMSProvider       string `mapstructure:"SMS_PROVIDER"`
	SafetyLinePhone   string `mapstructure:"SAFETY_LINE_PHONE"`

	PlunkBaseUrl string `mapstructure:"PLUNK_BASE_URL"`
	PlunkApiKey  string `mapstructure:"PLUNK_API_KEY"`

	// Money policies. Stored as strings so decimal parsing happens exactly once
	// in the services that use them.
	PlatformFeePercent string `mapstructure:"PLATFORM_FEE_PERCENT"`
	CashFeeRate        string `mapstructure:"CASH_FEE_RATE"`

	// Reminder scan configuration, minutes. A window span smaller than the tick
	// interval can skip bookings entirely, so the reminder service rejects it.
	ReminderTickMinutes      int `mapstructure:"REMINDER_TICK_MINUTES"`
	EarlyReminderLeadMinutes int `mapstructure:"EARLY_REMINDER_LEAD_MINUTES"`
	EarlyReminderSpanMinutes int `mapstructure:"EARLY_REMINDER_SPAN_MINUTES"`
	FinalReminderLeadMinutes int `mapstructure:"FINAL_REMINDER_LEAD_MINUTES"`
	FinalReminderSpanMinutes int `mapstructure:"FINAL_REMINDER_SPAN_MINUTES"`
}

func LoadConfig(path string) (*Config, error) {
	// Validate that the path is not empty
	if path == "" {
		path = "."
	}

	// Create a new Viper instance to avoid global state
	v := viper.New()

	// Disable environment variable prefix
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	// Configure config file
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// Log the error, but don't fail entirely
		log.Printf("Warning: Unable to read config file: %v", err)
	}

	// Create config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Additional security: Validate critical configurations
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validateConfig(config *Config) error {
	// Add validation for critical configurations
	if config.ServerPort == 0 {
		return fmt.Errorf("server port must be specified")
	}

	// Add more validation as needed
	if config.DBUsername == "" || config.DBPassword == "" {
		return fmt.Errorf("database credentials must be provided")
	}

	return nil
}

// Optional: Masking sensitive information for logging
func (c *Config) Redact() Config {
	redacted := *c
	redacted.AWSSecretAccessKey = "****"
	redacted.DBPassword = "****"
	redacted.RedisPassword = "****"
	redacted.TwilioAuthToken = "****"
	redacted.PlunkApiKey = "****"
	return redacted
}

func LoadCustomConfig(path string, val interface{}) error {
	// Validate that the path is not empty
	if path == "" {
		path = "."
	}

	// Create a new Viper instance to avoid global state
	v := viper.New()

	// Allow overriding config via environment variables
	v.SetEnvPrefix("HILOM") // Prefix for env vars
	v.AutomaticEnv()

	// Configure config file
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// Log the error, but don't fail entirely
		log.Printf("Warning: Unable to read config file: %v", err)
	}

	if err := v.Unmarshal(&val); err != nil {
		return fmt.Errorf("unable to decode config: %w", err)
	}

	return nil
}
