package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// configFileEnv optionally points at a YAML file; environment variables
// override whatever the file sets.
const configFileEnv = "SAFEBALANCE_CONFIG"

// Config holds application configuration
type Config struct {
	Port      string `yaml:"port"`
	DBConn    string `yaml:"dbConn"`
	LogLevel  string `yaml:"logLevel"`
	JWTSecret string `yaml:"jwtSecret"`

	// Trained model artifact resources
	ModelPath   string `yaml:"modelPath"`
	EncoderPath string `yaml:"encoderPath"`
	ConfigPath  string `yaml:"configPath"`

	// Sweep schedules (cron expressions)
	BufferSweepCron   string `yaml:"bufferSweepCron"`
	ReminderSweepCron string `yaml:"reminderSweepCron"`

	// SMTP settings for payment-reminder emails; reminders are skipped
	// when SMTPHost is empty
	SMTPHost     string `yaml:"smtpHost"`
	SMTPPort     string `yaml:"smtpPort"`
	SMTPUsername string `yaml:"smtpUsername"`
	SMTPPassword string `yaml:"smtpPassword"`
	SenderEmail  string `yaml:"senderEmail"`
}

// NewConfig loads configuration from an optional YAML file plus environment
// variables; the environment wins
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:              "8080",
		DBConn:            "host=localhost port=5432 user=safebalance password=safebalance dbname=safebalance sslmode=disable",
		LogLevel:          "INFO",
		JWTSecret:         "secret",
		ModelPath:         "./model/income_volatility_7day_model.json",
		EncoderPath:       "./model/archetype_encoder.json",
		ConfigPath:        "./model/model_config_7day.json",
		BufferSweepCron:   "0 0 * * *",
		ReminderSweepCron: "0 */6 * * *",
		SMTPPort:          "587",
	}

	if path := os.Getenv(configFileEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	overrideEnv(&cfg.Port, "PORT")
	overrideEnv(&cfg.DBConn, "DB_CONN")
	overrideEnv(&cfg.LogLevel, "LOG_LEVEL")
	overrideEnv(&cfg.JWTSecret, "JWT_SECRET")
	overrideEnv(&cfg.ModelPath, "MODEL_PATH")
	overrideEnv(&cfg.EncoderPath, "ENCODER_PATH")
	overrideEnv(&cfg.ConfigPath, "CONFIG_PATH")
	overrideEnv(&cfg.BufferSweepCron, "BUFFER_SWEEP_CRON")
	overrideEnv(&cfg.ReminderSweepCron, "REMINDER_SWEEP_CRON")
	overrideEnv(&cfg.SMTPHost, "SMTP_HOST")
	overrideEnv(&cfg.SMTPPort, "SMTP_PORT")
	overrideEnv(&cfg.SMTPUsername, "SMTP_USERNAME")
	overrideEnv(&cfg.SMTPPassword, "SMTP_PASSWORD")
	overrideEnv(&cfg.SenderEmail, "SENDER_EMAIL")

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func overrideEnv(target *string, key string) {
	if value, exists := os.LookupEnv(key); exists {
		*target = value
	}
}
