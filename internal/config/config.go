package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// Roster publishing
	RosterSheetID   string `yaml:"rosterSheetID" validate:"required"`
	RosterSheetTab  string `yaml:"rosterSheetTab" validate:"required"`
	PublishSchedule string `yaml:"publishSchedule,omitempty"` // RRULE; daily when empty

	// Staff directory import. Optional: sites that manage personnel
	// directly in the database leave these unset.
	PersonnelSheetID  string `yaml:"personnelSheetID,omitempty"`
	PersonnelSheetTab string `yaml:"personnelSheetTab,omitempty" validate:"required_with=PersonnelSheetID"`

	// Departure notifications
	GmailUserID string `yaml:"gmailUserID" validate:"required"`
	GmailSender string `yaml:"gmailSender,omitempty"`

	// Compliance thresholds
	CertWarningDays int `yaml:"certWarningDays" validate:"required,min=1"`
	LongSwingDays   int `yaml:"longSwingDays" validate:"required,min=1"`

	// Known client codes, used to group dashboard counts. Optional.
	ClientCodes []string `yaml:"clientCodes,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for an environment.
// For example, env="prod" looks for "roster_config.prod.yaml" in the current
// directory first, then in the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.PublishSchedule != "" {
		if _, err := rrule.StrToRRule(cfg.PublishSchedule); err != nil {
			return fmt.Errorf("invalid rrule in publishSchedule: %w", err)
		}
	}

	return nil
}

// findConfigFile searches for the environment's config file in the current
// directory and home directory
func findConfigFile(env string) (string, error) {
	configFileName := "roster_config.yaml"
	if env != "" {
		configFileName = "roster_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
