package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	StorageDriverFile  = "file"
	StorageDriverMySQL = "mysql"
)

type Config struct {
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Journal   JournalConfig   `mapstructure:"journal"`
	Recorder  RecorderConfig  `mapstructure:"recorder"`
	Server    ServerConfig    `mapstructure:"server"`
	Remote    RemoteConfig    `mapstructure:"remote"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Playback  PlaybackConfig  `mapstructure:"playback"`
}

type StorageConfig struct {
	Driver    string `mapstructure:"driver" validate:"oneof=file mysql"`
	Directory string `mapstructure:"directory" validate:"required_if=Driver file"`
	Table     string `mapstructure:"table" validate:"required_if=Driver mysql"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type JournalConfig struct {
	UndoDepth int `mapstructure:"undo_depth" validate:"gte=0"`
}

type RecorderConfig struct {
	OptimizationLevel string `mapstructure:"optimization_level" validate:"oneof=low medium high"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"gte=0,lte=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RemoteConfig struct {
	BaseURL          string `mapstructure:"base_url" validate:"omitempty,url"`
	MaxRetryAttempts int    `mapstructure:"max_retry_attempts" validate:"gte=0"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

type OutputsConfig struct {
	ChartDirectory  string `mapstructure:"chart_directory"`
	ReportDirectory string `mapstructure:"report_directory"`
}

type TemplatesConfig struct {
	// ReportTemplate replaces the embedded Markdown report template.
	ReportTemplate string `mapstructure:"report_template" validate:"omitempty,file"`
}

type PlaybackConfig struct {
	StepDelayMS int `mapstructure:"step_delay_ms" validate:"gte=0"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/circumplex")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

// Load reads configFile, or config.yml from the default search paths when it is empty.
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("storage.driver", StorageDriverFile)
	v.SetDefault("storage.directory", filepath.Join("data", "circumplex"))
	v.SetDefault("storage.table", "emotion_state")
	v.SetDefault("journal.undo_depth", 50)
	v.SetDefault("recorder.optimization_level", "medium")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "local")
	v.SetDefault("database.username", "user")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("remote.max_retry_attempts", 3)
	v.SetDefault("remote.timeout_seconds", 10)
	v.SetDefault("outputs.chart_directory", filepath.Join("outputs", "chart"))
	v.SetDefault("outputs.report_directory", filepath.Join("outputs", "report"))
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("templates.report_template", "")
	v.SetDefault("playback.step_delay_ms", 300)

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("remote.base_url", "CIRCUMPLEX_REMOTE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind CIRCUMPLEX_REMOTE_URL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("validate configuration: %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
