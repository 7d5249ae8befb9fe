package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

const (
	EnvPrefix = "CLEANER_"

	// TraceTimeLayout is the date format the task engine expects for its search window.
	TraceTimeLayout = "2006/01/02 15:04:05"
)

type Config struct {
	Primary    Primary          `koanf:"primary"`
	TaskEngine TaskEngineConfig `koanf:"task_engine"`
	Workflow   WorkflowConfig   `koanf:"workflow"`
	Cleanup    CleanupConfig    `koanf:"cleanup"`
	Logger     LoggerConfig     `koanf:"logger"`
	Tracing    TracingConfig    `koanf:"tracing"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// TaskEngineConfig describes the fusion project service. Its token is also
// accepted by the workflow service's search endpoint.
type TaskEngineConfig struct {
	BaseURL        string        `koanf:"base_url" validate:"required,url"`
	Token          string        `koanf:"token" validate:"required"`
	Timeout        time.Duration `koanf:"timeout" validate:"required"`
	Locale         string        `koanf:"locale" validate:"required"`
	PageSize       int           `koanf:"page_size" validate:"required,min=1"`
	TraceFrom      string        `koanf:"trace_from" validate:"required"`
	TraceTo        string        `koanf:"trace_to" validate:"required"`
	PersonInCharge string        `koanf:"person_in_charge" validate:"required"`
	Comment        string        `koanf:"comment" validate:"required"`
}

type WorkflowConfig struct {
	BaseURL     string        `koanf:"base_url" validate:"required,url"`
	Token       string        `koanf:"token" validate:"required"`
	Timeout     time.Duration `koanf:"timeout" validate:"required"`
	PageSize    int           `koanf:"page_size" validate:"required,min=1"`
	PerformerID string        `koanf:"performer_id" validate:"required"`
	Comment     string        `koanf:"comment" validate:"required"`
}

type CleanupConfig struct {
	ProjectCodes []string `koanf:"project_codes" validate:"dive,required"`
	ProcessCodes []string `koanf:"process_codes" validate:"dive,required"`
}

type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"omitempty,oneof=text json"`
}

type TracingConfig struct {
	Enabled     bool   `koanf:"enabled"`
	OutputFile  string `koanf:"output_file"`
	ServiceName string `koanf:"service_name"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":            "development",
		"task_engine.timeout":    30 * time.Second,
		"task_engine.locale":     "zh_CN",
		"task_engine.page_size":  500,
		"task_engine.trace_from": "2025/01/01 10:33:29",
		"task_engine.trace_to":   "2025/12/25 10:33:29",
		"task_engine.comment":    "revoked by fusion-cleaner",
		"workflow.timeout":       30 * time.Second,
		"workflow.page_size":     200,
		"workflow.comment":       "aborted by fusion-cleaner",
		"logger.level":           "info",
		"logger.format":          "text",
		"tracing.service_name":   "fusion-cleaner",
	}
}

// LoadConfig layers built-in defaults, the optional YAML file at path and
// CLEANER_ prefixed environment variables, in that order.
func LoadConfig(path string) (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			logger.Error("failed to load config file", "path", path, "error", err)
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, EnvPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	if err := mainConfig.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return err
	}

	from, err := time.Parse(TraceTimeLayout, c.TaskEngine.TraceFrom)
	if err != nil {
		return fmt.Errorf("task_engine.trace_from: %w", err)
	}
	to, err := time.Parse(TraceTimeLayout, c.TaskEngine.TraceTo)
	if err != nil {
		return fmt.Errorf("task_engine.trace_to: %w", err)
	}
	if to.Before(from) {
		return fmt.Errorf("task_engine.trace_to %q is before trace_from %q", c.TaskEngine.TraceTo, c.TaskEngine.TraceFrom)
	}

	return nil
}
