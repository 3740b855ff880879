package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lsat-prep/diagnostics/internal/diagnostics"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Engine   EngineConfig   `mapstructure:"engine" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name" validate:"required"`
	SSLMode  string `mapstructure:"sslmode" validate:"oneof=disable require verify-ca verify-full"`
}

// DSN renders the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours" validate:"gt=0"`
}

type EngineConfig struct {
	StyleBlockSize             int      `mapstructure:"style_block_size" validate:"gte=0"`
	CognitiveSkills            []string `mapstructure:"cognitive_skills" validate:"unique,dive,required"`
	ExpectedSecondsPerQuestion float64  `mapstructure:"expected_seconds_per_question" validate:"gt=0"`
	LenientConfidence          bool     `mapstructure:"lenient_confidence"`
	MisalignmentAlertCount     int      `mapstructure:"misalignment_alert_count" validate:"gt=0"`
	BatchConcurrency           int      `mapstructure:"batch_concurrency" validate:"gt=0"`
}

// Diagnostics converts the loaded settings into engine configuration.
func (e EngineConfig) Diagnostics() diagnostics.Config {
	return diagnostics.Config{
		StyleBlockSize:             e.StyleBlockSize,
		CognitiveSkills:            append([]string(nil), e.CognitiveSkills...),
		ExpectedSecondsPerQuestion: e.ExpectedSecondsPerQuestion,
		LenientConfidence:          e.LenientConfidence,
		MisalignmentAlertCount:     e.MisalignmentAlertCount,
	}
}

// DefaultModel is the narration model used when none is configured.
const DefaultModel = "claude-opus-4-5-20251101"

type LLMConfig struct {
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	NarrationMode string `mapstructure:"narration" validate:"oneof=off api mock"`
}

// envBindings keeps the environment variable names the deployment already uses.
var envBindings = map[string]string{
	"server.port":                          "PORT",
	"server.log_level":                     "LOG_LEVEL",
	"database.host":                        "DB_HOST",
	"database.port":                        "DB_PORT",
	"database.user":                        "DB_USER",
	"database.password":                    "DB_PASSWORD",
	"database.name":                        "DB_NAME",
	"database.sslmode":                     "DB_SSLMODE",
	"auth.jwt_secret":                      "JWT_SECRET",
	"auth.token_ttl_hours":                 "TOKEN_TTL_HOURS",
	"engine.style_block_size":              "STYLE_BLOCK_SIZE",
	"engine.expected_seconds_per_question": "EXPECTED_SECONDS_PER_QUESTION",
	"engine.lenient_confidence":            "LENIENT_CONFIDENCE",
	"engine.misalignment_alert_count":      "MISALIGNMENT_ALERT_COUNT",
	"engine.batch_concurrency":             "BATCH_CONCURRENCY",
	"llm.api_key":                          "ANTHROPIC_API_KEY",
	"llm.model":                            "ANTHROPIC_MODEL",
	"llm.narration":                        "NARRATION",
}

func setDefaults(v *viper.Viper) {
	defaults := diagnostics.DefaultConfig()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "lsat_user")
	v.SetDefault("database.password", "lsat_password")
	v.SetDefault("database.name", "lsat_diagnostics")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("auth.token_ttl_hours", 72)

	v.SetDefault("engine.style_block_size", defaults.StyleBlockSize)
	v.SetDefault("engine.cognitive_skills", defaults.CognitiveSkills)
	v.SetDefault("engine.expected_seconds_per_question", defaults.ExpectedSecondsPerQuestion)
	v.SetDefault("engine.lenient_confidence", false)
	v.SetDefault("engine.misalignment_alert_count", defaults.MisalignmentAlertCount)
	v.SetDefault("engine.batch_concurrency", 8)

	v.SetDefault("llm.model", DefaultModel)
	v.SetDefault("llm.narration", "off")
}

// Load reads configuration from defaults, an optional config file, a .env
// file and the environment, in increasing order of precedence, then
// validates the result.
func Load(configFile string) (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}
	if skills := os.Getenv("COGNITIVE_SKILLS"); skills != "" {
		v.Set("engine.cognitive_skills", splitList(skills))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
