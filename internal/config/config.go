package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Quiz     QuizConfig     `mapstructure:"quiz" validate:"required"`
	Stats    StatsConfig    `mapstructure:"stats" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port               int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel           string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// DatabaseConfig selects the storage backend.
// URL is only consulted for postgres, Path only for sqlite.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`
	URL    string `mapstructure:"url" validate:"required_if=Driver postgres"`
	Path   string `mapstructure:"path" validate:"required_if=Driver sqlite"`
}

// QuizConfig controls question generation.
type QuizConfig struct {
	Tier        string `mapstructure:"tier" validate:"required,oneof=basic advanced"`
	MaxAttempts int    `mapstructure:"max_attempts" validate:"gte=1,lte=1024"`
}

// StatsConfig controls the statistics engine.
type StatsConfig struct {
	DefaultTimezone string `mapstructure:"default_timezone" validate:"required"`
	LookbackDays    int    `mapstructure:"lookback_days" validate:"gte=1"`
	MaxWindowDays   int    `mapstructure:"max_window_days" validate:"gte=1"`
}
