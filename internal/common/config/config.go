// internal/common/config/config.go
package config

// Config is the root configuration for the careerpilot service.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Advisor  AdvisorConfig  `mapstructure:"advisor"`
	Quota    QuotaConfig    `mapstructure:"quota"`
	Tracker  TrackerConfig  `mapstructure:"tracker"`
	Gesture  GestureConfig  `mapstructure:"gesture"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AdvisorConfig holds Gemini API settings for the advisory client.
type AdvisorConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

type QuotaConfig struct {
	MaxPromptsPerDay int `mapstructure:"max_prompts_per_day"`
}

// TrackerConfig tunes the application record repository.
type TrackerConfig struct {
	// ArchiveFailureRate is the probability (0..1) that an explicit archive
	// transition fails with a transient write timeout.
	ArchiveFailureRate float64 `mapstructure:"archive_failure_rate"`
}

// GestureConfig tunes the press/drag session state machine.
type GestureConfig struct {
	LongPressDelay  int     `mapstructure:"long_press_delay"` // milliseconds
	JitterTolerance float64 `mapstructure:"jitter_tolerance"` // position units
	CommitThreshold float64 `mapstructure:"commit_threshold"` // position units
}
