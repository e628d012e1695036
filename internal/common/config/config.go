package config

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Vision   VisionConfig   `mapstructure:"vision"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// AnalysisConfig holds settings for the analysis job orchestrator.
type AnalysisConfig struct {
	SweepInterval int `mapstructure:"sweep_interval"` // milliseconds
	JobMaxAge     int `mapstructure:"job_max_age"`    // milliseconds
}

// VisionConfig holds settings for the vision-based size chart extraction service.
type VisionConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// ServerConfig holds settings for the operational HTTP surface.
type ServerConfig struct {
	Port        int `mapstructure:"port"`
	MetricsPort int `mapstructure:"metrics_port"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
