package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Contests   ContestsConfig   `mapstructure:"contests"`
	Playback   PlaybackConfig   `mapstructure:"playback"`
	Export     ExportConfig     `mapstructure:"export"`
	Processing ProcessingConfig `mapstructure:"processing"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// ContestsConfig locates the on-disk contest folders
type ContestsConfig struct {
	Root         string `mapstructure:"root"`
	MetadataFile string `mapstructure:"metadata_file"`
}

// PlaybackConfig contains playback position settings
type PlaybackConfig struct {
	// PreSeconds is the process-wide fallback for how many seconds before a
	// contact playback starts, used when a contest's metadata omits it.
	PreSeconds float64 `mapstructure:"pre_seconds"`
}

// ExportConfig contains snippet export settings
type ExportConfig struct {
	Dir         string        `mapstructure:"dir"`
	MaxSpan     time.Duration `mapstructure:"max_span"`
	MinDuration float64       `mapstructure:"min_duration"`
}

// ProcessingConfig contains audio processing settings
type ProcessingConfig struct {
	FFmpegPath    string        `mapstructure:"ffmpeg_path"`
	FFprobePath   string        `mapstructure:"ffprobe_path"`
	FFmpegTimeout time.Duration `mapstructure:"ffmpeg_timeout"`
	TempDir       string        `mapstructure:"temp_dir"`
}

// MonitoringConfig contains metrics settings
type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}
