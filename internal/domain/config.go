package domain

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Download     DownloadConfig     `mapstructure:"download"`
	History      HistoryConfig      `mapstructure:"history"`
	Search       SearchConfig       `mapstructure:"search"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	OutputDir   string `mapstructure:"output_dir"`
	LogsDir     string `mapstructure:"logs_dir"`
	YTDLPBinary string `mapstructure:"ytdlp_binary"`
}

// HistoryConfig contains history-store configuration
type HistoryConfig struct {
	FilePath string `mapstructure:"file_path"`
}

// SearchConfig contains search-related configuration
type SearchConfig struct {
	DefaultMaxResults int `mapstructure:"default_max_results"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Sound   bool   `mapstructure:"sound"`
	Method  string `mapstructure:"method"` // osascript, notify-send, etc.
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values. The
// download and history paths keep the layout the tool has always used:
// media in ./downloads, the history log in ./progress.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Download: DownloadConfig{
			OutputDir:   "downloads",
			LogsDir:     "logs",
			YTDLPBinary: "yt-dlp",
		},
		History: HistoryConfig{
			FilePath: "progress/download_history.json",
		},
		Search: SearchConfig{
			DefaultMaxResults: 10,
		},
		Notification: NotificationConfig{
			Enabled: false,
			Sound:   true,
			Method:  "osascript",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
