package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	Driver   string `yaml:"driver" validate:"required|in:file,sqlite,memory"`
	FilePath string `yaml:"filePath" validate:"required"`
	Compress bool   `yaml:"compress"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type ShiftConfig struct {
	Timezone        string        `yaml:"timezone"`
	MonitorInterval time.Duration `yaml:"monitorInterval" validate:"required|min:1"`
	DisplayInterval time.Duration `yaml:"displayInterval" validate:"required|min:1"`
	CutoverBucket   string        `yaml:"cutoverBucket" validate:"required|in:cutover,opened"`
}

type ReportConfig struct {
	Order string `yaml:"order" validate:"required|in:asc,desc"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type StationConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server          `yaml:"webServer"`
	Persistence Persistence     `yaml:"persistence"`
	Logger      LoggerConfig    `yaml:"logger"`
	Shift       ShiftConfig     `yaml:"shift"`
	Report      ReportConfig    `yaml:"report"`
	Cache       CacheConfig     `yaml:"cache"`
	Metrics     MetricsConfig   `yaml:"metrics"`
	Stations    []StationConfig `yaml:"stations"`
}
